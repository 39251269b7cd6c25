package models

import (
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/authz"
)

// AssignmentState is the lead's custody stage, derived from the two
// assignment ids. Exactly one of the three states holds at any time.
type AssignmentState string

const (
	StateUnassigned     AssignmentState = "UNASSIGNED"
	StateTeamAssigned   AssignmentState = "TEAM_ASSIGNED"
	StateMemberAssigned AssignmentState = "MEMBER_ASSIGNED"
)

// Lead is the central entity of the pipeline.
//
// Invariants: HandlerID set implies TeamAssignedID set (a member-level
// assignment implies team custody), and OwnerID never changes after
// creation.
type Lead struct {
	ID             int64        `json:"id"`
	UUID           uuid.UUID    `json:"uuid"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	College        string       `json:"college"`
	Branch         string       `json:"branch"`
	Domain         string       `json:"domain"`
	Status         authz.Status `json:"status"`
	TeamAssignedID *int64       `json:"teamAssignedId"`
	HandlerID      *int64       `json:"handlerId"`
	OwnerID        int64        `json:"ownerId"`
	IsSelfGen      bool         `json:"isSelfGen"`
	UpFrontFee     float64      `json:"upFrontFee"`
	RemainingFee   float64      `json:"remainingFee"`
	TicketAmount   float64      `json:"ticketAmount"`
	ReferredBy     string       `json:"referredBy"`
	Comment        string       `json:"comment"`
	AssignedAt     *time.Time   `json:"assignedAt"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// TeamAssigned implements authz.LeadView.
func (l *Lead) TeamAssigned() bool {
	return l != nil && l.TeamAssignedID != nil
}

// MemberAssigned implements authz.LeadView.
func (l *Lead) MemberAssigned() bool {
	return l != nil && l.HandlerID != nil
}

// State derives the custody stage from the assignment ids.
func (l *Lead) State() AssignmentState {
	switch {
	case l.MemberAssigned():
		return StateMemberAssigned
	case l.TeamAssigned():
		return StateTeamAssigned
	default:
		return StateUnassigned
	}
}

// LeadFilter defines the available parameters for listing leads.
type LeadFilter struct {
	Status    *authz.Status
	Search    string // matches name, email or phone
	Day       string // yyyy-MM-dd, filters on creation day
	TeamID    *int64
	HandlerID *int64
	OwnerID   *int64
	Page      int
	Limit     int
}

// PageMeta is the pagination block returned alongside lead lists.
type PageMeta struct {
	Page       int `json:"page"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// LeadPage is one page of leads plus its meta.
type LeadPage struct {
	Leads []Lead   `json:"leads"`
	Meta  PageMeta `json:"meta"`
}
