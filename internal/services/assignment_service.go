package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// Legal custody moves. UNASSIGNED reaches MEMBER_ASSIGNED directly
// only on self-assignment, which AssignToMember enforces separately.
var assignmentTransitions = map[models.AssignmentState]map[models.AssignmentState]bool{
	models.StateUnassigned:     {models.StateTeamAssigned: true, models.StateMemberAssigned: true},
	models.StateTeamAssigned:   {models.StateMemberAssigned: true, models.StateUnassigned: true},
	models.StateMemberAssigned: {models.StateUnassigned: true},
}

func canMove(from, to models.AssignmentState) bool {
	nexts, ok := assignmentTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// AssignmentStore is the slice of the lead repository the state
// machine drives. Bulk updates carry their own state guards in SQL;
// the returned counts are authoritative.
type AssignmentStore interface {
	GetByID(id int64) (*models.Lead, error)
	GetByUUID(u uuid.UUID) (*models.Lead, error)
	AssignTeam(ids []int64, teamID int64, at time.Time) (int64, error)
	AssignMember(ids []int64, memberID, teamID int64) (int64, error)
	SelfAssign(ids []int64, memberID, teamID int64, at time.Time) (int64, error)
	Unassign(u uuid.UUID) (int64, error)
	UpdateStatus(id int64, status authz.Status) (int64, error)
}

// EmployeeDirectory resolves assignment targets.
type EmployeeDirectory interface {
	GetByID(id int64) (*models.Employee, error)
}

// TeamDirectory resolves assignment target teams.
type TeamDirectory interface {
	GetByID(id int64) (*models.Team, error)
}

// AssignmentNotifier receives bulk-assignment outcomes. May be nil.
type AssignmentNotifier interface {
	NotifyBulkOutcome(action string, requested, applied int)
}

// AssignmentService owns the lead custody lifecycle:
// UNASSIGNED -> TEAM_ASSIGNED -> MEMBER_ASSIGNED and back.
type AssignmentService struct {
	Store     AssignmentStore
	Employees EmployeeDirectory
	Teams     TeamDirectory
	Notifier  AssignmentNotifier
}

func NewAssignmentService(store AssignmentStore, employees EmployeeDirectory, teams TeamDirectory, notifier AssignmentNotifier) *AssignmentService {
	return &AssignmentService{Store: store, Employees: employees, Teams: teams, Notifier: notifier}
}

func (s *AssignmentService) notify(action string, requested int, applied int64) {
	if s.Notifier != nil {
		s.Notifier.NotifyBulkOutcome(action, requested, int(applied))
	}
	if int(applied) < requested {
		log.Printf("[assign][partial] action=%s requested=%d applied=%d", action, requested, applied)
	}
}

// AssignToTeam places unassigned leads into a team's custody. Only
// UNASSIGNED rows transition; the count reports how many actually
// moved, which callers must treat as authoritative.
func (s *AssignmentService) AssignToTeam(sess authz.Session, leadIDs []int64, teamID int64) (int, error) {
	if len(leadIDs) == 0 {
		return 0, ErrEmptySelection
	}
	if !authz.CanAssignTeams(sess) {
		return 0, ErrForbidden
	}
	team, err := s.Teams.GetByID(teamID)
	if err != nil {
		return 0, err
	}
	if team == nil {
		return 0, ErrNotFound
	}

	count, err := s.Store.AssignTeam(leadIDs, teamID, time.Now())
	if err != nil {
		return 0, err
	}
	s.notify("assign-to-team", len(leadIDs), count)
	return int(count), nil
}

// AssignToMember hands leads to a specific handler. An Executive
// assigns team-assigned leads within their own team; any sales role
// with the assign capability may claim unhandled leads for themselves,
// in which case an UNASSIGNED lead gains team custody in the same
// transition so handler-implies-team keeps holding.
func (s *AssignmentService) AssignToMember(sess authz.Session, leadIDs []int64, memberID int64) (int, error) {
	if len(leadIDs) == 0 {
		return 0, ErrEmptySelection
	}
	if !sess.Caps.Has(authz.CapAssign) {
		return 0, ErrForbidden
	}

	member, err := s.Employees.GetByID(memberID)
	if err != nil {
		return 0, err
	}
	if member == nil || member.TeamID == nil {
		return 0, ErrNotFound
	}

	if memberID == sess.EmployeeID {
		switch sess.Role {
		case authz.RoleExecutive, authz.RoleIntern, authz.RoleFresher, authz.RoleTLIC:
		default:
			return 0, ErrForbidden
		}
		count, err := s.Store.SelfAssign(leadIDs, memberID, *member.TeamID, time.Now())
		if err != nil {
			return 0, err
		}
		s.notify("self-assign", len(leadIDs), count)
		return int(count), nil
	}

	// assigning someone else: Executive within own team only
	if sess.Role != authz.RoleExecutive || sess.TeamID == 0 || *member.TeamID != sess.TeamID {
		return 0, ErrForbidden
	}
	count, err := s.Store.AssignMember(leadIDs, memberID, sess.TeamID)
	if err != nil {
		return 0, err
	}
	s.notify("assign-to-member", len(leadIDs), count)
	return int(count), nil
}

// Unassign returns a single lead to the unassigned pool, clearing
// team, handler and the assignment timestamp.
func (s *AssignmentService) Unassign(sess authz.Session, leadUUID uuid.UUID) (int, error) {
	lead, err := s.Store.GetByUUID(leadUUID)
	if err != nil {
		return 0, err
	}
	if lead == nil {
		return 0, ErrNotFound
	}
	if !canMove(lead.State(), models.StateUnassigned) {
		return 0, ErrInvalidTransition
	}
	if !authz.CanUnassign(sess, lead) {
		return 0, ErrForbidden
	}
	count, err := s.Store.Unassign(leadUUID)
	return int(count), err
}

// ChangeStatus moves a lead into a new status. Orthogonal to custody
// state; the only gate is the acting role's visible-status projection.
func (s *AssignmentService) ChangeStatus(sess authz.Session, leadID int64, rawStatus string) (int, error) {
	status, ok := authz.ParseStatus(rawStatus)
	if !ok {
		return 0, ErrUnknownStatus
	}
	if !authz.CanEditStatus(sess) {
		return 0, ErrForbidden
	}
	if !authz.CanSelectStatus(sess.Role, status) {
		return 0, ErrStatusNotVisible
	}
	lead, err := s.Store.GetByID(leadID)
	if err != nil {
		return 0, err
	}
	if lead == nil {
		return 0, ErrNotFound
	}
	count, err := s.Store.UpdateStatus(leadID, status)
	return int(count), err
}
