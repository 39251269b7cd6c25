package services

import (
	"time"

	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// LeadStore is the slice of the lead repository the CRUD surface uses.
type LeadStore interface {
	Create(lead *models.Lead) error
	GetByID(id int64) (*models.Lead, error)
	GetByUUID(u uuid.UUID) (*models.Lead, error)
	UpdateEditable(lead *models.Lead) error
	SoftDelete(u uuid.UUID) (int64, error)
	List(f models.LeadFilter) ([]models.Lead, int, error)
}

type LeadService struct {
	Repo LeadStore
}

func NewLeadService(repo LeadStore) *LeadService {
	return &LeadService{Repo: repo}
}

// Create registers a lead in the unassigned state. The owner comes
// from the session, never from the request body, and stays immutable.
func (s *LeadService) Create(sess authz.Session, lead *models.Lead) error {
	if !sess.Caps.Has(authz.CapCreate) {
		return ErrForbidden
	}
	lead.ID = 0
	lead.UUID = uuid.New()
	lead.OwnerID = sess.EmployeeID
	lead.TeamAssignedID = nil
	lead.HandlerID = nil
	lead.AssignedAt = nil
	if lead.Status == "" {
		lead.Status = authz.StatusNewlyGenerated
	}
	if !authz.CanSelectStatus(sess.Role, lead.Status) {
		return ErrStatusNotVisible
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	return s.Repo.Create(lead)
}

func (s *LeadService) GetByID(id int64) (*models.Lead, error) {
	return s.Repo.GetByID(id)
}

func (s *LeadService) GetByUUID(u uuid.UUID) (*models.Lead, error) {
	return s.Repo.GetByUUID(u)
}

// List returns one page scoped to what the role may see: managers and
// admins browse everything, Executives and their team members browse
// their team, ops browses its own status slice, HR has no lead
// surface. A status filter outside the role's projection is refused.
func (s *LeadService) List(sess authz.Session, f models.LeadFilter) (*models.LeadPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 100
	}
	if f.Status != nil && !authz.CanSelectStatus(sess.Role, *f.Status) {
		return nil, ErrForbidden
	}

	switch sess.Role {
	case authz.RoleAdmin, authz.RoleVerticalManager, authz.RoleMarketingHead,
		authz.RoleLeadGenManager, authz.RoleLeadManager, authz.RoleOpsTeam:
		// unscoped; ops is already limited by its status projection
	case authz.RoleExecutive, authz.RoleIntern, authz.RoleFresher, authz.RoleTLIC:
		if sess.TeamID != 0 {
			teamID := sess.TeamID
			f.TeamID = &teamID
		} else {
			ownerID := sess.EmployeeID
			f.OwnerID = &ownerID
		}
	case authz.RoleHR:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	leads, total, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	totalPages := total / f.Limit
	if total%f.Limit != 0 {
		totalPages++
	}
	return &models.LeadPage{
		Leads: leads,
		Meta:  models.PageMeta{Page: f.Page, Total: total, TotalPages: totalPages},
	}, nil
}

// UpdateEditable applies contact, fee and comment edits. Fee and
// ticket changes are refused for roles barred from financials.
func (s *LeadService) UpdateEditable(sess authz.Session, id int64, body *models.Lead) (*models.Lead, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if !sess.Caps.Has(authz.CapEdit) {
		return nil, ErrForbidden
	}

	feeChanged := body.UpFrontFee != current.UpFrontFee ||
		body.RemainingFee != current.RemainingFee ||
		body.TicketAmount != current.TicketAmount
	if feeChanged && !authz.CanEditFee(sess) {
		return nil, ErrForbidden
	}

	next := *current
	next.Name = body.Name
	next.Email = body.Email
	next.Phone = body.Phone
	next.College = body.College
	next.Branch = body.Branch
	next.Domain = body.Domain
	next.UpFrontFee = body.UpFrontFee
	next.RemainingFee = body.RemainingFee
	next.TicketAmount = body.TicketAmount
	next.ReferredBy = body.ReferredBy
	next.Comment = body.Comment

	if err := s.Repo.UpdateEditable(&next); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// Delete soft-deletes an unassigned lead. Custody protects a lead
// from deletion; the repository enforces the same guard in SQL.
func (s *LeadService) Delete(sess authz.Session, u uuid.UUID) error {
	lead, err := s.Repo.GetByUUID(u)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrNotFound
	}
	if !authz.CanDelete(sess, lead) {
		return ErrForbidden
	}
	count, err := s.Repo.SoftDelete(u)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidTransition
	}
	return nil
}
