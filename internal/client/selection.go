package client

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// LeadAPI is the slice of the backend the coordinator mutates through.
type LeadAPI interface {
	AssignToTeam(ctx context.Context, teamID int64, leadIDs []int64) (int, error)
	AssignToMember(ctx context.Context, memberID int64, leadIDs []int64) (int, error)
	Unassign(ctx context.Context, leadUUID uuid.UUID) (int, error)
	DeleteLead(ctx context.Context, leadUUID uuid.UUID) error
	ChangeLeadState(ctx context.Context, leadID int64, state string) (int, error)
}

// BulkOutcome reports what a bulk action actually did. Applied comes
// from the server and is authoritative; Partial means some requested
// leads were skipped because their state changed underneath us.
type BulkOutcome struct {
	Requested int
	Applied   int
}

func (o BulkOutcome) Partial() bool { return o.Applied < o.Requested }

var (
	ErrNothingSelected  = errors.New("nothing selected")
	ErrActionInFlight   = errors.New("a bulk action is already running")
	ErrNotSelectable    = errors.New("lead is not selectable for this role")
	ErrLeadNotOnPage    = errors.New("lead is not on the loaded page")
	ErrActionNotAllowed = errors.New("action not allowed for this role")
	ErrStatusNotAllowed = errors.New("status outside the role's projection")
)

// Coordinator tracks the multi-select over the currently loaded page
// and gates the bulk actions on it. At most one bulk action runs at a
// time; the selection survives failures and clears on success.
type Coordinator struct {
	mu       sync.Mutex
	api      LeadAPI
	sess     authz.Session
	page     map[int64]models.Lead
	order    []int64
	selected map[int64]struct{}
	inflight bool
}

func NewCoordinator(api LeadAPI, sess authz.Session) *Coordinator {
	return &Coordinator{
		api:      api,
		sess:     sess,
		page:     map[int64]models.Lead{},
		selected: map[int64]struct{}{},
	}
}

// SetPage replaces the loaded page. Selected ids that left the page
// are dropped so a stale selection can never reach the server.
func (s *Coordinator) SetPage(leads []models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = make(map[int64]models.Lead, len(leads))
	s.order = s.order[:0]
	for _, l := range leads {
		s.page[l.ID] = l
		s.order = append(s.order, l.ID)
	}
	for id := range s.selected {
		if _, onPage := s.page[id]; !onPage {
			delete(s.selected, id)
		}
	}
}

// Toggle flips one lead's membership in the selection. Leads the
// session cannot act on are rejected rather than silently ignored.
func (s *Coordinator) Toggle(leadID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, onPage := s.page[leadID]
	if !onPage {
		return ErrLeadNotOnPage
	}
	if _, already := s.selected[leadID]; already {
		delete(s.selected, leadID)
		return nil
	}
	if !authz.Selectable(s.sess, &lead) {
		return ErrNotSelectable
	}
	s.selected[leadID] = struct{}{}
	return nil
}

// SelectAll selects every selectable lead on the page and returns how
// many are now selected.
func (s *Coordinator) SelectAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		lead := s.page[id]
		if authz.Selectable(s.sess, &lead) {
			s.selected[id] = struct{}{}
		}
	}
	return len(s.selected)
}

func (s *Coordinator) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[int64]struct{}{}
}

// Selected returns the selected ids in page order.
func (s *Coordinator) Selected() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedLocked()
}

func (s *Coordinator) selectedLocked() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Coordinator) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

func (s *Coordinator) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// begin snapshots the selection and claims the in-flight slot.
func (s *Coordinator) begin() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight {
		return nil, ErrActionInFlight
	}
	if len(s.selected) == 0 {
		return nil, ErrNothingSelected
	}
	ids := s.selectedLocked()
	s.inflight = true
	return ids, nil
}

func (s *Coordinator) finish(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = false
	if success {
		s.selected = map[int64]struct{}{}
	}
}

// selectionAllowed checks the predicate over every selected lead still
// on the page. One denied lead denies the whole action.
func (s *Coordinator) selectionAllowed(ids []int64, allowed func(l *models.Lead) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		lead, onPage := s.page[id]
		if !onPage {
			continue
		}
		if !allowed(&lead) {
			return false
		}
	}
	return true
}

// AssignAllToTeam pushes the selection into a team's custody. Denied
// locally, before any request, when the role cannot place team custody
// or any selected lead is outside its assignable pool.
func (s *Coordinator) AssignAllToTeam(ctx context.Context, teamID int64) (BulkOutcome, error) {
	if !authz.CanAssignTeams(s.sess) {
		return BulkOutcome{}, ErrActionNotAllowed
	}
	ids, err := s.begin()
	if err != nil {
		return BulkOutcome{}, err
	}
	if !s.selectionAllowed(ids, func(l *models.Lead) bool { return authz.CanAssign(s.sess, l) }) {
		s.finish(false)
		return BulkOutcome{}, ErrActionNotAllowed
	}
	applied, err := s.api.AssignToTeam(ctx, teamID, ids)
	s.finish(err == nil)
	if err != nil {
		return BulkOutcome{}, err
	}
	return BulkOutcome{Requested: len(ids), Applied: applied}, nil
}

// AssignAllToMember hands the selection to one handler.
func (s *Coordinator) AssignAllToMember(ctx context.Context, memberID int64) (BulkOutcome, error) {
	if !s.sess.Caps.Has(authz.CapAssign) {
		return BulkOutcome{}, ErrActionNotAllowed
	}
	ids, err := s.begin()
	if err != nil {
		return BulkOutcome{}, err
	}
	if !s.selectionAllowed(ids, func(l *models.Lead) bool { return authz.CanAssign(s.sess, l) }) {
		s.finish(false)
		return BulkOutcome{}, ErrActionNotAllowed
	}
	applied, err := s.api.AssignToMember(ctx, memberID, ids)
	s.finish(err == nil)
	if err != nil {
		return BulkOutcome{}, err
	}
	return BulkOutcome{Requested: len(ids), Applied: applied}, nil
}

// UnassignAll releases each selected lead back to the pool. The
// backend unassigns one lead per call, so skipped leads just lower
// Applied instead of failing the batch. Front-line roles are denied
// before any request goes out.
func (s *Coordinator) UnassignAll(ctx context.Context) (BulkOutcome, error) {
	ids, err := s.begin()
	if err != nil {
		return BulkOutcome{}, err
	}
	if !s.selectionAllowed(ids, func(l *models.Lead) bool { return authz.CanUnassign(s.sess, l) }) {
		s.finish(false)
		return BulkOutcome{}, ErrActionNotAllowed
	}
	applied := 0
	for _, id := range ids {
		s.mu.Lock()
		lead, onPage := s.page[id]
		s.mu.Unlock()
		if !onPage {
			continue
		}
		n, callErr := s.api.Unassign(ctx, lead.UUID)
		if callErr != nil {
			s.finish(false)
			return BulkOutcome{}, callErr
		}
		applied += n
	}
	s.finish(true)
	return BulkOutcome{Requested: len(ids), Applied: applied}, nil
}

// DeleteAll soft-deletes the selection. Only unassigned leads can be
// deleted; anything claimed since selection is skipped.
func (s *Coordinator) DeleteAll(ctx context.Context) (BulkOutcome, error) {
	if !s.sess.Caps.Has(authz.CapDelete) {
		return BulkOutcome{}, ErrActionNotAllowed
	}
	ids, err := s.begin()
	if err != nil {
		return BulkOutcome{}, err
	}
	applied := 0
	for _, id := range ids {
		s.mu.Lock()
		lead, onPage := s.page[id]
		s.mu.Unlock()
		if !onPage {
			continue
		}
		if callErr := s.api.DeleteLead(ctx, lead.UUID); callErr != nil {
			s.finish(false)
			return BulkOutcome{}, callErr
		}
		applied++
	}
	s.finish(true)
	return BulkOutcome{Requested: len(ids), Applied: applied}, nil
}

// ChangeStatus moves one lead into a new status. The raw tag is
// validated against the session role's visible-status projection
// before any request goes out; unknown tags are denied too.
func (s *Coordinator) ChangeStatus(ctx context.Context, leadID int64, rawStatus string) (int, error) {
	status, parsed := authz.ParseStatus(rawStatus)
	if !parsed {
		return 0, ErrStatusNotAllowed
	}
	if !authz.CanEditStatus(s.sess) || !authz.CanSelectStatus(s.sess.Role, status) {
		return 0, ErrStatusNotAllowed
	}
	return s.api.ChangeLeadState(ctx, leadID, string(status))
}
