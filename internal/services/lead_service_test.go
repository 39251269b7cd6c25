package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

// fakeCRUDStore records the filter List saw and serves a small set.
type fakeCRUDStore struct {
	leads      map[int64]*models.Lead
	lastFilter models.LeadFilter
	created    []*models.Lead
	deleted    []uuid.UUID
}

func newFakeCRUDStore(leads ...*models.Lead) *fakeCRUDStore {
	s := &fakeCRUDStore{leads: map[int64]*models.Lead{}}
	for _, l := range leads {
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeCRUDStore) Create(lead *models.Lead) error {
	lead.ID = int64(len(s.leads) + 1)
	s.leads[lead.ID] = lead
	s.created = append(s.created, lead)
	return nil
}

func (s *fakeCRUDStore) GetByID(id int64) (*models.Lead, error) { return s.leads[id], nil }

func (s *fakeCRUDStore) GetByUUID(u uuid.UUID) (*models.Lead, error) {
	for _, l := range s.leads {
		if l.UUID == u {
			return l, nil
		}
	}
	return nil, nil
}

func (s *fakeCRUDStore) UpdateEditable(lead *models.Lead) error {
	s.leads[lead.ID] = lead
	return nil
}

func (s *fakeCRUDStore) SoftDelete(u uuid.UUID) (int64, error) {
	for id, l := range s.leads {
		if l.UUID == u && l.TeamAssignedID == nil {
			delete(s.leads, id)
			s.deleted = append(s.deleted, u)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeCRUDStore) List(f models.LeadFilter) ([]models.Lead, int, error) {
	s.lastFilter = f
	out := make([]models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, *l)
	}
	return out, len(out), nil
}

func TestCreateForcesOwnerAndUnassignedState(t *testing.T) {
	store := newFakeCRUDStore()
	svc := NewLeadService(store)
	sess := authz.Session{EmployeeID: 7, Role: authz.RoleExecutive, Caps: fullCaps()}

	teamID := int64(3)
	body := &models.Lead{
		Name:           "someone",
		OwnerID:        42, // must be ignored
		TeamAssignedID: &teamID,
	}
	require.NoError(t, svc.Create(sess, body))
	assert.EqualValues(t, 7, body.OwnerID)
	assert.Nil(t, body.TeamAssignedID)
	assert.Nil(t, body.HandlerID)
	assert.Equal(t, authz.StatusNewlyGenerated, body.Status)
	assert.NotEqual(t, uuid.Nil, body.UUID)
}

func TestCreateRejectsInvisibleStatus(t *testing.T) {
	svc := NewLeadService(newFakeCRUDStore())
	sess := authz.Session{EmployeeID: 7, Role: authz.RoleExecutive, Caps: fullCaps()}
	err := svc.Create(sess, &models.Lead{Name: "x", Status: authz.StatusPending})
	assert.ErrorIs(t, err, ErrStatusNotVisible)

	noCreate := sess
	noCreate.Caps.Create = false
	err = svc.Create(noCreate, &models.Lead{Name: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListScopesByRole(t *testing.T) {
	store := newFakeCRUDStore(&models.Lead{ID: 1, Status: authz.StatusCGFL})
	svc := NewLeadService(store)

	// admins browse unscoped
	_, err := svc.List(authz.Session{Role: authz.RoleAdmin}, models.LeadFilter{})
	require.NoError(t, err)
	assert.Nil(t, store.lastFilter.TeamID)
	assert.Nil(t, store.lastFilter.OwnerID)

	// team members are pinned to their team
	_, err = svc.List(authz.Session{EmployeeID: 7, TeamID: 4, Role: authz.RoleExecutive}, models.LeadFilter{})
	require.NoError(t, err)
	require.NotNil(t, store.lastFilter.TeamID)
	assert.EqualValues(t, 4, *store.lastFilter.TeamID)

	// teamless members fall back to their own leads
	_, err = svc.List(authz.Session{EmployeeID: 7, Role: authz.RoleIntern}, models.LeadFilter{})
	require.NoError(t, err)
	require.NotNil(t, store.lastFilter.OwnerID)
	assert.EqualValues(t, 7, *store.lastFilter.OwnerID)

	_, err = svc.List(authz.Session{Role: authz.RoleHR}, models.LeadFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListRejectsStatusOutsideProjection(t *testing.T) {
	svc := NewLeadService(newFakeCRUDStore())
	junk := authz.StatusJunk
	_, err := svc.List(authz.Session{Role: authz.RoleOpsTeam}, models.LeadFilter{Status: &junk})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateEditableGuardsFees(t *testing.T) {
	current := &models.Lead{ID: 1, Name: "old", UpFrontFee: 100, TicketAmount: 500}
	store := newFakeCRUDStore(current)
	svc := NewLeadService(store)

	vm := authz.Session{Role: authz.RoleVerticalManager, Caps: fullCaps()}
	_, err := svc.UpdateEditable(vm, 1, &models.Lead{Name: "new", UpFrontFee: 999, TicketAmount: 500})
	assert.ErrorIs(t, err, ErrForbidden, "manager tier never touches financials")

	// same role may still edit contact fields when fees are untouched
	got, err := svc.UpdateEditable(vm, 1, &models.Lead{Name: "new", UpFrontFee: 100, TicketAmount: 500})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestDeleteRefusedOnceInCustody(t *testing.T) {
	teamID := int64(3)
	claimed := &models.Lead{ID: 1, UUID: uuid.New(), TeamAssignedID: &teamID}
	free := &models.Lead{ID: 2, UUID: uuid.New()}
	store := newFakeCRUDStore(claimed, free)
	svc := NewLeadService(store)

	admin := authz.Session{Role: authz.RoleAdmin, Caps: fullCaps()}
	assert.ErrorIs(t, svc.Delete(admin, claimed.UUID), ErrForbidden)
	require.NoError(t, svc.Delete(admin, free.UUID))
	assert.ErrorIs(t, svc.Delete(admin, free.UUID), ErrNotFound)
}
