package client

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

type stateCall struct {
	leadID int64
	state  string
}

type fakeAPI struct {
	teamCalls   [][]int64
	memberCalls [][]int64
	unassigned  []uuid.UUID
	deleted     []uuid.UUID
	stateCalls  []stateCall
	applied     int
	err         error

	// onCall runs inside the API call, before it returns, so tests
	// can poke the coordinator while an action is in flight.
	onCall func()
}

func (f *fakeAPI) AssignToTeam(ctx context.Context, teamID int64, ids []int64) (int, error) {
	if f.onCall != nil {
		f.onCall()
	}
	f.teamCalls = append(f.teamCalls, ids)
	return f.applied, f.err
}

func (f *fakeAPI) AssignToMember(ctx context.Context, memberID int64, ids []int64) (int, error) {
	f.memberCalls = append(f.memberCalls, ids)
	return f.applied, f.err
}

func (f *fakeAPI) Unassign(ctx context.Context, u uuid.UUID) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.unassigned = append(f.unassigned, u)
	return 1, nil
}

func (f *fakeAPI) DeleteLead(ctx context.Context, u uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, u)
	return nil
}

func (f *fakeAPI) ChangeLeadState(ctx context.Context, leadID int64, state string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.stateCalls = append(f.stateCalls, stateCall{leadID: leadID, state: state})
	return 1, nil
}

func managerSession() authz.Session {
	return authz.Session{
		EmployeeID: 7,
		Role:       authz.RoleVerticalManager,
		Caps:       authz.Capabilities{Assign: true, Delete: true},
	}
}

func pageOf(leads ...models.Lead) []models.Lead { return leads }

func freeLead(id int64) models.Lead {
	return models.Lead{ID: id, UUID: uuid.New(), Status: authz.StatusNewlyGenerated}
}

func claimedLead(id, teamID int64) models.Lead {
	l := freeLead(id)
	l.TeamAssignedID = &teamID
	return l
}

func handledLead(id, teamID, handlerID int64) models.Lead {
	l := claimedLead(id, teamID)
	l.HandlerID = &handlerID
	return l
}

func TestToggleRespectsSelectablePool(t *testing.T) {
	c := NewCoordinator(&fakeAPI{}, managerSession())
	c.SetPage(pageOf(freeLead(1), claimedLead(2, 9)))

	require.NoError(t, c.Toggle(1))
	assert.Equal(t, []int64{1}, c.Selected())

	assert.ErrorIs(t, c.Toggle(2), ErrNotSelectable)
	assert.ErrorIs(t, c.Toggle(42), ErrLeadNotOnPage)

	// second toggle deselects
	require.NoError(t, c.Toggle(1))
	assert.Empty(t, c.Selected())
}

func TestSelectAllPicksOnlySelectable(t *testing.T) {
	c := NewCoordinator(&fakeAPI{}, managerSession())
	c.SetPage(pageOf(freeLead(1), claimedLead(2, 9), freeLead(3)))

	assert.Equal(t, 2, c.SelectAll())
	assert.Equal(t, []int64{1, 3}, c.Selected())

	c.Clear()
	assert.Empty(t, c.Selected())
}

func TestSetPageDropsStaleSelection(t *testing.T) {
	c := NewCoordinator(&fakeAPI{}, managerSession())
	c.SetPage(pageOf(freeLead(1), freeLead(2)))
	c.SelectAll()

	c.SetPage(pageOf(freeLead(2), freeLead(3)))
	assert.Equal(t, []int64{2}, c.Selected(), "lead 1 left the page")
}

func TestAssignAllClearsSelectionOnSuccess(t *testing.T) {
	api := &fakeAPI{applied: 2}
	c := NewCoordinator(api, managerSession())
	c.SetPage(pageOf(freeLead(1), freeLead(2)))
	c.SelectAll()

	out, err := c.AssignAllToTeam(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, BulkOutcome{Requested: 2, Applied: 2}, out)
	assert.False(t, out.Partial())
	assert.Empty(t, c.Selected())
	require.Len(t, api.teamCalls, 1)
	assert.Equal(t, []int64{1, 2}, api.teamCalls[0])
}

func TestAssignAllReportsPartialOutcome(t *testing.T) {
	api := &fakeAPI{applied: 1}
	c := NewCoordinator(api, managerSession())
	c.SetPage(pageOf(freeLead(1), freeLead(2)))
	c.SelectAll()

	out, err := c.AssignAllToTeam(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, out.Partial())
	assert.Equal(t, 2, out.Requested)
	assert.Equal(t, 1, out.Applied)
	assert.Empty(t, c.Selected(), "a partial apply still clears the selection")
}

func TestAssignAllKeepsSelectionOnFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("network down")}
	c := NewCoordinator(api, managerSession())
	c.SetPage(pageOf(freeLead(1)))
	c.SelectAll()

	_, err := c.AssignAllToTeam(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, []int64{1}, c.Selected(), "selection survives for a retry")
	assert.False(t, c.InFlight())
}

func TestAtMostOneBulkActionInFlight(t *testing.T) {
	api := &fakeAPI{applied: 1}
	c := NewCoordinator(api, managerSession())
	c.SetPage(pageOf(freeLead(1)))
	c.SelectAll()

	var nested error
	api.onCall = func() {
		_, nested = c.AssignAllToTeam(context.Background(), 6)
	}
	_, err := c.AssignAllToTeam(context.Background(), 5)
	require.NoError(t, err)
	assert.ErrorIs(t, nested, ErrActionInFlight)
	assert.Len(t, api.teamCalls, 1)
}

func TestBulkActionsNeedASelection(t *testing.T) {
	c := NewCoordinator(&fakeAPI{}, managerSession())
	c.SetPage(pageOf(freeLead(1)))

	_, err := c.AssignAllToTeam(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNothingSelected)
	_, err = c.DeleteAll(context.Background())
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestUnassignAllWalksTheSelection(t *testing.T) {
	teamID := int64(9)
	api := &fakeAPI{}

	// the exec selects unhandled team leads, hands them to a member,
	// and after the page refresh pulls them straight back
	exec := authz.Session{EmployeeID: 2, TeamID: teamID, Role: authz.RoleExecutive, Caps: authz.Capabilities{Assign: true}}
	c := NewCoordinator(api, exec)
	c.SetPage(pageOf(claimedLead(1, teamID), claimedLead(2, teamID)))
	c.SelectAll()
	c.SetPage(pageOf(handledLead(1, teamID, 4), handledLead(2, teamID, 4)))

	out, err := c.UnassignAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BulkOutcome{Requested: 2, Applied: 2}, out)
	assert.Len(t, api.unassigned, 2)
	assert.Empty(t, c.Selected())
}

func TestUnassignAllDeniedForFrontLine(t *testing.T) {
	api := &fakeAPI{}
	tlic := authz.Session{EmployeeID: 3, Role: authz.RoleTLIC, Caps: authz.Capabilities{Assign: true}}
	c := NewCoordinator(api, tlic)
	c.SetPage(pageOf(claimedLead(1, 9)))
	c.SelectAll()

	_, err := c.UnassignAll(context.Background())
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, api.unassigned, "nothing may reach the server")
	assert.Equal(t, []int64{1}, c.Selected(), "selection survives the denial")
	assert.False(t, c.InFlight())
}

func TestDeleteAllRequiresCapability(t *testing.T) {
	sess := managerSession()
	sess.Caps.Delete = false
	c := NewCoordinator(&fakeAPI{}, sess)
	c.SetPage(pageOf(freeLead(1)))
	c.SelectAll()

	_, err := c.DeleteAll(context.Background())
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Equal(t, []int64{1}, c.Selected())
}

func TestAssignAllToTeamNeedsAssignCapability(t *testing.T) {
	api := &fakeAPI{applied: 1}
	sess := managerSession()
	sess.Caps.Assign = false
	c := NewCoordinator(api, sess)
	c.SetPage(pageOf(freeLead(1)))
	c.SelectAll()

	_, err := c.AssignAllToTeam(context.Background(), 5)
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, api.teamCalls, "nothing may reach the server")
	assert.Equal(t, []int64{1}, c.Selected())
}

func TestAssignAllToTeamDeniedOutsideManagerPool(t *testing.T) {
	api := &fakeAPI{applied: 1}
	exec := authz.Session{EmployeeID: 2, TeamID: 9, Role: authz.RoleExecutive, Caps: authz.Capabilities{Assign: true}}
	c := NewCoordinator(api, exec)
	c.SetPage(pageOf(claimedLead(1, 9)))
	c.SelectAll()

	_, err := c.AssignAllToTeam(context.Background(), 5)
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, api.teamCalls)
}

func TestAssignAllToMemberNeedsAssignCapability(t *testing.T) {
	api := &fakeAPI{applied: 1}
	exec := authz.Session{EmployeeID: 2, TeamID: 9, Role: authz.RoleExecutive}
	c := NewCoordinator(api, exec)
	c.SetPage(pageOf(claimedLead(1, 9)))

	require.NoError(t, c.Toggle(1))
	_, err := c.AssignAllToMember(context.Background(), 4)
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, api.memberCalls)
	assert.Equal(t, []int64{1}, c.Selected())
}

func TestChangeStatusStaysInsideProjection(t *testing.T) {
	api := &fakeAPI{}
	ops := authz.Session{EmployeeID: 5, Role: authz.RoleOpsTeam, Caps: authz.Capabilities{Edit: true}}
	c := NewCoordinator(api, ops)

	_, err := c.ChangeStatus(context.Background(), 1, "JUNK")
	assert.ErrorIs(t, err, ErrStatusNotAllowed)
	_, err = c.ChangeStatus(context.Background(), 1, "NOT_A_STATUS")
	assert.ErrorIs(t, err, ErrStatusNotAllowed)
	assert.Empty(t, api.stateCalls, "denied statuses never produce a request")

	n, err := c.ChangeStatus(context.Background(), 1, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, api.stateCalls, 1)
	assert.Equal(t, stateCall{leadID: 1, state: "PENDING"}, api.stateCalls[0])
}

func TestChangeStatusNeedsEditCapability(t *testing.T) {
	api := &fakeAPI{}
	sess := authz.Session{EmployeeID: 2, Role: authz.RoleExecutive}
	c := NewCoordinator(api, sess)

	_, err := c.ChangeStatus(context.Background(), 1, "PAID")
	assert.ErrorIs(t, err, ErrStatusNotAllowed)
	assert.Empty(t, api.stateCalls)
}

func TestDeleteAllRemovesSelection(t *testing.T) {
	api := &fakeAPI{}
	c := NewCoordinator(api, managerSession())
	c.SetPage(pageOf(freeLead(1), freeLead(2)))
	c.SelectAll()

	out, err := c.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.Applied)
	assert.Len(t, api.deleted, 2)
	assert.Empty(t, c.Selected())
}
