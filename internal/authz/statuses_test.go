package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusFailsClosed(t *testing.T) {
	for _, s := range AllStatuses() {
		got, ok := ParseStatus(string(s))
		require.True(t, ok)
		require.Equal(t, s, got)
	}
	for _, bad := range []string{"", "paid", "ASSIGNED", "DELETED"} {
		_, ok := ParseStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestVisibleStatusesProjections(t *testing.T) {
	assert.Len(t, VisibleStatuses(RoleAdmin), 18)
	assert.Equal(t, []Status{StatusPaid, StatusPending}, VisibleStatuses(RoleOpsTeam))
	assert.Empty(t, VisibleStatuses(RoleHR))

	sales := VisibleStatuses(RoleExecutive)
	assert.Len(t, sales, 17)
	assert.NotContains(t, sales, StatusPending)
	assert.Contains(t, sales, StatusNewlyGenerated)
	assert.Contains(t, sales, StatusJunk)
}

func TestStatusEditorSharesListProjection(t *testing.T) {
	// the same set backs both the filter and the editor, so a role
	// can only push leads into statuses it can also browse
	for _, r := range AllRoles() {
		visible := map[Status]bool{}
		for _, s := range VisibleStatuses(r) {
			visible[s] = true
		}
		for _, s := range AllStatuses() {
			assert.Equal(t, visible[s], CanSelectStatus(r, s), "%s / %s", r, s)
		}
	}
}

func TestOpsCannotReachSalesStatuses(t *testing.T) {
	assert.False(t, CanSelectStatus(RoleOpsTeam, StatusJunk))
	assert.False(t, CanSelectStatus(RoleOpsTeam, StatusNewlyGenerated))
	assert.True(t, CanSelectStatus(RoleOpsTeam, StatusPaid))
	assert.True(t, CanSelectStatus(RoleOpsTeam, StatusPending))
}

func TestRevenueBucketsAreExclusive(t *testing.T) {
	for _, s := range AllStatuses() {
		if IsGeneratedRevenue(s) {
			assert.False(t, IsClosed(s), s)
		}
	}
	assert.True(t, IsGeneratedRevenue(StatusPaid))
	assert.True(t, IsGeneratedRevenue(StatusFullyPaid))
	assert.True(t, IsClosed(StatusJunk))
	assert.True(t, IsClosed(StatusNotInterested))
	assert.False(t, IsGeneratedRevenue(StatusFollowUp))
	assert.False(t, IsClosed(StatusFollowUp))
}
