package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/models"
)

type analyticsCall struct {
	from, to string
}

type fakeAnalyticsAPI struct {
	mu      sync.Mutex
	calls   []analyticsCall
	agg     *models.Aggregate
	err     error
	release chan struct{} // when set, calls block until closed
}

func (f *fakeAnalyticsAPI) Analytics(ctx context.Context, scope Scope, from, to string) (*models.Aggregate, error) {
	f.mu.Lock()
	f.calls = append(f.calls, analyticsCall{from, to})
	agg, err, release := f.agg, f.err, f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	if agg != nil {
		return agg, nil
	}
	return &models.Aggregate{FromDate: from, ToDate: to}, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.August, 28, 15, 0, 0, 0, time.UTC)
}

func newTestView(api *fakeAnalyticsAPI) *AnalyticsView {
	v := NewAnalyticsView(api, ScopeSelf)
	v.now = fixedNow
	return v
}

func TestViewOpensOnAReadyWindow(t *testing.T) {
	v := newTestView(&fakeAnalyticsAPI{})
	assert.Equal(t, RangeToday, v.Mode())
	from, to, ready := v.Window()
	require.True(t, ready, "the first refresh must not need a range pick")
	assert.Equal(t, "2026-08-28", from)
	assert.Equal(t, "2026-08-28", to)

	admin := NewAnalyticsView(&fakeAnalyticsAPI{}, ScopeAdmin)
	admin.now = fixedNow
	assert.Equal(t, RangeThisMonth, admin.Mode())
	from, to, ready = admin.Window()
	require.True(t, ready)
	assert.Equal(t, "2026-08-01", from)
	assert.Equal(t, "2026-08-28", to)
}

func TestQuickRangesResolveWindows(t *testing.T) {
	api := &fakeAnalyticsAPI{}
	v := newTestView(api)

	require.NoError(t, v.SelectToday(context.Background()))
	assert.Equal(t, RangeToday, v.Mode())
	assert.Equal(t, analyticsCall{"2026-08-28", "2026-08-28"}, api.calls[0])

	require.NoError(t, v.SelectYesterday(context.Background()))
	assert.Equal(t, analyticsCall{"2026-08-27", "2026-08-27"}, api.calls[1])

	require.NoError(t, v.SelectThisMonth(context.Background()))
	assert.Equal(t, analyticsCall{"2026-08-01", "2026-08-28"}, api.calls[2])
}

func TestCustomRangeWaitsForBothEndpoints(t *testing.T) {
	api := &fakeAnalyticsAPI{}
	v := newTestView(api)

	require.NoError(t, v.SetCustomFrom(context.Background(), "2026-08-01"))
	assert.Empty(t, api.calls, "half-chosen range must not fetch")
	_, _, ready := v.Window()
	assert.False(t, ready)

	require.NoError(t, v.SetCustomTo(context.Background(), "2026-08-15"))
	require.Len(t, api.calls, 1)
	assert.Equal(t, analyticsCall{"2026-08-01", "2026-08-15"}, api.calls[0])
}

func TestQuickRangeReplacesCustomEndpoints(t *testing.T) {
	api := &fakeAnalyticsAPI{}
	v := newTestView(api)

	require.NoError(t, v.SetCustomFrom(context.Background(), "2026-08-01"))
	require.NoError(t, v.SelectToday(context.Background()))
	require.Equal(t, RangeToday, v.Mode())

	// returning to custom starts from scratch: the old lower bound is
	// gone, so setting only the upper bound fetches nothing
	require.NoError(t, v.SetCustomTo(context.Background(), "2026-08-15"))
	require.Len(t, api.calls, 1, "only the today fetch went out")
	_, _, ready := v.Window()
	assert.False(t, ready)
}

func TestStaleResponseNeverLands(t *testing.T) {
	release := make(chan struct{})
	api := &fakeAnalyticsAPI{release: release}
	v := newTestView(api)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.SelectThisMonth(context.Background()) // slow request
	}()

	// wait until the slow request is in flight
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.calls) == 1
	}, time.Second, time.Millisecond)

	// a newer window takes over and completes first
	api.mu.Lock()
	api.release = nil
	api.mu.Unlock()
	require.NoError(t, v.SelectToday(context.Background()))

	close(release)
	wg.Wait()

	agg, err := v.Current()
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, "2026-08-28", agg.FromDate, "the month window must not overwrite today")
	assert.Equal(t, RangeToday, v.Mode())
}

func TestErrorClearsToRetryableState(t *testing.T) {
	api := &fakeAnalyticsAPI{}
	v := newTestView(api)

	require.NoError(t, v.SelectToday(context.Background()))
	agg, err := v.Current()
	require.NoError(t, err)
	require.NotNil(t, agg)

	api.mu.Lock()
	api.err = errors.New("backend down")
	api.mu.Unlock()
	require.Error(t, v.Refresh(context.Background()))

	agg, err = v.Current()
	assert.Nil(t, agg, "stale numbers are never shown after a failure")
	assert.Error(t, err)

	// the window survives, so a plain retry recovers
	api.mu.Lock()
	api.err = nil
	api.mu.Unlock()
	require.NoError(t, v.Refresh(context.Background()))
	agg, err = v.Current()
	require.NoError(t, err)
	assert.NotNil(t, agg)
}
