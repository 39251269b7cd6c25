package client

import (
	"context"
	"sync"
	"time"

	"salesdesk/internal/models"
)

// AnalyticsAPI is the backend slice the view refreshes through.
type AnalyticsAPI interface {
	Analytics(ctx context.Context, scope Scope, fromDate, toDate string) (*models.Aggregate, error)
}

// RangeMode is the active quick-range choice. Exactly one mode is
// active at a time; picking one drops the previous one entirely,
// including any half-entered custom endpoints.
type RangeMode int

const (
	RangeNone RangeMode = iota
	RangeToday
	RangeYesterday
	RangeThisMonth
	RangeCustom
)

const dateLayout = "2006-01-02"

// AnalyticsView holds the analytics screen's window state and the
// last aggregate that landed. Responses carry a generation stamp so a
// slow reply for an abandoned window can never overwrite the current
// one.
type AnalyticsView struct {
	mu    sync.Mutex
	api   AnalyticsAPI
	scope Scope
	now   func() time.Time

	mode       RangeMode
	customFrom string
	customTo   string

	gen     uint64
	agg     *models.Aggregate
	lastErr error
}

// NewAnalyticsView starts with a ready window so the first Refresh
// fetches without any range having been picked. The admin dashboard
// opens on the month; everyone else opens on today.
func NewAnalyticsView(api AnalyticsAPI, scope Scope) *AnalyticsView {
	mode := RangeToday
	if scope == ScopeAdmin {
		mode = RangeThisMonth
	}
	return &AnalyticsView{api: api, scope: scope, now: time.Now, mode: mode}
}

func (v *AnalyticsView) Mode() RangeMode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Current returns the landed aggregate, or the error the last refresh
// ended in. After an error the aggregate is gone; the caller retries
// with Refresh rather than showing stale numbers.
func (v *AnalyticsView) Current() (*models.Aggregate, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.agg, v.lastErr
}

// Window reports the from/to dates the active mode resolves to. The
// second return is false while the window is incomplete, which only
// happens in custom mode with one endpoint still empty.
func (v *AnalyticsView) Window() (string, string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.windowLocked()
}

func (v *AnalyticsView) windowLocked() (string, string, bool) {
	today := v.now().Format(dateLayout)
	switch v.mode {
	case RangeToday:
		return today, today, true
	case RangeYesterday:
		y := v.now().AddDate(0, 0, -1).Format(dateLayout)
		return y, y, true
	case RangeThisMonth:
		n := v.now()
		first := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location())
		return first.Format(dateLayout), today, true
	case RangeCustom:
		if v.customFrom == "" || v.customTo == "" {
			return "", "", false
		}
		return v.customFrom, v.customTo, true
	default:
		return "", "", false
	}
}

func (v *AnalyticsView) SelectToday(ctx context.Context) error {
	return v.selectMode(ctx, RangeToday)
}

func (v *AnalyticsView) SelectYesterday(ctx context.Context) error {
	return v.selectMode(ctx, RangeYesterday)
}

func (v *AnalyticsView) SelectThisMonth(ctx context.Context) error {
	return v.selectMode(ctx, RangeThisMonth)
}

func (v *AnalyticsView) selectMode(ctx context.Context, mode RangeMode) error {
	v.mu.Lock()
	v.mode = mode
	v.customFrom, v.customTo = "", ""
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// SetCustomFrom switches to custom mode and records the lower bound.
// No fetch happens until both bounds are present.
func (v *AnalyticsView) SetCustomFrom(ctx context.Context, from string) error {
	v.mu.Lock()
	if v.mode != RangeCustom {
		v.customFrom, v.customTo = "", ""
	}
	v.mode = RangeCustom
	v.customFrom = from
	v.mu.Unlock()
	return v.Refresh(ctx)
}

func (v *AnalyticsView) SetCustomTo(ctx context.Context, to string) error {
	v.mu.Lock()
	if v.mode != RangeCustom {
		v.customFrom, v.customTo = "", ""
	}
	v.mode = RangeCustom
	v.customTo = to
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Refresh fetches the active window. A refresh that starts later
// always wins: any response stamped with an older generation is
// dropped on arrival.
func (v *AnalyticsView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	from, to, ready := v.windowLocked()
	if !ready {
		v.mu.Unlock()
		return nil
	}
	v.gen++
	myGen := v.gen
	scope := v.scope
	v.mu.Unlock()

	agg, err := v.api.Analytics(ctx, scope, from, to)

	v.mu.Lock()
	defer v.mu.Unlock()
	if myGen != v.gen {
		return nil // a newer window took over
	}
	if err != nil {
		v.agg = nil
		v.lastErr = err
		return err
	}
	v.agg = agg
	v.lastErr = nil
	return nil
}
