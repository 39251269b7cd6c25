package models

import "salesdesk/internal/authz"

// StatusMetrics is one cell of an analytics rollup.
//
// SelfGenCount never exceeds Count. GeneratedAmount and
// ProjectedAmount are exclusive per lead: a PAID/FULLY_PAID lead
// contributes collected fees to the former, any other open lead
// contributes its ticket amount to the latter.
type StatusMetrics struct {
	Count           int     `json:"count"`
	SelfGenCount    int     `json:"selfGenCount"`
	GeneratedAmount float64 `json:"generatedAmount"`
	ProjectedAmount float64 `json:"projectedAmount"`
}

// Add accumulates o into m.
func (m *StatusMetrics) Add(o StatusMetrics) {
	m.Count += o.Count
	m.SelfGenCount += o.SelfGenCount
	m.GeneratedAmount += o.GeneratedAmount
	m.ProjectedAmount += o.ProjectedAmount
}

// MemberAnalytics is the per-handler rollup inside a team.
type MemberAnalytics struct {
	MemberID   int64                          `json:"memberId"`
	MemberName string                         `json:"memberName"`
	Statuses   map[authz.Status]StatusMetrics `json:"statuses"`
	Totals     StatusMetrics                  `json:"totals"`
}

// TeamAnalytics is the per-team rollup; team cells equal the sum of
// the member cells for the same window.
type TeamAnalytics struct {
	TeamID   int64                          `json:"teamId"`
	TeamName string                         `json:"teamName"`
	Statuses map[authz.Status]StatusMetrics `json:"statuses"`
	Totals   StatusMetrics                  `json:"totals"`
	Members  []MemberAnalytics              `json:"members,omitempty"`
}

// Aggregate is a derived, read-only rollup over an inclusive calendar
// date range. Never persisted; recomputed per query window.
type Aggregate struct {
	FromDate string                         `json:"fromDate"`
	ToDate   string                         `json:"toDate"`
	Statuses map[authz.Status]StatusMetrics `json:"statuses"`
	Totals   StatusMetrics                  `json:"totals"`
	Teams    []TeamAnalytics                `json:"teams,omitempty"`
}
