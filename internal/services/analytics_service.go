package services

import (
	"sort"
	"time"

	"salesdesk/internal/authz"
	"salesdesk/internal/models"
)

const rangeLayout = "2006-01-02"

// DateRange is an inclusive calendar-day window.
type DateRange struct {
	From string
	To   string
}

// ParseRange validates a query window. Both endpoints are required; a
// half-chosen range never reaches the aggregator. Accepts yyyy-MM-dd
// or full RFC 3339 timestamps, which are truncated to their day.
func ParseRange(from, to string) (DateRange, error) {
	f, ok := parseDay(from)
	if !ok {
		return DateRange{}, ErrInvalidRange
	}
	t, ok := parseDay(to)
	if !ok {
		return DateRange{}, ErrInvalidRange
	}
	if t.Before(f) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{From: f.Format(rangeLayout), To: t.Format(rangeLayout)}, nil
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(rangeLayout, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// AnalyticsStore is the slice of the lead repository rollups read.
type AnalyticsStore interface {
	ListBetween(fromDate, toDate string) ([]models.Lead, error)
}

// TeamLister enumerates teams for the admin tree.
type TeamLister interface {
	List() ([]models.Team, error)
	Members(teamID int64) ([]models.Employee, error)
}

// AnalyticsService computes the per-window rollups. Aggregates are
// derived snapshots: nothing here is persisted, every query window is
// recomputed from the lead set.
type AnalyticsService struct {
	Store AnalyticsStore
	Teams TeamLister
}

func NewAnalyticsService(store AnalyticsStore, teams TeamLister) *AnalyticsService {
	return &AnalyticsService{Store: store, Teams: teams}
}

// metricsFor classifies one lead into exactly one revenue bucket:
// collected fees for PAID/FULLY_PAID, pipeline ticket value for leads
// still in progress, nothing for closed losses.
func metricsFor(l models.Lead) models.StatusMetrics {
	m := models.StatusMetrics{Count: 1}
	if l.IsSelfGen {
		m.SelfGenCount = 1
	}
	switch {
	case authz.IsGeneratedRevenue(l.Status):
		collected := l.TicketAmount - l.RemainingFee
		if collected < l.UpFrontFee {
			collected = l.UpFrontFee
		}
		m.GeneratedAmount = collected
	case authz.IsClosed(l.Status):
		// no pipeline value
	default:
		m.ProjectedAmount = l.TicketAmount
	}
	return m
}

func accumulate(agg *models.Aggregate, l models.Lead) {
	m := metricsFor(l)
	cell := agg.Statuses[l.Status]
	cell.Add(m)
	agg.Statuses[l.Status] = cell
	agg.Totals.Add(m)
}

// BuildAggregate rolls a lead set up by status. Pure.
func BuildAggregate(rng DateRange, leads []models.Lead) *models.Aggregate {
	agg := &models.Aggregate{
		FromDate: rng.From,
		ToDate:   rng.To,
		Statuses: map[authz.Status]models.StatusMetrics{},
	}
	for _, l := range leads {
		accumulate(agg, l)
	}
	return agg
}

// BuildTeamAnalytics rolls one team's slice of the lead set up by
// member and status. Team cells are the sums of the member cells, so
// the two granularities always agree for the same window.
func BuildTeamAnalytics(team models.Team, members []models.Employee, leads []models.Lead) models.TeamAnalytics {
	ta := models.TeamAnalytics{
		TeamID:   team.ID,
		TeamName: team.Name,
		Statuses: map[authz.Status]models.StatusMetrics{},
	}

	byMember := map[int64]*models.MemberAnalytics{}
	order := make([]int64, 0, len(members))
	for _, m := range members {
		byMember[m.ID] = &models.MemberAnalytics{
			MemberID:   m.ID,
			MemberName: m.Name,
			Statuses:   map[authz.Status]models.StatusMetrics{},
		}
		order = append(order, m.ID)
	}

	for _, l := range leads {
		if l.TeamAssignedID == nil || *l.TeamAssignedID != team.ID {
			continue
		}
		m := metricsFor(l)
		cell := ta.Statuses[l.Status]
		cell.Add(m)
		ta.Statuses[l.Status] = cell
		ta.Totals.Add(m)

		if l.HandlerID == nil {
			continue
		}
		ma, ok := byMember[*l.HandlerID]
		if !ok {
			// handler left the roster; keep the team cell, add a stub row
			ma = &models.MemberAnalytics{MemberID: *l.HandlerID, Statuses: map[authz.Status]models.StatusMetrics{}}
			byMember[*l.HandlerID] = ma
			order = append(order, *l.HandlerID)
		}
		mc := ma.Statuses[l.Status]
		mc.Add(m)
		ma.Statuses[l.Status] = mc
		ma.Totals.Add(m)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, id := range order {
		ta.Members = append(ta.Members, *byMember[id])
	}
	return ta
}

// Global is the admin rollup: the whole lead set plus per-team trees.
func (s *AnalyticsService) Global(rng DateRange) (*models.Aggregate, error) {
	leads, err := s.Store.ListBetween(rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	agg := BuildAggregate(rng, leads)

	teams, err := s.Teams.List()
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		members, err := s.Teams.Members(t.ID)
		if err != nil {
			return nil, err
		}
		agg.Teams = append(agg.Teams, BuildTeamAnalytics(t, members, leads))
	}
	return agg, nil
}

// Team is one team's rollup with per-member nesting.
func (s *AnalyticsService) Team(rng DateRange, team models.Team, members []models.Employee) (*models.Aggregate, error) {
	leads, err := s.Store.ListBetween(rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	scoped := leads[:0:0]
	for _, l := range leads {
		if l.TeamAssignedID != nil && *l.TeamAssignedID == team.ID {
			scoped = append(scoped, l)
		}
	}
	agg := BuildAggregate(rng, scoped)
	agg.Teams = []models.TeamAnalytics{BuildTeamAnalytics(team, members, scoped)}
	return agg, nil
}

// Self is the acting employee's own rollup: leads they handle plus
// unhandled leads they originated.
func (s *AnalyticsService) Self(rng DateRange, employeeID int64) (*models.Aggregate, error) {
	leads, err := s.Store.ListBetween(rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	scoped := leads[:0:0]
	for _, l := range leads {
		switch {
		case l.HandlerID != nil && *l.HandlerID == employeeID:
			scoped = append(scoped, l)
		case l.HandlerID == nil && l.OwnerID == employeeID:
			scoped = append(scoped, l)
		}
	}
	return BuildAggregate(rng, scoped), nil
}

// Ops is the operations rollup, restricted to the ops status slice so
// the sales-funnel cells never leak into the ops view.
func (s *AnalyticsService) Ops(rng DateRange) (*models.Aggregate, error) {
	leads, err := s.Store.ListBetween(rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	scoped := leads[:0:0]
	for _, l := range leads {
		if authz.CanSelectStatus(authz.RoleOpsTeam, l.Status) {
			scoped = append(scoped, l)
		}
	}
	return BuildAggregate(rng, scoped), nil
}
