package authz

// Status is the closed set of lead status tags.
//
// NB: earlier revisions carried two diverging catalogs, one of which
// also listed ASSIGNED. Assignment is modeled on the lead itself
// (team/handler custody), not as a status, so ASSIGNED was dropped in
// the consolidation. PENDING stays: the ops projection depends on it.
type Status string

const (
	StatusCGFL           Status = "CGFL"
	StatusDNP            Status = "DNP"
	StatusFollowUp       Status = "FOLLOW_UP"
	StatusCBL            Status = "CBL"
	StatusNotInterested  Status = "NOT_INTERESTED"
	StatusPaid           Status = "PAID"
	StatusBusy           Status = "BUSY"
	StatusSwitchOff      Status = "SWITCH_OFF"
	StatusOutOfService   Status = "OUT_OF_SERVICE"
	StatusNotConnected   Status = "NOT_CONNECTED"
	StatusSentDetails    Status = "SENT_DETAILS"
	StatusTime           Status = "TIME"
	StatusHungUp         Status = "HUNG_UP"
	StatusGiven          Status = "GIVEN"
	StatusJunk           Status = "JUNK"
	StatusNewlyGenerated Status = "NEWLY_GENERATED"
	StatusFullyPaid      Status = "FULLY_PAID"
	StatusPending        Status = "PENDING"
)

// salesStatuses is the working set most sales roles operate in.
// PENDING is excluded: it belongs to the ops stage of the funnel.
var salesStatuses = []Status{
	StatusNewlyGenerated,
	StatusCGFL,
	StatusDNP,
	StatusFollowUp,
	StatusCBL,
	StatusNotInterested,
	StatusPaid,
	StatusBusy,
	StatusSwitchOff,
	StatusOutOfService,
	StatusNotConnected,
	StatusSentDetails,
	StatusTime,
	StatusHungUp,
	StatusGiven,
	StatusJunk,
	StatusFullyPaid,
}

// AllStatuses returns the full catalog in a stable order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(salesStatuses)+1)
	out = append(out, salesStatuses...)
	out = append(out, StatusPending)
	return out
}

// ParseStatus maps a raw tag to a Status. Unknown tags fail closed.
func ParseStatus(s string) (Status, bool) {
	for _, st := range AllStatuses() {
		if st == Status(s) {
			return st, true
		}
	}
	return "", false
}

// VisibleStatuses returns the ordered subset of the catalog the role
// may filter by and drive a lead into. The same projection backs both
// the list filter and the status editor, so a role cannot push a lead
// into a status outside its process stage.
func VisibleStatuses(r Role) []Status {
	switch r {
	case RoleAdmin:
		return AllStatuses()
	case RoleOpsTeam:
		return []Status{StatusPaid, StatusPending}
	case RoleHR:
		return nil // no lead surface
	case RoleVerticalManager, RoleExecutive, RoleIntern, RoleLeadManager,
		RoleMarketingHead, RoleLeadGenManager, RoleTLIC, RoleFresher:
		out := make([]Status, len(salesStatuses))
		copy(out, salesStatuses)
		return out
	}
	return nil
}

// CanSelectStatus reports whether the role may move a lead into s.
func CanSelectStatus(r Role, s Status) bool {
	for _, v := range VisibleStatuses(r) {
		if v == s {
			return true
		}
	}
	return false
}

// IsGeneratedRevenue reports whether a lead in s counts its collected
// fees as generated revenue. Leads outside this set contribute their
// ticket amount to projected revenue instead; a lead never lands in
// both buckets.
func IsGeneratedRevenue(s Status) bool {
	return s == StatusPaid || s == StatusFullyPaid
}

// IsClosed reports whether s ends the sales funnel for a lead, so its
// ticket amount no longer counts as pipeline value.
func IsClosed(s Status) bool {
	return s == StatusJunk || s == StatusNotInterested
}
