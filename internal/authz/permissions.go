package authz

// LeadView is the slice of a lead's state the permission predicates
// need. Predicates accept the interface so they stay free of the
// model package and usable on both sides of the API.
type LeadView interface {
	// TeamAssigned reports whether the lead is in a team's custody.
	TeamAssigned() bool
	// MemberAssigned reports whether a specific handler owns the lead.
	MemberAssigned() bool
}

// Predicates are pure: no predicate mutates state or panics. A nil
// lead or an unknown role denies.

// CanAssign reports whether the session may assign the lead onward.
// Manager-tier roles place unassigned leads into team custody;
// Executives hand team-assigned leads to a member; the front-line
// sales roles may only self-assign, which the assignment service
// enforces by requiring target member == session employee.
func CanAssign(s Session, l LeadView) bool {
	if l == nil || !s.Caps.Has(CapAssign) {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleMarketingHead, RoleLeadGenManager, RoleLeadManager:
		return !l.TeamAssigned()
	case RoleExecutive:
		return !l.MemberAssigned()
	case RoleIntern, RoleFresher, RoleTLIC:
		return !l.MemberAssigned()
	case RoleOpsTeam, RoleHR:
		return false
	}
	return false
}

// CanAssignTeams reports whether the session's role places leads into
// team custody at all, independent of any particular lead.
func CanAssignTeams(s Session) bool {
	if !s.Caps.Has(CapAssign) {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleMarketingHead, RoleLeadGenManager, RoleLeadManager:
		return true
	}
	return false
}

// CanUnassign reports whether the session may pull the lead back to
// the unassigned pool. Custody must match the role's level: team-tier
// roles need team custody, Executives need a handler. Front-line
// roles never unassign, whatever the lead's state.
func CanUnassign(s Session, l LeadView) bool {
	if l == nil || IsFrontLine(s.Role) {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleMarketingHead, RoleLeadGenManager, RoleLeadManager:
		return l.TeamAssigned()
	case RoleExecutive:
		return l.MemberAssigned()
	case RoleHR:
		return false
	}
	return false
}

// CanDelete reports whether the session may delete the lead. A lead
// already in team custody is protected from deletion.
func CanDelete(s Session, l LeadView) bool {
	if l == nil || !s.Caps.Has(CapDelete) {
		return false
	}
	if s.Role == RoleHR {
		return false
	}
	return !l.TeamAssigned()
}

// CanEditFee reports whether the session may edit a lead's fee
// fields. Manager-tier roles assign but never touch financials.
func CanEditFee(s Session) bool {
	if IsManagerTier(s.Role) {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleExecutive, RoleIntern, RoleLeadManager, RoleTLIC, RoleOpsTeam, RoleFresher:
		return s.Caps.Has(CapEdit)
	case RoleHR:
		return false
	}
	return false
}

// CanEditTicketAmount mirrors CanEditFee.
func CanEditTicketAmount(s Session) bool {
	return CanEditFee(s)
}

// CanEditStatus mirrors CanEditFee's role restriction; which statuses
// are reachable is governed separately by VisibleStatuses.
func CanEditStatus(s Session) bool {
	return CanEditFee(s)
}

// CanViewTeamAnalytics reports whether the session may query rollups
// at team granularity.
func CanViewTeamAnalytics(s Session) bool {
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleMarketingHead, RoleLeadGenManager, RoleLeadManager:
		return true
	case RoleExecutive:
		return s.TeamID != 0 // own team only, enforced by scope
	case RoleIntern, RoleTLIC, RoleOpsTeam, RoleHR, RoleFresher:
		return false
	}
	return false
}

// CanViewSelfAnalytics reports whether the session may query its own
// rollups.
func CanViewSelfAnalytics(s Session) bool {
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleExecutive, RoleIntern,
		RoleLeadManager, RoleMarketingHead, RoleLeadGenManager,
		RoleTLIC, RoleOpsTeam, RoleFresher:
		return true
	case RoleHR:
		return false
	}
	return false
}

// Selectable reports whether the lead belongs to the session's
// pending-action pool for multi-select. Manager-tier roles pick from
// leads awaiting team assignment; everyone else from leads without a
// handler.
func Selectable(s Session, l LeadView) bool {
	if l == nil {
		return false
	}
	switch s.Role {
	case RoleAdmin, RoleVerticalManager, RoleMarketingHead, RoleLeadGenManager, RoleLeadManager:
		return !l.TeamAssigned()
	case RoleExecutive, RoleIntern, RoleTLIC, RoleFresher:
		return !l.MemberAssigned()
	case RoleOpsTeam, RoleHR:
		return false
	}
	return false
}
