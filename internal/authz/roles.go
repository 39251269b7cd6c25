package authz

// Role is the closed set of employee roles. Every permission predicate
// switches exhaustively over this set; an unclassified role denies.
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleVerticalManager Role = "VERTICAL_MANAGER"
	RoleExecutive       Role = "EXECUTIVE"
	RoleIntern          Role = "INTERN"
	RoleLeadManager     Role = "LEAD_MANAGER"
	RoleMarketingHead   Role = "MARKETING_HEAD"
	RoleLeadGenManager  Role = "LEAD_GEN_MANAGER"
	RoleTLIC            Role = "TL_IC"
	RoleOpsTeam         Role = "OPS_TEAM"
	RoleHR              Role = "HR"
	RoleFresher         Role = "FRESHER"
)

// AllRoles returns every known role in a stable order.
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleVerticalManager,
		RoleExecutive,
		RoleIntern,
		RoleLeadManager,
		RoleMarketingHead,
		RoleLeadGenManager,
		RoleTLIC,
		RoleOpsTeam,
		RoleHR,
		RoleFresher,
	}
}

// ParseRole maps a raw role tag to a Role. Unknown tags fail closed.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleVerticalManager, RoleExecutive, RoleIntern,
		RoleLeadManager, RoleMarketingHead, RoleLeadGenManager,
		RoleTLIC, RoleOpsTeam, RoleHR, RoleFresher:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// IsManagerTier reports whether the role assigns leads to teams but is
// barred from editing lead financials and statuses.
func IsManagerTier(r Role) bool {
	return r == RoleVerticalManager || r == RoleMarketingHead || r == RoleLeadGenManager
}

// IsFrontLine reports whether the role never unassigns a lead,
// whatever the lead's custody state.
func IsFrontLine(r Role) bool {
	return r == RoleIntern || r == RoleFresher || r == RoleTLIC || r == RoleOpsTeam
}

// Capability names one of the flags in a role's permission record.
type Capability string

const (
	CapUpload Capability = "upload"
	CapCreate Capability = "create"
	CapEdit   Capability = "edit"
	CapAssign Capability = "assign"
	CapDelete Capability = "delete"
)

// Capabilities is the per-role permission record. It is authoritative
// server data (role_permissions table), fetched for the employee's
// role at login, never inferred from the role name alone.
type Capabilities struct {
	Upload bool `json:"upload"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Assign bool `json:"assign"`
	Delete bool `json:"delete"`
}

// Has reports whether the record grants the capability.
// Unknown capabilities are denied.
func (c Capabilities) Has(cap Capability) bool {
	switch cap {
	case CapUpload:
		return c.Upload
	case CapCreate:
		return c.Create
	case CapEdit:
		return c.Edit
	case CapAssign:
		return c.Assign
	case CapDelete:
		return c.Delete
	}
	return false
}

// Session is the identity threaded through every permission check.
// Built once per request from the verified token plus the employee's
// stored permission record; nothing reads ambient globals.
type Session struct {
	EmployeeID int64
	TeamID     int64 // 0 when the employee is not on a team
	Role       Role
	Caps       Capabilities
}
