package entities

import "strings"

type Role string

const (
	RoleUnknown    Role = ""
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
	RoleClient     Role = "client"
	RoleCreator    Role = "creator"
)

// ParseRole is the single place free-form role strings become a Role.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, true
	case "superadmin", "super_admin", "super-admin":
		return RoleSuperadmin, true
	case "client":
		return RoleClient, true
	case "creator":
		return RoleCreator, true
	default:
		return RoleUnknown, false
	}
}

// IsAdminFamily is true for admin and superadmin.
func (r Role) IsAdminFamily() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

const (
	AdminRoleFinance  = "finance"
	AdminModeAdvanced = "advanced"
)

// Viewer is the session user a view is computed for.
type Viewer struct {
	UserID    string
	Role      Role
	AdminRole string
	AdminMode string
}

// IsDisabled marks finance admins in advanced mode as read-only for
// approve and reject, whatever the submission status.
func (v Viewer) IsDisabled() bool {
	if !v.Role.IsAdminFamily() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v.AdminRole), AdminRoleFinance) &&
		strings.EqualFold(strings.TrimSpace(v.AdminMode), AdminModeAdvanced)
}
