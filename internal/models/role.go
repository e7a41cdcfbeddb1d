package models

// Role is the closed set of account roles. Permission checks switch over it
// exhaustively so an unhandled role is caught at review time instead of
// falling through a string comparison.
type Role string

const (
	RoleTeam        Role = "team"
	RoleAdmin       Role = "admin"
	RoleSystemAdmin Role = "system_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTeam, RoleAdmin, RoleSystemAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may approve or assign tasks.
func (r Role) CanModerate() bool {
	switch r {
	case RoleAdmin, RoleSystemAdmin:
		return true
	case RoleTeam:
		return false
	}
	return false
}

func (r Role) String() string { return string(r) }
