package entities

// Role is the caller's role as asserted by the external auth layer.

type Role string

const (
	RoleConsultor  Role = "consultor"
	RoleAnalista   Role = "analista"
	RoleGestor     Role = "gestor"
	RoleSupervisor Role = "supervisor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleConsultor, RoleAnalista, RoleGestor, RoleSupervisor:
		return true
	}
	return false
}

// IsManager reports whether the role carries management powers
// (gestor and supervisor are equivalent for authorization purposes).
func (r Role) IsManager() bool {
	return r == RoleGestor || r == RoleSupervisor
}

// Identity is the authenticated caller, extracted from the bearer token by
// the HTTP middleware and passed down to the usecases.
type Identity struct {
	UserID string
	Role   Role
}
