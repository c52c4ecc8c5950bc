package entity

import "github.com/jhoicas/Nomina-api/internal/domain"

// Role es la enumeración cerrada de roles del sistema. Un valor fuera de la
// enumeración nunca debe ampliar acceso: ParseRole lo rechaza y los predicados
// comparan por igualdad exacta (sin jerarquía: admin NO es implícitamente manager).
type Role string

// Roles válidos para Employee.
const (
	RoleAdmin          Role = "admin"
	RoleManager        Role = "manager"
	RoleEmployee       Role = "employee"
	RoleTeamLead       Role = "team_lead"
	RoleProjectManager Role = "project_manager"
)

// AllRoles lista los roles válidos (para validación y documentación).
var AllRoles = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleTeamLead, RoleProjectManager}

// ParseRole valida un rol recibido como string. Valores desconocidos retornan
// domain.ErrInvalidRole; nunca se asume un rol por defecto.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", domain.ErrInvalidRole
	}
	return r, nil
}

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleTeamLead, RoleProjectManager:
		return true
	}
	return false
}

// String implementa fmt.Stringer.
func (r Role) String() string { return string(r) }

// Predicados de rol: puros, totales, false para empleado nil.

// IsAdmin indica si el empleado tiene rol admin.
func IsAdmin(e *Employee) bool { return e != nil && e.Role == RoleAdmin }

// IsManager indica si el empleado tiene rol manager.
func IsManager(e *Employee) bool { return e != nil && e.Role == RoleManager }

// IsEmployee indica si el empleado tiene rol employee.
func IsEmployee(e *Employee) bool { return e != nil && e.Role == RoleEmployee }

// IsTeamLead indica si el empleado tiene rol team_lead.
func IsTeamLead(e *Employee) bool { return e != nil && e.Role == RoleTeamLead }

// IsProjectManager indica si el empleado tiene rol project_manager.
func IsProjectManager(e *Employee) bool { return e != nil && e.Role == RoleProjectManager }
