// Package access define el alcance (scope) de datos de un request autenticado.
// El scope se deriva SIEMPRE de la identidad resuelta, nunca de parámetros del
// cliente: company_id/employee_id enviados en el body jamás lo sobreescriben.
package access

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// Tenant es el contexto de tenant resuelto por request (no se persiste en sesión).
type Tenant struct {
	CompanyID      string
	OrganizationID string
}

// Scope restringe toda consulta de datos. CompanyID es obligatorio en cada
// predicado WHERE; ManagerID añade la restricción a las sedes asignadas del
// manager; EmployeeID restringe a las filas propias (rol employee).
type Scope struct {
	CompanyID  string
	ManagerID  string
	EmployeeID string
}

// ForEmployee construye el scope de consulta según el rol del empleado:
//   - admin, team_lead, project_manager → todo el tenant
//   - manager  → tenant + subconsulta de sedes asignadas
//   - employee → tenant + solo sus propias filas
func ForEmployee(e *entity.Employee, t Tenant) Scope {
	sc := Scope{CompanyID: t.CompanyID}
	switch {
	case entity.IsManager(e):
		sc.ManagerID = e.ID
	case entity.IsEmployee(e):
		sc.EmployeeID = e.ID
	}
	return sc
}

// SelfOnly construye un scope restringido a las filas del propio empleado,
// independiente del rol (para operaciones de reloj: clock-in, pausas).
func SelfOnly(e *entity.Employee, t Tenant) Scope {
	return Scope{CompanyID: t.CompanyID, EmployeeID: e.ID}
}
