package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
)

// Predicados de scope para consultas SQL. Toda query de lectura o escritura
// sobre datos de empleados pasa por estos helpers: el filtro de tenant no es
// un parámetro opcional que cada repositorio recuerda agregar, es la única
// forma de construir el WHERE.

// appendScope agrega al WHERE los predicados derivados del scope para una
// tabla con columna de tenant (companyCol) y columna de dueño (employeeCol):
//   - companyCol = $n                             (siempre)
//   - employeeCol = $n                            (rol employee: solo filas propias)
//   - employeeCol ∈ empleados de sedes asignadas  (rol manager: subconsulta)
//
// Retorna las cláusulas y los argumentos extendidos; la numeración $n continúa
// desde len(args).
func appendScope(clauses []string, args []any, sc access.Scope, companyCol, employeeCol string) ([]string, []any) {
	args = append(args, sc.CompanyID)
	clauses = append(clauses, fmt.Sprintf("%s = $%d", companyCol, len(args)))

	if sc.EmployeeID != "" {
		args = append(args, sc.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", employeeCol, len(args)))
	}
	if sc.ManagerID != "" {
		args = append(args, sc.ManagerID)
		clauses = append(clauses, fmt.Sprintf(
			"%s IN (SELECT e.id FROM employees e WHERE e.location_id IN (SELECT ml.location_id FROM manager_locations ml WHERE ml.manager_id = $%d))",
			employeeCol, len(args)))
	}
	return clauses, args
}

// appendEmployeeScope agrega los predicados de scope para la tabla employees,
// donde el dueño es la propia fila (id) y el filtro de manager aplica
// directamente sobre location_id.
func appendEmployeeScope(clauses []string, args []any, sc access.Scope) ([]string, []any) {
	args = append(args, sc.CompanyID)
	clauses = append(clauses, fmt.Sprintf("company_id = $%d", len(args)))

	if sc.EmployeeID != "" {
		args = append(args, sc.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("id = $%d", len(args)))
	}
	if sc.ManagerID != "" {
		args = append(args, sc.ManagerID)
		clauses = append(clauses, fmt.Sprintf(
			"location_id IN (SELECT ml.location_id FROM manager_locations ml WHERE ml.manager_id = $%d)",
			len(args)))
	}
	return clauses, args
}

// whereClause une las cláusulas con AND. Panic si está vacío: una query sin
// predicado de scope es un bug, no un caso válido.
func whereClause(clauses []string) string {
	if len(clauses) == 0 {
		panic("postgres: query sin predicado de scope")
	}
	return " WHERE " + strings.Join(clauses, " AND ")
}
