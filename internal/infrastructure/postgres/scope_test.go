package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
)

func TestAppendScope_SoloTenant(t *testing.T) {
	clauses, args := appendScope(nil, nil, access.Scope{CompanyID: "co-1"}, "company_id", "employee_id")

	require.Len(t, clauses, 1)
	assert.Equal(t, "company_id = $1", clauses[0])
	assert.Equal(t, []any{"co-1"}, args)
}

func TestAppendScope_Employee(t *testing.T) {
	sc := access.Scope{CompanyID: "co-1", EmployeeID: "emp-1"}
	clauses, args := appendScope(nil, nil, sc, "company_id", "employee_id")

	require.Len(t, clauses, 2)
	assert.Equal(t, "company_id = $1", clauses[0])
	assert.Equal(t, "employee_id = $2", clauses[1])
	assert.Equal(t, []any{"co-1", "emp-1"}, args)
}

func TestAppendScope_ManagerSubconsulta(t *testing.T) {
	sc := access.Scope{CompanyID: "co-1", ManagerID: "mgr-1"}
	clauses, args := appendScope(nil, nil, sc, "t.company_id", "t.employee_id")

	require.Len(t, clauses, 2)
	assert.Contains(t, clauses[1], "manager_locations")
	assert.Contains(t, clauses[1], "ml.manager_id = $2")
	assert.Equal(t, []any{"co-1", "mgr-1"}, args)
}

func TestAppendScope_ContinuaNumeracion(t *testing.T) {
	// La query ya tiene 2 argumentos previos: el scope debe numerar desde $3
	clauses := []string{"id = $1", "status = $2"}
	args := []any{"x", "pending"}

	sc := access.Scope{CompanyID: "co-1", EmployeeID: "emp-1"}
	clauses, args = appendScope(clauses, args, sc, "company_id", "employee_id")

	require.Len(t, clauses, 4)
	assert.Equal(t, "company_id = $3", clauses[2])
	assert.Equal(t, "employee_id = $4", clauses[3])
	assert.Len(t, args, 4)
}

func TestAppendEmployeeScope_Manager(t *testing.T) {
	sc := access.Scope{CompanyID: "co-1", ManagerID: "mgr-1"}
	clauses, args := appendEmployeeScope(nil, nil, sc)

	require.Len(t, clauses, 2)
	assert.Equal(t, "company_id = $1", clauses[0])
	assert.Contains(t, clauses[1], "location_id IN")
	assert.Contains(t, clauses[1], "$2")
	assert.Equal(t, []any{"co-1", "mgr-1"}, args)
}

func TestWhereClause_PanicSinPredicados(t *testing.T) {
	assert.Panics(t, func() { whereClause(nil) })
}

func TestWhereClause_UneConAND(t *testing.T) {
	got := whereClause([]string{"a = $1", "b = $2"})
	assert.Equal(t, " WHERE a = $1 AND b = $2", got)
}
