package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// ParseRole acepta exactamente los cinco roles de la enumeración.
func TestParseRole_RolesValidos(t *testing.T) {
	for _, r := range entity.AllRoles {
		parsed, err := entity.ParseRole(string(r))
		require.NoError(t, err, "rol %q debe ser válido", r)
		assert.Equal(t, r, parsed)
	}
}

// Un valor desconocido se rechaza: jamás se amplía acceso por un rol inventado.
func TestParseRole_RechazaDesconocidos(t *testing.T) {
	for _, s := range []string{"", "superadmin", "Admin", "MANAGER", "root", "manager "} {
		_, err := entity.ParseRole(s)
		assert.ErrorIs(t, err, domain.ErrInvalidRole, "entrada: %q", s)
	}
}

// Los predicados son exactos y nil-safe, sin jerarquía entre roles.
func TestPredicados_SinJerarquia(t *testing.T) {
	admin := &entity.Employee{Role: entity.RoleAdmin}
	manager := &entity.Employee{Role: entity.RoleManager}

	assert.True(t, entity.IsAdmin(admin))
	assert.False(t, entity.IsManager(admin), "admin NO es implícitamente manager")
	assert.True(t, entity.IsManager(manager))
	assert.False(t, entity.IsAdmin(manager))

	// nil nunca satisface un predicado
	assert.False(t, entity.IsAdmin(nil))
	assert.False(t, entity.IsManager(nil))
	assert.False(t, entity.IsEmployee(nil))
	assert.False(t, entity.IsTeamLead(nil))
	assert.False(t, entity.IsProjectManager(nil))
}

// DerivedStatus normaliza turno + pausa abierta al estado para la UI.
func TestDerivedStatus(t *testing.T) {
	open := &entity.TimeEntry{}
	now := open.ClockIn
	closed := &entity.TimeEntry{ClockOut: &now}

	assert.Equal(t, entity.StatusClockedIn, entity.DerivedStatus(open, nil))
	assert.Equal(t, entity.StatusOnBreak, entity.DerivedStatus(open, &entity.BreakEntry{}))
	assert.Equal(t, entity.StatusClockedOut, entity.DerivedStatus(closed, nil))
	// Un turno cerrado gana aunque quede una pausa colgada
	assert.Equal(t, entity.StatusClockedOut, entity.DerivedStatus(closed, &entity.BreakEntry{}))
	assert.Equal(t, entity.StatusClockedOut, entity.DerivedStatus(nil, nil))
}
