package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Nomina-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de empleados: registra qué camino de lookup se usó
// (por UUID o por código) para verificar la clasificación de credenciales.
// ──────────────────────────────────────────────────────────────────────────────

const (
	tUUID    = "2c9a1c8e-70cf-4de3-9e40-1f1b2a3c4d5e"
	tCompany = "11111111-2222-3333-4444-555555555555"
	tOrg     = "66666666-7777-8888-9999-000000000000"
)

type fakeEmployeeRepo struct {
	byID      map[string]*entity.Employee
	byCode    map[string]*entity.Employee
	lastPath  string // "id" | "code"
	tenantFor map[string]*access.Tenant
}

func newFakeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byID:      map[string]*entity.Employee{},
		byCode:    map[string]*entity.Employee{},
		tenantFor: map[string]*access.Tenant{},
	}
}

func (f *fakeEmployeeRepo) add(e *entity.Employee) {
	f.byID[e.ID] = e
	f.byCode[e.EmployeeCode] = e
	f.tenantFor[e.ID] = &access.Tenant{CompanyID: e.CompanyID, OrganizationID: tOrg}
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, activeOnly bool) (*entity.Employee, error) {
	f.lastPath = "id"
	e := f.byID[id]
	if e != nil && activeOnly && !e.Active() {
		return nil, nil
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string, activeOnly bool) (*entity.Employee, error) {
	f.lastPath = "code"
	e := f.byCode[code]
	if e != nil && activeOnly && !e.Active() {
		return nil, nil
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ResolveTenant(_ context.Context, employeeID string) (*access.Tenant, error) {
	return f.tenantFor[employeeID], nil
}

func (f *fakeEmployeeRepo) Create(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Update(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Deactivate(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) GetByEmailAndCompany(context.Context, string, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) GetByEmail(context.Context, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) List(context.Context, access.Scope, int, int) ([]*entity.Employee, error) {
	return nil, nil
}

func activeEmployee() *entity.Employee {
	return &entity.Employee{
		ID:           tUUID,
		CompanyID:    tCompany,
		EmployeeCode: "EMP001",
		Email:        "ana@acme.co",
		Name:         "Ana",
		Role:         entity.RoleManager,
		Status:       entity.EmployeeActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de credenciales
// ──────────────────────────────────────────────────────────────────────────────

// Credencial con forma UUID canónica → SIEMPRE el camino de lookup por ID.
func TestResolve_UUIDCanonicoUsaLookupPorID(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	r := auth.NewIdentityResolver(repo, "secret", nil)

	id, err := r.Resolve(context.Background(), "Bearer "+tUUID, "")
	require.NoError(t, err)

	assert.True(t, id.Authenticated())
	assert.Equal(t, "id", repo.lastPath, "una credencial UUID debe resolverse por ID")
	assert.Equal(t, "EMP001", id.Employee.EmployeeCode)
}

// Credencial sin forma UUID → camino de lookup por código de empleado.
func TestResolve_CodigoOpacoUsaLookupPorCodigo(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	r := auth.NewIdentityResolver(repo, "secret", nil)

	id, err := r.Resolve(context.Background(), "", "EMP001")
	require.NoError(t, err)

	assert.True(t, id.Authenticated())
	assert.Equal(t, "code", repo.lastPath, "una credencial no-UUID debe resolverse por código")
}

// El Bearer tiene prioridad sobre x-employee-id.
func TestResolve_BearerTienePrioridad(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	r := auth.NewIdentityResolver(repo, "secret", nil)

	id, err := r.Resolve(context.Background(), "Bearer "+tUUID, "CODIGO-QUE-NO-EXISTE")
	require.NoError(t, err)
	assert.True(t, id.Authenticated())
	assert.Equal(t, "id", repo.lastPath)
}

func TestIsCanonicalUUID(t *testing.T) {
	casos := []struct {
		in   string
		want bool
	}{
		{tUUID, true},
		{"2C9A1C8E-70CF-4DE3-9E40-1F1B2A3C4D5E", true}, // mayúsculas válidas
		{"EMP001", false},
		{"", false},
		{"2c9a1c8e70cf4de39e401f1b2a3c4d5e", false},                // sin guiones: no canónico
		{"urn:uuid:2c9a1c8e-70cf-4de3-9e40-1f1b2a3c4d5e", false},  // forma urn: no canónica
		{"{2c9a1c8e-70cf-4de3-9e40-1f1b2a3c4d5e}", false},         // con llaves: no canónica
		{"2c9a1c8e-70cf-4de3-9e40-1f1b2a3c4dzz", false},           // hex inválido
	}
	for _, c := range casos {
		assert.Equal(t, c.want, auth.IsCanonicalUUID(c.in), "entrada: %q", c.in)
	}
}

// Un JWT de sesión emitido por login se resuelve vía claims → lookup por ID.
func TestResolve_JWTDeSesionUsaClaims(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	r := auth.NewIdentityResolver(repo, "secret", nil)

	tok, err := pkgjwt.Generate("secret", tUUID, tCompany, "EMP001", "manager", "test", 60)
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), "Bearer "+tok, "")
	require.NoError(t, err)
	assert.True(t, id.Authenticated())
	assert.Equal(t, "id", repo.lastPath)
}

// Un JWT con firma inválida no autentica (y no degrada a lookup por código).
func TestResolve_JWTInvalidoNoAutentica(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	r := auth.NewIdentityResolver(repo, "secret", nil)

	tok, err := pkgjwt.Generate("otro-secret", tUUID, tCompany, "EMP001", "manager", "test", 60)
	require.NoError(t, err)

	id, err := r.Resolve(context.Background(), "Bearer "+tok, "")
	require.NoError(t, err)
	assert.False(t, id.Authenticated())
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados inactivos y credenciales sin match
// ──────────────────────────────────────────────────────────────────────────────

// Un empleado desactivado no debe autenticarse nunca.
func TestResolve_EmpleadoInactivoNoAutentica(t *testing.T) {
	repo := newFakeRepo()
	e := activeEmployee()
	e.Status = entity.EmployeeInactive
	repo.add(e)
	r := auth.NewIdentityResolver(repo, "secret", nil)

	id, err := r.Resolve(context.Background(), "Bearer "+tUUID, "")
	require.NoError(t, err)
	assert.False(t, id.Authenticated(), "un empleado inactivo no debe autenticarse")
}

// Sin credencial y sin proveedor demo → no autenticado.
func TestResolve_SinCredencialSinDemo(t *testing.T) {
	r := auth.NewIdentityResolver(newFakeRepo(), "secret", nil)

	id, err := r.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, id.Authenticated())
	assert.False(t, id.Demo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedor demo inyectado
// ──────────────────────────────────────────────────────────────────────────────

// Con proveedor demo configurado, una credencial irresoluble cae a la identidad
// fija y el resultado queda marcado Demo=true (marcador de auditoría).
func TestResolve_DemoFallbackMarcado(t *testing.T) {
	demo := auth.NewStaticDemoProvider("00000000-0000-0000-0000-0000000000aa", tCompany, tOrg, "demo@acme.co")
	r := auth.NewIdentityResolver(newFakeRepo(), "secret", demo)

	id, err := r.Resolve(context.Background(), "", "")
	require.NoError(t, err)

	assert.True(t, id.Authenticated())
	assert.True(t, id.Demo, "la identidad demo debe quedar marcada")
	assert.Equal(t, entity.RoleAdmin, id.Employee.Role)

	tenant, err := r.ResolveTenant(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, tCompany, tenant.CompanyID)
}

// Una credencial válida gana sobre el proveedor demo (el fallback solo aplica
// cuando nada resuelve).
func TestResolve_CredencialRealGanaSobreDemo(t *testing.T) {
	repo := newFakeRepo()
	repo.add(activeEmployee())
	demo := auth.NewStaticDemoProvider("00000000-0000-0000-0000-0000000000aa", tCompany, tOrg, "demo@acme.co")
	r := auth.NewIdentityResolver(repo, "secret", demo)

	id, err := r.Resolve(context.Background(), "", "EMP001")
	require.NoError(t, err)
	assert.True(t, id.Authenticated())
	assert.False(t, id.Demo)
	assert.Equal(t, "ana@acme.co", id.Employee.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tenant
// ──────────────────────────────────────────────────────────────────────────────

// Identidad no autenticada → tenant nil (nunca un default).
func TestResolveTenant_NoAutenticadoEsNil(t *testing.T) {
	r := auth.NewIdentityResolver(newFakeRepo(), "secret", nil)
	id, _ := r.Resolve(context.Background(), "", "")

	tenant, err := r.ResolveTenant(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, tenant)
}
