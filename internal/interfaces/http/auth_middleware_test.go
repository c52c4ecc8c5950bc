package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// FAKES
// ═══════════════════════════════════════════════════════════════════════════

type fakeEmployeeRepo struct {
	byID    map[string]*entity.Employee
	byCode  map[string]*entity.Employee
	tenants map[string]*access.Tenant
}

func (f *fakeEmployeeRepo) Create(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, activeOnly bool) (*entity.Employee, error) {
	e, ok := f.byID[id]
	if !ok || (activeOnly && !e.Active()) {
		return nil, nil
	}
	return e, nil
}
func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string, activeOnly bool) (*entity.Employee, error) {
	e, ok := f.byCode[code]
	if !ok || (activeOnly && !e.Active()) {
		return nil, nil
	}
	return e, nil
}
func (f *fakeEmployeeRepo) GetByEmailAndCompany(context.Context, string, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) GetByEmail(context.Context, string) (*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(context.Context, *entity.Employee) error { return nil }
func (f *fakeEmployeeRepo) Deactivate(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) List(context.Context, access.Scope, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) ResolveTenant(_ context.Context, employeeID string) (*access.Tenant, error) {
	return f.tenants[employeeID], nil
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

const (
	testAdminID    = "7b2e1f40-9a3c-4d5e-8f6a-1b2c3d4e5f60"
	testNoTenantID = "11111111-2222-4333-8444-555555555555"
	testCompany    = "co-1"
)

func newTestApp(t *testing.T, demo auth.DemoProvider) *fiber.App {
	t.Helper()
	repo := &fakeEmployeeRepo{
		byID: map[string]*entity.Employee{
			testAdminID: {ID: testAdminID, CompanyID: testCompany, Role: entity.RoleAdmin, Status: entity.EmployeeActive},
			testNoTenantID: {ID: testNoTenantID, CompanyID: "", Role: entity.RoleEmployee, Status: entity.EmployeeActive},
		},
		byCode: map[string]*entity.Employee{
			"EMP001": {ID: "emp-code-1", CompanyID: testCompany, Role: entity.RoleEmployee, Status: entity.EmployeeActive},
		},
		tenants: map[string]*access.Tenant{
			testAdminID:  {CompanyID: testCompany, OrganizationID: "org-1"},
			"emp-code-1": {CompanyID: testCompany, OrganizationID: "org-1"},
		},
	}
	resolver := auth.NewIdentityResolver(repo, "secret", demo)
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	app := fiber.New()
	app.Get("/protected", IdentityMiddleware(resolver, log), func(c *fiber.Ctx) error {
		return c.JSON(dto.OK(fiber.Map{
			"employee_id": CurrentEmployee(c).ID,
			"company_id":  CurrentTenant(c).CompanyID,
			"demo":        IsDemo(c),
		}))
	})
	app.Get("/admin", IdentityMiddleware(resolver, log), RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(dto.OK(nil))
	})
	return app
}

func decodeData(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	require.True(t, resp.Success)
	return resp.Data
}

// ═══════════════════════════════════════════════════════════════════════════
// RESOLUCIÓN DE IDENTIDAD
// ═══════════════════════════════════════════════════════════════════════════

func TestIdentityMiddleware_SinCredencial401(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIdentityMiddleware_BearerUUID(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp.Body)
	assert.Equal(t, testAdminID, data["employee_id"])
	assert.Equal(t, testCompany, data["company_id"])
	assert.Equal(t, false, data["demo"])
}

func TestIdentityMiddleware_HeaderEmployeeCode(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("x-employee-id", "EMP001")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp.Body)
	assert.Equal(t, "emp-code-1", data["employee_id"])
}

func TestIdentityMiddleware_CredencialDesconocida401(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("x-employee-id", "NOEXISTE")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIdentityMiddleware_SinTenant403(t *testing.T) {
	app := newTestApp(t, nil)

	// Identidad válida pero ResolveTenant retorna nil → jamás un tenant default.
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+testNoTenantID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestIdentityMiddleware_DemoFallback(t *testing.T) {
	demo := auth.NewStaticDemoProvider("demo-1", testCompany, "org-1", "demo@nomina.local")
	app := newTestApp(t, demo)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp.Body)
	assert.Equal(t, "demo-1", data["employee_id"])
	assert.Equal(t, true, data["demo"])
}

// ═══════════════════════════════════════════════════════════════════════════
// ROLES
// ═══════════════════════════════════════════════════════════════════════════

func TestRequireRole_AdminPasa(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminID)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmployeeRechazado(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("x-employee-id", "EMP001")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
