package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Nomina-api/pkg/jwt"
)

// Identity es el resultado de resolver las cabeceras de un request.
// Employee nil = no autenticado. Demo marca identidades del proveedor demo
// para que los logs downstream las distingan de credenciales reales.
type Identity struct {
	Employee *entity.Employee
	Demo     bool
}

// Authenticated indica si el request tiene una identidad válida.
func (i *Identity) Authenticated() bool { return i != nil && i.Employee != nil }

// DemoProvider es un proveedor de identidad de respaldo inyectado explícitamente
// al inicio del proceso (solo dev/QA). En producción el resolutor se construye
// con provider nil y la rama de fallback no existe.
type DemoProvider interface {
	Identity() *entity.Employee
	Tenant() access.Tenant
}

// IdentityResolver resuelve la identidad de un request a partir de sus cabeceras:
//
//	authorization: Bearer <id>   (JWT de sesión, UUID o código de empleado)
//	x-employee-id: <id>          (UUID o código de empleado)
//
// Solo lecturas: no tiene efectos secundarios más allá del lookup.
type IdentityResolver struct {
	employees repository.EmployeeRepository
	jwtSecret string
	demo      DemoProvider // nil = sin fallback
}

// NewIdentityResolver construye el resolutor. demo puede ser nil (producción).
func NewIdentityResolver(employees repository.EmployeeRepository, jwtSecret string, demo DemoProvider) *IdentityResolver {
	return &IdentityResolver{employees: employees, jwtSecret: jwtSecret, demo: demo}
}

// Resolve clasifica la credencial y busca el empleado activo correspondiente.
// Prioridad: Bearer sobre x-employee-id. Sin match → Identity{Employee: nil},
// salvo que exista proveedor demo.
func (r *IdentityResolver) Resolve(ctx context.Context, authHeader, employeeIDHeader string) (*Identity, error) {
	cred := credentialFrom(authHeader, employeeIDHeader)
	if cred != "" {
		emp, err := r.lookup(ctx, cred)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			return &Identity{Employee: emp}, nil
		}
	}
	if r.demo != nil {
		return &Identity{Employee: r.demo.Identity(), Demo: true}, nil
	}
	return &Identity{}, nil
}

// ResolveTenant carga el contexto de tenant de la identidad.
// nil SIEMPRE significa "sin scope autorizado" → 403; jamás un tenant default.
func (r *IdentityResolver) ResolveTenant(ctx context.Context, id *Identity) (*access.Tenant, error) {
	if !id.Authenticated() {
		return nil, nil
	}
	if id.Demo {
		t := r.demo.Tenant()
		if t.CompanyID == "" {
			return nil, nil
		}
		return &t, nil
	}
	return r.employees.ResolveTenant(ctx, id.Employee.ID)
}

// lookup clasifica la credencial y elige la consulta:
// JWT de sesión → claims.UserID; forma UUID canónica → búsqueda por ID;
// cualquier otra cosa → código de empleado opaco.
func (r *IdentityResolver) lookup(ctx context.Context, cred string) (*entity.Employee, error) {
	if LooksLikeJWT(cred) {
		claims, err := pkgjwt.Parse(r.jwtSecret, cred)
		if err != nil {
			// Token malformado o expirado: no degradar a lookup por código.
			return nil, nil
		}
		return r.employees.GetByID(ctx, claims.UserID, true)
	}
	if IsCanonicalUUID(cred) {
		return r.employees.GetByID(ctx, cred, true)
	}
	return r.employees.GetByCode(ctx, cred, true)
}

// credentialFrom extrae la credencial de las cabeceras: quita el prefijo Bearer
// y espacios. El Bearer tiene prioridad sobre x-employee-id.
func credentialFrom(authHeader, employeeIDHeader string) string {
	if h := strings.TrimSpace(authHeader); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		// Header sin esquema: tratarlo como credencial cruda.
		return h
	}
	return strings.TrimSpace(employeeIDHeader)
}

// IsCanonicalUUID reporta si s tiene la forma UUID canónica de 36 caracteres
// (grupos hex 8-4-4-4-12). uuid.Parse acepta otras variantes (urn:, llaves,
// sin guiones); aquí solo cuenta la forma canónica — todo lo demás es un
// código de empleado opaco.
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// LooksLikeJWT reporta si la credencial tiene forma de JWT compacto
// (tres segmentos no vacíos separados por punto).
func LooksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
