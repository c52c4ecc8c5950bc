package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalEmployee = "identity_employee"
	LocalTenant   = "identity_tenant"
	LocalDemo     = "identity_demo"
)

// IdentityMiddleware resuelve la identidad del request desde las cabeceras
// (authorization / x-employee-id) y carga el tenant. Sin identidad → 401;
// identidad sin tenant → 403. Nunca existe un tenant por defecto.
func IdentityMiddleware(resolver *auth.IdentityResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := resolver.Resolve(c.Context(), c.Get("Authorization"), c.Get("x-employee-id"))
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("resolver identidad")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno"))
		}
		if !id.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHORIZED", "credencial requerida"))
		}
		tenant, err := resolver.ResolveTenant(c.Context(), id)
		if err != nil {
			log.Error().Err(err).Str("employee_id", id.Employee.ID).Msg("resolver tenant")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno"))
		}
		if tenant == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("NO_SCOPE", "el usuario no tiene tenant asignado"))
		}

		c.Locals(LocalEmployee, id.Employee)
		c.Locals(LocalTenant, tenant)
		c.Locals(LocalDemo, id.Demo)

		// Sublogger por request: auth_demo marca TODA la traza downstream.
		reqLog := log.ForRequest(c.Method(), c.Path(), id.Demo)
		reqLog.Debug().Str("employee_id", id.Employee.ID).Str("role", id.Employee.Role.String()).Msg("request autenticado")

		return c.Next()
	}
}

// RequireRole restringe el acceso a los roles indicados (comparación exacta,
// sin jerarquía). Debe montarse después de IdentityMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		emp := CurrentEmployee(c)
		for _, r := range roles {
			if emp != nil && emp.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", "rol insuficiente"))
	}
}

// CurrentEmployee retorna el empleado autenticado del request (nil si no hay).
func CurrentEmployee(c *fiber.Ctx) *entity.Employee {
	emp, _ := c.Locals(LocalEmployee).(*entity.Employee)
	return emp
}

// CurrentTenant retorna el tenant resuelto del request (nil si no hay).
func CurrentTenant(c *fiber.Ctx) *access.Tenant {
	t, _ := c.Locals(LocalTenant).(*access.Tenant)
	return t
}

// IsDemo indica si la identidad del request vino del proveedor demo.
func IsDemo(c *fiber.Ctx) bool {
	d, _ := c.Locals(LocalDemo).(bool)
	return d
}

// ScopeFor construye el scope de datos del request según el rol del actor.
func ScopeFor(c *fiber.Ctx) access.Scope {
	return access.ForEmployee(CurrentEmployee(c), *CurrentTenant(c))
}

// SelfScope construye el scope restringido a las filas del propio actor
// (operaciones de reloj), independiente del rol.
func SelfScope(c *fiber.Ctx) access.Scope {
	return access.SelfOnly(CurrentEmployee(c), *CurrentTenant(c))
}
