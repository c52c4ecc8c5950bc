package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// AuthHandler maneja login con sesión JWT e identidad del request.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login autentica con email + password y emite un JWT de sesión.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		h.log.Warn().Err(err).Str("email", in.Email).Msg("login fallido")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Me retorna la identidad resuelta del request actual (requiere IdentityMiddleware).
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	emp := CurrentEmployee(c)
	tenant := CurrentTenant(c)
	return c.JSON(dto.OK(dto.MeResponse{
		User:           *auth.ToEmployeeResponse(emp),
		CompanyID:      tenant.CompanyID,
		OrganizationID: tenant.OrganizationID,
		Demo:           IsDemo(c),
	}))
}
