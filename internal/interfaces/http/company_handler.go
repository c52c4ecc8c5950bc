package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// CompanyHandler maneja el registro y consulta de empresas (tenants).
type CompanyHandler struct {
	uc  *usecase.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// Create registra una empresa nueva. Valida el NIT (dígito de verificación DIAN).
// POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		h.log.Warn().Err(err).Str("nit", in.NIT).Msg("registro de empresa fallido")
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetOwn obtiene la empresa del actor. Solo el propio tenant es visible.
// GET /api/companies/me
func (h *CompanyHandler) GetOwn(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}
