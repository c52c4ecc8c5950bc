package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// TeamHandler CRUD de equipos, tenant-scoped.
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create crea un equipo en el tenant del actor.
// POST /api/teams
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), CurrentTenant(c).CompanyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List lista los equipos del tenant.
// GET /api/teams
func (h *TeamHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), CurrentTenant(c).CompanyID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID obtiene un equipo del tenant.
// GET /api/teams/:id
func (h *TeamHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// Update actualiza un equipo del tenant.
// PUT /api/teams/:id
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// Delete elimina un equipo del tenant.
// DELETE /api/teams/:id
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.uc.Delete(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return notFound(c)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}
