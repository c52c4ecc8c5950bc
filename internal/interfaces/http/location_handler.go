package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// LocationHandler CRUD de sedes, tenant-scoped.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create crea una sede en el tenant del actor.
// POST /api/locations
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), CurrentTenant(c).CompanyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List lista las sedes del tenant.
// GET /api/locations
func (h *LocationHandler) List(c *fiber.Ctx) error {
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

// GetByID obtiene una sede del tenant.
// GET /api/locations/:id
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// Update actualiza una sede del tenant.
// PUT /api/locations/:id
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
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

// Delete elimina una sede del tenant.
// DELETE /api/locations/:id
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.uc.Delete(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return notFound(c)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}
