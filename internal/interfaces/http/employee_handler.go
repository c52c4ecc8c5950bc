package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// EmployeeHandler maneja el ciclo de vida de empleados: alta, perfil, rol,
// baja suave y sedes de manager.
type EmployeeHandler struct {
	uc  *usecase.EmployeeUseCase
	log *logger.Logger
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// Onboard da de alta un empleado en el tenant del actor (solo admin).
// POST /api/employees
func (h *EmployeeHandler) Onboard(c *fiber.Ctx) error {
	var in dto.OnboardEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Onboard(c.Context(), CurrentTenant(c).CompanyID, in)
	if err != nil {
		h.log.Warn().Err(err).Str("email", in.Email).Msg("onboard fallido")
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List lista empleados dentro del scope del actor.
// GET /api/employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), ScopeFor(c), page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("listar empleados")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetByID obtiene un empleado dentro del scope. Fuera de scope responde 404.
// GET /api/employees/:id
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		h.log.Error().Err(err).Msg("obtener empleado")
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// Update actualiza el perfil de un empleado (solo admin; el rol NO se toca aquí).
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
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

// ChangeRole cambia el rol y deja una fila inmutable de historial (solo admin).
// POST /api/employees/:id/role
func (h *EmployeeHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeRole(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID, CurrentEmployee(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("employee_id", c.Params("id")).Str("new_role", in.NewRole).
		Str("assigned_by", CurrentEmployee(c).ID).Msg("rol cambiado")
	return c.JSON(dto.OK(out))
}

// Deactivate da de baja suave a un empleado (status = inactive, solo admin).
// DELETE /api/employees/:id
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	ok, err := h.uc.Deactivate(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return notFound(c)
	}
	return c.JSON(dto.OK(fiber.Map{"deactivated": true}))
}

// RoleHistory lista el historial de cambios de rol del empleado (solo admin).
// GET /api/employees/:id/role-history
func (h *EmployeeHandler) RoleHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.RoleHistory(c.Context(), CurrentTenant(c).CompanyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// AssignLocation asigna una sede a un manager (solo admin).
// POST /api/employees/:id/locations
func (h *EmployeeHandler) AssignLocation(c *fiber.Ctx) error {
	var in dto.AssignLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "location_id requerido"))
	}
	if err := h.uc.AssignLocation(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID, in.LocationID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(fiber.Map{"assigned": true}))
}

// UnassignLocation quita una sede de un manager (solo admin).
// DELETE /api/employees/:id/locations/:locationId
func (h *EmployeeHandler) UnassignLocation(c *fiber.Ctx) error {
	if err := h.uc.UnassignLocation(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID, c.Params("locationId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"unassigned": true}))
}

// ListLocations lista las sedes asignadas a un manager (solo admin).
// GET /api/employees/:id/locations
func (h *EmployeeHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(c.Context(), c.Params("id"), CurrentTenant(c).CompanyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"location_ids": out}))
}
