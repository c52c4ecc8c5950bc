package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/timeclock"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// TimeclockHandler maneja el reloj de tiempo: turnos, pausas y aprobación.
type TimeclockHandler struct {
	uc  *timeclock.UseCase
	log *logger.Logger
}

// NewTimeclockHandler construye el handler.
func NewTimeclockHandler(uc *timeclock.UseCase, log *logger.Logger) *TimeclockHandler {
	return &TimeclockHandler{uc: uc, log: log}
}

// ClockIn abre un turno para el actor. Un turno abierto previo responde 409.
// POST /api/timeclock/clock-in
func (h *TimeclockHandler) ClockIn(c *fiber.Ctx) error {
	var in dto.ClockInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.ClockIn(c.Context(), CurrentEmployee(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// ClockOut cierra el turno abierto del actor (cierra también la pausa abierta).
// POST /api/timeclock/clock-out
func (h *TimeclockHandler) ClockOut(c *fiber.Ctx) error {
	out, err := h.uc.ClockOut(c.Context(), CurrentEmployee(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Status retorna el estado derivado del actor: clocked_in, on_break o clocked_out.
// GET /api/timeclock/status
func (h *TimeclockHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.Context(), CurrentEmployee(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// StartBreak abre una pausa dentro del turno abierto del actor.
// POST /api/timeclock/breaks/start
func (h *TimeclockHandler) StartBreak(c *fiber.Ctx) error {
	out, err := h.uc.StartBreak(c.Context(), CurrentEmployee(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// EndBreak cierra la pausa abierta del actor.
// POST /api/timeclock/breaks/end
func (h *TimeclockHandler) EndBreak(c *fiber.Ctx) error {
	out, err := h.uc.EndBreak(c.Context(), CurrentEmployee(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// List lista turnos dentro del scope con filtros opcionales.
// GET /api/timeclock/entries?from=&to=&employee_id=&status=
func (h *TimeclockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	f := repository.TimeEntryFilter{
		EmployeeID: c.Query("employee_id"),
		Status:     c.Query("status"),
	}
	if from, ok := parseRFC3339(c.Query("from")); ok {
		f.From = &from
	}
	if to, ok := parseRFC3339(c.Query("to")); ok {
		f.To = &to
	}

	out, err := h.uc.List(c.Context(), ScopeFor(c), f, page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("listar turnos")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// UpdateEntry corrige un turno (admin/manager dentro de scope). Fuera de scope → 404.
// PUT /api/timeclock/entries/:id
func (h *TimeclockHandler) UpdateEntry(c *fiber.Ctx) error {
	var in dto.UpdateTimeEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateEntry(c.Context(), c.Params("id"), ScopeFor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// BulkApprove aprueba en un solo UPDATE todos los turnos pendientes del rango
// dentro del scope. Idempotente: repetir la llamada afecta cero filas.
// POST /api/timeclock/entries/approve
func (h *TimeclockHandler) BulkApprove(c *fiber.Ctx) error {
	var in dto.BulkApproveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkApprove(c.Context(), ScopeFor(c), CurrentEmployee(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListBreaks lista las pausas de un turno dentro del scope.
// GET /api/timeclock/entries/:id/breaks
func (h *TimeclockHandler) ListBreaks(c *fiber.Ctx) error {
	out, err := h.uc.ListBreaks(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// parseRFC3339 parsea un query param de fecha; acepta RFC3339 o YYYY-MM-DD.
func parseRFC3339(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
