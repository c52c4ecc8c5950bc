package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// DashboardHandler métricas agregadas del tablero, siempre scoped.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Summary retorna headcount activo, turnos abiertos, aprobaciones pendientes
// y neto pagado del último mes, dentro del scope del actor.
// GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), ScopeFor(c))
	if err != nil {
		h.log.Error().Err(err).Msg("dashboard summary")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// HoursByLocation retorna horas trabajadas por sede en el rango (default: últimos 7 días).
// GET /api/dashboard/hours-by-location?from=&to=
func (h *DashboardHandler) HoursByLocation(c *fiber.Ctx) error {
	var from, to *time.Time
	if t, ok := parseRFC3339(c.Query("from")); ok {
		from = &t
	}
	if t, ok := parseRFC3339(c.Query("to")); ok {
		to = &t
	}
	out, err := h.uc.GetHoursByLocation(c.Context(), ScopeFor(c), from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("hours by location")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}
