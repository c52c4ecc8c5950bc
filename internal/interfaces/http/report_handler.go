package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/analytics"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// ReportHandler exporta reportes descargables (CSV para Excel).
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// TimeEntriesCSV exporta los turnos del rango como CSV Windows-1252
// (separador ';', interoperable con Excel en es-CO). Scoped como cualquier listado.
// GET /api/reports/time-entries.csv?from=&to=
func (h *ReportHandler) TimeEntriesCSV(c *fiber.Ctx) error {
	from, okFrom := parseRFC3339(c.Query("from"))
	to, okTo := parseRFC3339(c.Query("to"))
	if !okTo {
		to = time.Now()
	}
	if !okFrom {
		from = to.AddDate(0, -1, 0)
	}
	if !to.After(from) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "rango de fechas inválido"))
	}

	csvBytes, filename, err := h.uc.TimeEntriesCSV(c.Context(), ScopeFor(c), from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("exportar CSV de turnos")
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=windows-1252")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(csvBytes)
}
