package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// PayrollHandler maneja nóminas: registros, bonos/deducciones, desprendible PDF
// y el documento soporte de nómina electrónica DIAN.
type PayrollHandler struct {
	uc           *payroll.UseCase
	pdfUC        *payroll.PDFUseCase
	orchestrator *payroll.NominaOrchestrator
	log          *logger.Logger
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(uc *payroll.UseCase, pdfUC *payroll.PDFUseCase, orchestrator *payroll.NominaOrchestrator, log *logger.Logger) *PayrollHandler {
	return &PayrollHandler{uc: uc, pdfUC: pdfUC, orchestrator: orchestrator, log: log}
}

// CreateRecord crea la nómina de un empleado para un período (solo admin).
// POST /api/payroll/records
func (h *PayrollHandler) CreateRecord(c *fiber.Ctx) error {
	var in dto.CreatePayrollRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRecord(c.Context(), CurrentTenant(c).CompanyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// ListRecords lista nóminas del scope con filtro opcional de período.
// GET /api/payroll/records?period_start=&period_end=
func (h *PayrollHandler) ListRecords(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()

	var start, end *time.Time
	if t, ok := parseRFC3339(c.Query("period_start")); ok {
		start = &t
	}
	if t, ok := parseRFC3339(c.Query("period_end")); ok {
		end = &t
	}

	out, err := h.uc.ListRecords(c.Context(), ScopeFor(c), start, end, page.Limit, page.Offset)
	if err != nil {
		h.log.Error().Err(err).Msg("listar nóminas")
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// GetRecord obtiene una nómina dentro del scope. Fuera de scope → 404.
// GET /api/payroll/records/:id
func (h *PayrollHandler) GetRecord(c *fiber.Ctx) error {
	out, err := h.uc.GetRecord(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.OK(out))
}

// AddBonus agrega un bono y recalcula los totales en una sola transacción.
// POST /api/payroll/records/:id/bonuses
func (h *PayrollHandler) AddBonus(c *fiber.Ctx) error {
	var in dto.AddAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddBonus(c.Context(), c.Params("id"), ScopeFor(c), CurrentEmployee(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// AddDeduction agrega una deducción y recalcula los totales en una sola transacción.
// POST /api/payroll/records/:id/deductions
func (h *PayrollHandler) AddDeduction(c *fiber.Ctx) error {
	var in dto.AddAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddDeduction(c.Context(), c.Params("id"), ScopeFor(c), CurrentEmployee(c).ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// ListAdjustments lista el detalle de bonos y deducciones de una nómina.
// GET /api/payroll/records/:id/adjustments
func (h *PayrollHandler) ListAdjustments(c *fiber.Ctx) error {
	out, err := h.uc.ListAdjustments(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Emit dispara el ciclo de nómina electrónica DIAN en background y responde 202.
// El estado del documento se consulta luego vía GetRecord (document_status).
// POST /api/payroll/records/:id/emit
func (h *PayrollHandler) Emit(c *fiber.Ctx) error {
	id := c.Params("id")
	record, err := h.uc.GetRecord(c.Context(), id, ScopeFor(c))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return notFound(c)
	}

	h.orchestrator.ProcessAsync(id, CurrentTenant(c).CompanyID)
	h.log.Info().Str("payroll_record_id", id).Msg("emisión de nómina electrónica encolada")

	return c.Status(fiber.StatusAccepted).JSON(dto.OK(fiber.Map{
		"payroll_record_id": id,
		"document_status":   record.DocumentStatus,
		"processing":        true,
	}))
}

// DownloadPayslipPDF descarga el desprendible de pago en PDF.
// GET /api/payroll/records/:id/payslip.pdf
func (h *PayrollHandler) DownloadPayslipPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadPayslipPDF(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		h.log.Error().Err(err).Str("payroll_record_id", c.Params("id")).Msg("generar desprendible PDF")
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// DownloadSignedXML descarga el XML firmado del documento soporte.
// GET /api/payroll/records/:id/document.xml
func (h *PayrollHandler) DownloadSignedXML(c *fiber.Ctx) error {
	xmlBytes, filename, err := h.uc.DownloadSignedXML(c.Context(), c.Params("id"), ScopeFor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(xmlBytes)
}
