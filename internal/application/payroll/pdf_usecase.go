package payroll

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// PayslipPDFGenerator genera la representación gráfica (PDF) del desprendible de nómina.
type PayslipPDFGenerator interface {
	GeneratePayslipPDF(
		ctx context.Context,
		record *entity.PayrollRecord,
		employee *entity.Employee,
		company *entity.Company,
		adjustments []*entity.PayrollAdjustment,
	) ([]byte, error)
}

// PDFUseCase genera el desprendible de pago (PDF) de una nómina.
type PDFUseCase struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	generator    PayslipPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	payrollRepo repository.PayrollRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	generator PayslipPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		generator:    generator,
	}
}

// DownloadPayslipPDF recupera la nómina dentro del scope del actor y genera el
// PDF del desprendible con el detalle de bonos y deducciones.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la nómina no existe o está fuera de scope.
func (uc *PDFUseCase) DownloadPayslipPDF(
	ctx context.Context,
	recordID string,
	sc access.Scope,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar nómina (el scope ya aplica tenant y sede) ───────────────────
	record, err := uc.payrollRepo.GetRecord(ctx, recordID, sc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener nómina: %w", err)
	}
	if record == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar empresa y empleado ──────────────────────────────────────────
	company, err := uc.companyRepo.GetByID(ctx, record.CompanyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, record.EmployeeID, false)
	if err != nil || employee == nil {
		return nil, "", fmt.Errorf("pdf: obtener empleado: %w", err)
	}

	// ── 3. Cargar detalle de ajustes ──────────────────────────────────────────
	adjustments, err := uc.payrollRepo.ListAdjustments(ctx, recordID, record.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ajustes: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GeneratePayslipPDF(ctx, record, employee, company, adjustments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	name := record.DocumentNumber
	if name == "" {
		name = record.ID
	}
	filename = fmt.Sprintf("nomina_%s.pdf", name)
	return pdfBytes, filename, nil
}
