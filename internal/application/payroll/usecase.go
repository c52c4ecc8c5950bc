// Package payroll implementa la nómina: registros por período, bonos y
// deducciones con totales derivados, y el ciclo de nómina electrónica DIAN
// (CUNE, XML firmado, envío SOAP).
package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// UseCase casos de uso de nómina.
type UseCase struct {
	payrollRepo  repository.PayrollRepository
	employeeRepo repository.EmployeeRepository
	txRunner     TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(payrollRepo repository.PayrollRepository, employeeRepo repository.EmployeeRepository, txRunner TxRunner) *UseCase {
	return &UseCase{payrollRepo: payrollRepo, employeeRepo: employeeRepo, txRunner: txRunner}
}

// CreateRecord crea la nómina de un empleado para un período. El empleado debe
// existir, estar activo y pertenecer al tenant del actor.
func (uc *UseCase) CreateRecord(ctx context.Context, companyID string, in dto.CreatePayrollRecordRequest) (*dto.PayrollRecordResponse, error) {
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	emp, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID, true)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, domain.ErrEmployeeNotFound
	}
	basePay, err := decimal.NewFromString(in.BasePay)
	if err != nil || basePay.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	record := &entity.PayrollRecord{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		EmployeeID:  emp.ID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		BasePay:     basePay,
		// Sin ajustes todavía: gross = base, deducciones = 0, neto = base
		GrossPay:        basePay,
		TotalDeductions: decimal.Zero,
		NetPay:          basePay,
		DocumentStatus:  entity.NominaDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.payrollRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}
	return toPayrollResponse(record), nil
}

// GetRecord obtiene una nómina dentro del scope. nil = no existe o fuera de scope.
func (uc *UseCase) GetRecord(ctx context.Context, id string, sc access.Scope) (*dto.PayrollRecordResponse, error) {
	record, err := uc.payrollRepo.GetRecord(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toPayrollResponse(record), nil
}

// DownloadSignedXML entrega el XML firmado del documento soporte de nómina.
// Disponible solo después de que el orquestador firmó el documento.
func (uc *UseCase) DownloadSignedXML(ctx context.Context, id string, sc access.Scope) (xmlBytes []byte, filename string, err error) {
	record, err := uc.payrollRepo.GetRecord(ctx, id, sc)
	if err != nil {
		return nil, "", err
	}
	if record == nil {
		return nil, "", domain.ErrNotFound
	}
	if record.XMLSigned == "" {
		return nil, "", domain.ErrConflict
	}
	name := record.DocumentNumber
	if name == "" {
		name = record.ID
	}
	return []byte(record.XMLSigned), fmt.Sprintf("nomina_%s.xml", name), nil
}

// ListRecords lista nóminas dentro del scope, con filtro opcional de período.
func (uc *UseCase) ListRecords(ctx context.Context, sc access.Scope, periodStart, periodEnd *time.Time, limit, offset int) (*dto.PayrollRecordListResponse, error) {
	list, err := uc.payrollRepo.ListRecords(ctx, sc, periodStart, periodEnd, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PayrollRecordResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toPayrollResponse(r))
	}
	return &dto.PayrollRecordListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// AddBonus agrega un bono a la nómina y recalcula los totales en la misma transacción.
func (uc *UseCase) AddBonus(ctx context.Context, recordID string, sc access.Scope, actorID string, in dto.AddAdjustmentRequest) (*dto.PayrollRecordResponse, error) {
	return uc.addAdjustment(ctx, recordID, sc, actorID, entity.AdjustmentBonus, in)
}

// AddDeduction agrega una deducción a la nómina y recalcula los totales en la misma transacción.
func (uc *UseCase) AddDeduction(ctx context.Context, recordID string, sc access.Scope, actorID string, in dto.AddAdjustmentRequest) (*dto.PayrollRecordResponse, error) {
	return uc.addAdjustment(ctx, recordID, sc, actorID, entity.AdjustmentDeduction, in)
}

// addAdjustment inserta la fila de detalle y recalcula gross/deductions/net
// re-sumando TODAS las filas dentro de una sola transacción. Nunca incrementa
// el agregado almacenado: siempre re-deriva desde el detalle.
func (uc *UseCase) addAdjustment(ctx context.Context, recordID string, sc access.Scope, actorID, kind string, in dto.AddAdjustmentRequest) (*dto.PayrollRecordResponse, error) {
	amount, err := decimal.NewFromString(in.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.PayrollRecord
	err = uc.txRunner.RunPayroll(ctx, func(repo repository.PayrollRepository) error {
		record, err := repo.GetRecord(ctx, recordID, sc)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		adj := &entity.PayrollAdjustment{
			ID:              uuid.New().String(),
			PayrollRecordID: record.ID,
			CompanyID:       record.CompanyID,
			Kind:            kind,
			Concept:         in.Concept,
			Amount:          amount,
			CreatedBy:       actorID,
			CreatedAt:       time.Now(),
		}
		if err := repo.AddAdjustment(ctx, adj); err != nil {
			return err
		}
		if err := repo.RecomputeTotals(ctx, record.ID, record.CompanyID); err != nil {
			return err
		}
		updated, err = repo.GetRecord(ctx, recordID, sc)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toPayrollResponse(updated), nil
}

// ListAdjustments lista el detalle de bonos y deducciones de una nómina en scope.
func (uc *UseCase) ListAdjustments(ctx context.Context, recordID string, sc access.Scope) ([]dto.AdjustmentResponse, error) {
	record, err := uc.payrollRepo.GetRecord(ctx, recordID, sc)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.payrollRepo.ListAdjustments(ctx, recordID, record.CompanyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.AdjustmentResponse{
			ID:        a.ID,
			Kind:      a.Kind,
			Concept:   a.Concept,
			Amount:    a.Amount.StringFixed(2),
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
		})
	}
	return items, nil
}

func toPayrollResponse(r *entity.PayrollRecord) *dto.PayrollRecordResponse {
	return &dto.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		BasePay:         r.BasePay.StringFixed(2),
		GrossPay:        r.GrossPay.StringFixed(2),
		TotalDeductions: r.TotalDeductions.StringFixed(2),
		NetPay:          r.NetPay.StringFixed(2),
		CUNE:            r.CUNE,
		DocumentStatus:  r.DocumentStatus,
		DocumentNumber:  r.DocumentNumber,
	}
}
