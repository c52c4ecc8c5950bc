package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PayrollRepository define el puerto de persistencia para nómina.
// AddAdjustment + RecomputeTotals se ejecutan dentro de la misma transacción
// (ver payroll.TxRunner): el agregado SIEMPRE se re-suma desde el detalle.
type PayrollRepository interface {
	CreateRecord(ctx context.Context, r *entity.PayrollRecord) error
	GetRecord(ctx context.Context, id string, sc access.Scope) (*entity.PayrollRecord, error)
	ListRecords(ctx context.Context, sc access.Scope, periodStart, periodEnd *time.Time, limit, offset int) ([]*entity.PayrollRecord, error)
	AddAdjustment(ctx context.Context, a *entity.PayrollAdjustment) error
	// RecomputeTotals recalcula gross/deductions/net re-sumando las filas de
	// payroll_adjustments en una sola sentencia set-based (nunca incrementa).
	RecomputeTotals(ctx context.Context, recordID, companyID string) error
	ListAdjustments(ctx context.Context, recordID, companyID string) ([]*entity.PayrollAdjustment, error)
	// NextDocumentNumber entrega el siguiente consecutivo de documento del tenant.
	NextDocumentNumber(ctx context.Context, companyID string) (int64, error)
	// UpdateDocument actualiza el estado del documento de nómina electrónica.
	// signedXML puede ser vacío (estados previos a la firma).
	UpdateDocument(ctx context.Context, recordID, cune, number, status, signedXML string) error
}
