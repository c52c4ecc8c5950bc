package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de nómina electrónica (ciclo DIAN).
const (
	NominaDraft   = "DRAFT"
	NominaSigned  = "SIGNED"
	NominaSent    = "SENT"
	NominaOK      = "EXITOSO"
	NominaError   = "ERROR"
)

// PayrollRecord representa la nómina de un empleado para un período.
// GrossPay, TotalDeductions y NetPay son derivados: SIEMPRE se recalculan
// re-sumando las filas de PayrollAdjustment dentro de la misma transacción,
// nunca incrementando el total almacenado.
type PayrollRecord struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	BasePay         decimal.Decimal
	GrossPay        decimal.Decimal // base + bonos
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal // gross - deducciones
	// Documento soporte de nómina electrónica DIAN
	CUNE           string
	DocumentStatus string // DRAFT, SIGNED, SENT, EXITOSO, ERROR
	DocumentNumber string // prefijo + consecutivo del documento (ej: NE000123)
	XMLSigned      string // XML firmado, disponible para descarga
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Tipos de ajuste de nómina.
const (
	AdjustmentBonus     = "bonus"
	AdjustmentDeduction = "deduction"
)

// PayrollAdjustment fila de detalle de un bono o deducción. Append-only:
// el total derivado vive en PayrollRecord y se recalcula desde estas filas.
type PayrollAdjustment struct {
	ID              string
	PayrollRecordID string
	CompanyID       string
	Kind            string // bonus, deduction
	Concept         string
	Amount          decimal.Decimal // siempre positivo; Kind define el signo
	CreatedBy       string
	CreatedAt       time.Time
}
