package dto

import "time"

// CreatePayrollRecordRequest crea la nómina de un empleado para un período.
type CreatePayrollRecordRequest struct {
	EmployeeID  string    `json:"employee_id" validate:"required,uuid"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
	BasePay     string    `json:"base_pay" validate:"required"`
}

// AddAdjustmentRequest agrega un bono o deducción a una nómina.
type AddAdjustmentRequest struct {
	Concept string `json:"concept" validate:"required,min=1,max=200"`
	Amount  string `json:"amount" validate:"required"`
}

// PayrollRecordResponse salida de una nómina con totales derivados.
type PayrollRecordResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	BasePay         string    `json:"base_pay"`
	GrossPay        string    `json:"gross_pay"`
	TotalDeductions string    `json:"total_deductions"`
	NetPay          string    `json:"net_pay"`
	CUNE            string    `json:"cune,omitempty"`
	DocumentStatus  string    `json:"document_status,omitempty"`
	DocumentNumber  string    `json:"document_number,omitempty"`
}

// PayrollRecordListResponse listado paginado de nóminas.
type PayrollRecordListResponse struct {
	Items []PayrollRecordResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// AdjustmentResponse fila de detalle de bono o deducción.
type AdjustmentResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Concept   string    `json:"concept"`
	Amount    string    `json:"amount"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
