package dto

import "time"

// ClockInRequest entrada para abrir turno (el empleado sale de la identidad, no del body).
type ClockInRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// TimeEntryResponse salida de un turno con estado derivado para la UI.
type TimeEntryResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	ClockIn        time.Time  `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	Status         string     `json:"status"` // clocked_in, on_break, clocked_out
	Notes          string     `json:"notes,omitempty"`
}

// TimeEntryListResponse listado paginado de turnos.
type TimeEntryListResponse struct {
	Items []TimeEntryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// UpdateTimeEntryRequest corrección manual de un turno (admin/manager en scope).
type UpdateTimeEntryRequest struct {
	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
	Notes    *string    `json:"notes"`
}

// BulkApproveRequest aprueba todos los turnos pendientes de un rango de fechas.
type BulkApproveRequest struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}

// BulkApproveResponse número de turnos afectados por la aprobación.
type BulkApproveResponse struct {
	Approved int64 `json:"approved"`
}

// BreakResponse salida de una pausa.
type BreakResponse struct {
	ID          string     `json:"id"`
	TimeEntryID string     `json:"time_entry_id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}
