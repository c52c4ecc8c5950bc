package entity

import "time"

// Estados de aprobación de un registro de tiempo.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Estados derivados para la UI (no se persisten; se normalizan desde las filas).
const (
	StatusClockedIn  = "clocked_in"
	StatusOnBreak    = "on_break"
	StatusClockedOut = "clocked_out"
)

// TimeEntry representa un turno registrado por reloj (clock-in / clock-out).
type TimeEntry struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	ClockIn        time.Time
	ClockOut       *time.Time // nil = turno abierto
	ApprovalStatus string     // pending, approved, rejected
	ApprovedBy     *string    // actor de la aprobación
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Open indica si el turno sigue abierto (sin clock-out).
func (t *TimeEntry) Open() bool { return t != nil && t.ClockOut == nil }

// BreakEntry representa una pausa dentro de un turno.
type BreakEntry struct {
	ID          string
	TimeEntryID string
	CompanyID   string
	StartedAt   time.Time
	EndedAt     *time.Time // nil = pausa abierta
	CreatedAt   time.Time
}

// Open indica si la pausa sigue abierta.
func (b *BreakEntry) Open() bool { return b != nil && b.EndedAt == nil }

// DerivedStatus normaliza un turno + su pausa abierta (si existe) al estado que
// consume la UI. Función pura: turno cerrado gana siempre, luego pausa abierta.
func DerivedStatus(entry *TimeEntry, openBreak *BreakEntry) string {
	if entry == nil || !entry.Open() {
		return StatusClockedOut
	}
	if openBreak.Open() {
		return StatusOnBreak
	}
	return StatusClockedIn
}
