package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// TimeEntryFilter filtros opcionales para listados de registros de tiempo.
type TimeEntryFilter struct {
	From       *time.Time
	To         *time.Time
	EmployeeID string // filtro adicional DENTRO del scope, nunca lo reemplaza
	Status     string // pending, approved, rejected ("" = todos)
}

// TimeEntryRepository define el puerto de persistencia para turnos y pausas.
// Toda operación recibe un access.Scope: el predicado de tenant (y sede para
// managers) es estructural, no opcional.
type TimeEntryRepository interface {
	Create(ctx context.Context, t *entity.TimeEntry) error
	GetByID(ctx context.Context, id string, sc access.Scope) (*entity.TimeEntry, error)
	// GetOpenByEmployee retorna el turno abierto del empleado (nil si no hay).
	GetOpenByEmployee(ctx context.Context, employeeID, companyID string) (*entity.TimeEntry, error)
	// Close cierra el turno abierto del empleado con la hora dada.
	Close(ctx context.Context, entryID, companyID string, at time.Time) error
	Update(ctx context.Context, t *entity.TimeEntry, sc access.Scope) (bool, error)
	List(ctx context.Context, sc access.Scope, f TimeEntryFilter, limit, offset int) ([]*entity.TimeEntry, error)
	// BulkApprove aprueba en un solo UPDATE set-based todos los turnos pendientes
	// del rango dentro del scope. Idempotente: filas ya aprobadas no se tocan.
	// Retorna el número de filas afectadas.
	BulkApprove(ctx context.Context, sc access.Scope, from, to time.Time, approvedBy string) (int64, error)

	// Pausas
	StartBreak(ctx context.Context, b *entity.BreakEntry) error
	EndBreak(ctx context.Context, breakID, companyID string, at time.Time) error
	GetOpenBreak(ctx context.Context, timeEntryID, companyID string) (*entity.BreakEntry, error)
	ListBreaks(ctx context.Context, timeEntryID, companyID string) ([]*entity.BreakEntry, error)
}
