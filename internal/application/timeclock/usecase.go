// Package timeclock implementa el reloj de turnos: entrada, salida, pausas,
// correcciones y aprobación masiva. Todas las lecturas y escrituras pasan por
// un access.Scope resuelto en el middleware, nunca por IDs del cliente.
package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

// UseCase casos de uso del reloj de turnos.
type UseCase struct {
	entries repository.TimeEntryRepository
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(entries repository.TimeEntryRepository, log *logger.Logger) *UseCase {
	return &UseCase{entries: entries, log: log}
}

// ClockIn abre un turno para el empleado autenticado. Falla con
// ErrShiftAlreadyOpen si ya tiene un turno sin cerrar.
func (uc *UseCase) ClockIn(ctx context.Context, employee *entity.Employee, in dto.ClockInRequest) (*dto.TimeEntryResponse, error) {
	open, err := uc.entries.GetOpenByEmployee(ctx, employee.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrShiftAlreadyOpen
	}
	now := time.Now()
	entry := &entity.TimeEntry{
		ID:             uuid.New().String(),
		CompanyID:      employee.CompanyID,
		EmployeeID:     employee.ID,
		ClockIn:        now,
		ApprovalStatus: entity.ApprovalPending,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return toTimeEntryResponse(entry, nil), nil
}

// ClockOut cierra el turno abierto del empleado. Si hay una pausa abierta la
// cierra primero con la misma marca de tiempo. ErrNoOpenShift si no hay turno.
func (uc *UseCase) ClockOut(ctx context.Context, employee *entity.Employee) (*dto.TimeEntryResponse, error) {
	open, err := uc.entries.GetOpenByEmployee(ctx, employee.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrNoOpenShift
	}
	now := time.Now()
	openBreak, err := uc.entries.GetOpenBreak(ctx, open.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if openBreak != nil {
		if err := uc.entries.EndBreak(ctx, openBreak.ID, employee.CompanyID, now); err != nil {
			return nil, err
		}
	}
	if err := uc.entries.Close(ctx, open.ID, employee.CompanyID, now); err != nil {
		return nil, err
	}
	open.ClockOut = &now
	return toTimeEntryResponse(open, nil), nil
}

// Status retorna el turno abierto (si hay) y el estado derivado del empleado.
func (uc *UseCase) Status(ctx context.Context, employee *entity.Employee) (*dto.TimeEntryResponse, error) {
	open, err := uc.entries.GetOpenByEmployee(ctx, employee.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return &dto.TimeEntryResponse{EmployeeID: employee.ID, Status: entity.StatusClockedOut}, nil
	}
	openBreak, err := uc.entries.GetOpenBreak(ctx, open.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	return toTimeEntryResponse(open, openBreak), nil
}

// StartBreak abre una pausa dentro del turno abierto. Requiere turno abierto y
// falla con ErrBreakAlreadyOpen si ya hay una pausa sin cerrar.
func (uc *UseCase) StartBreak(ctx context.Context, employee *entity.Employee) (*dto.BreakResponse, error) {
	open, err := uc.entries.GetOpenByEmployee(ctx, employee.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrNoOpenShift
	}
	openBreak, err := uc.entries.GetOpenBreak(ctx, open.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if openBreak != nil {
		return nil, domain.ErrBreakAlreadyOpen
	}
	now := time.Now()
	b := &entity.BreakEntry{
		ID:          uuid.New().String(),
		TimeEntryID: open.ID,
		CompanyID:   employee.CompanyID,
		StartedAt:   now,
		CreatedAt:   now,
	}
	if err := uc.entries.StartBreak(ctx, b); err != nil {
		return nil, err
	}
	return toBreakResponse(b), nil
}

// EndBreak cierra la pausa abierta del turno actual. ErrNoOpenBreak si no hay.
func (uc *UseCase) EndBreak(ctx context.Context, employee *entity.Employee) (*dto.BreakResponse, error) {
	open, err := uc.entries.GetOpenByEmployee(ctx, employee.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrNoOpenShift
	}
	openBreak, err := uc.entries.GetOpenBreak(ctx, open.ID, employee.CompanyID)
	if err != nil {
		return nil, err
	}
	if openBreak == nil {
		return nil, domain.ErrNoOpenBreak
	}
	now := time.Now()
	if err := uc.entries.EndBreak(ctx, openBreak.ID, employee.CompanyID, now); err != nil {
		return nil, err
	}
	openBreak.EndedAt = &now
	return toBreakResponse(openBreak), nil
}

// List lista turnos dentro del scope, con filtros opcionales de rango, empleado
// y estado de aprobación. Incluye el estado derivado por fila.
func (uc *UseCase) List(ctx context.Context, sc access.Scope, f repository.TimeEntryFilter, limit, offset int) (*dto.TimeEntryListResponse, error) {
	list, err := uc.entries.List(ctx, sc, f, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TimeEntryResponse, 0, len(list))
	for _, e := range list {
		var openBreak *entity.BreakEntry
		if e.Open() {
			openBreak, err = uc.entries.GetOpenBreak(ctx, e.ID, e.CompanyID)
			if err != nil {
				return nil, err
			}
		}
		items = append(items, *toTimeEntryResponse(e, openBreak))
	}
	return &dto.TimeEntryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// UpdateEntry corrige un turno (horas o notas) dentro del scope del actor.
// Retorna nil si el turno no existe o está fuera de scope.
func (uc *UseCase) UpdateEntry(ctx context.Context, id string, sc access.Scope, in dto.UpdateTimeEntryRequest) (*dto.TimeEntryResponse, error) {
	entry, err := uc.entries.GetByID(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if in.ClockIn != nil {
		entry.ClockIn = *in.ClockIn
	}
	if in.ClockOut != nil {
		entry.ClockOut = in.ClockOut
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}
	if entry.ClockOut != nil && entry.ClockOut.Before(entry.ClockIn) {
		return nil, domain.ErrInvalidInput
	}
	entry.UpdatedAt = time.Now()
	found, err := uc.entries.Update(ctx, entry, sc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return toTimeEntryResponse(entry, nil), nil
}

// BulkApprove aprueba todos los turnos pendientes del rango dentro del scope
// del aprobador. Set-based e idempotente: repetir la llamada afecta 0 filas.
func (uc *UseCase) BulkApprove(ctx context.Context, sc access.Scope, approverID string, in dto.BulkApproveRequest) (*dto.BulkApproveResponse, error) {
	if !in.To.After(in.From) {
		return nil, domain.ErrInvalidInput
	}
	n, err := uc.entries.BulkApprove(ctx, sc, in.From, in.To, approverID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("approver_id", approverID).
		Int64("approved", n).
		Msg("aprobación masiva de turnos")
	return &dto.BulkApproveResponse{Approved: n}, nil
}

// ListBreaks lista las pausas de un turno dentro del scope.
func (uc *UseCase) ListBreaks(ctx context.Context, entryID string, sc access.Scope) ([]dto.BreakResponse, error) {
	entry, err := uc.entries.GetByID(ctx, entryID, sc)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.entries.ListBreaks(ctx, entryID, entry.CompanyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BreakResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBreakResponse(b))
	}
	return items, nil
}

func toTimeEntryResponse(e *entity.TimeEntry, openBreak *entity.BreakEntry) *dto.TimeEntryResponse {
	return &dto.TimeEntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		ClockIn:        e.ClockIn,
		ClockOut:       e.ClockOut,
		ApprovalStatus: e.ApprovalStatus,
		Status:         entity.DerivedStatus(e, openBreak),
		Notes:          e.Notes,
	}
}

func toBreakResponse(b *entity.BreakEntry) *dto.BreakResponse {
	return &dto.BreakResponse{
		ID:          b.ID,
		TimeEntryID: b.TimeEntryID,
		StartedAt:   b.StartedAt,
		EndedAt:     b.EndedAt,
	}
}
