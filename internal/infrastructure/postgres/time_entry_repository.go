package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

const timeEntryColumns = `id, company_id, employee_id, clock_in, clock_out,
		approval_status, approved_by, notes, created_at, updated_at`

// TimeEntryRepo implementación del puerto TimeEntryRepository sobre PostgreSQL.
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador de turnos y pausas.
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

// Create persiste un turno nuevo.
func (r *TimeEntryRepo) Create(ctx context.Context, t *entity.TimeEntry) error {
	query := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyID, t.EmployeeID, t.ClockIn, t.ClockOut,
		t.ApprovalStatus, t.ApprovedBy, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID dentro del scope (fuera de scope = nil).
func (r *TimeEntryRepo) GetByID(ctx context.Context, id string, sc access.Scope) (*entity.TimeEntry, error) {
	clauses := []string{"id = $1"}
	args := []any{id}
	clauses, args = appendScope(clauses, args, sc, "company_id", "employee_id")

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries` + whereClause(clauses)
	t, err := scanTimeEntry(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time entry: %w", err)
	}
	return t, nil
}

// GetOpenByEmployee retorna el turno abierto del empleado (nil si no hay).
func (r *TimeEntryRepo) GetOpenByEmployee(ctx context.Context, employeeID, companyID string) (*entity.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE employee_id = $1 AND company_id = $2 AND clock_out IS NULL
		ORDER BY clock_in DESC LIMIT 1`
	t, err := scanTimeEntry(r.q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open time entry: %w", err)
	}
	return t, nil
}

// Close cierra el turno con la hora dada (solo si sigue abierto).
func (r *TimeEntryRepo) Close(ctx context.Context, entryID, companyID string, at time.Time) error {
	query := `
		UPDATE time_entries SET clock_out = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND clock_out IS NULL`
	_, err := r.q.Exec(ctx, query, entryID, companyID, at)
	if err != nil {
		return fmt.Errorf("close time entry: %w", err)
	}
	return nil
}

// Update corrige horas y notas de un turno dentro del scope.
func (r *TimeEntryRepo) Update(ctx context.Context, t *entity.TimeEntry, sc access.Scope) (bool, error) {
	clauses := []string{"id = $1"}
	args := []any{t.ID}
	clauses, args = appendScope(clauses, args, sc, "company_id", "employee_id")

	args = append(args, t.ClockIn, t.ClockOut, t.Notes, t.UpdatedAt)
	n := len(args)
	query := fmt.Sprintf(`UPDATE time_entries SET clock_in = $%d, clock_out = $%d, notes = $%d, updated_at = $%d%s`,
		n-3, n-2, n-1, n, whereClause(clauses))

	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update time entry: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista turnos dentro del scope con filtros opcionales y paginación.
func (r *TimeEntryRepo) List(ctx context.Context, sc access.Scope, f repository.TimeEntryFilter, limit, offset int) ([]*entity.TimeEntry, error) {
	clauses, args := appendScope(nil, nil, sc, "company_id", "employee_id")

	if f.From != nil {
		args = append(args, *f.From)
		clauses = append(clauses, fmt.Sprintf("clock_in >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		clauses = append(clauses, fmt.Sprintf("clock_in <= $%d", len(args)))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("approval_status = $%d", len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+timeEntryColumns+` FROM time_entries%s ORDER BY clock_in DESC LIMIT $%d OFFSET $%d`,
		whereClause(clauses), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.TimeEntry
	for rows.Next() {
		t, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// BulkApprove aprueba en un solo UPDATE los turnos pendientes del rango dentro
// del scope. El predicado approval_status = 'pending' hace la operación
// idempotente: repetirla afecta 0 filas y nunca re-aprueba ni pisa rechazados.
func (r *TimeEntryRepo) BulkApprove(ctx context.Context, sc access.Scope, from, to time.Time, approvedBy string) (int64, error) {
	clauses := []string{"approval_status = 'pending'"}
	var args []any
	clauses, args = appendScope(clauses, args, sc, "company_id", "employee_id")

	args = append(args, from)
	clauses = append(clauses, fmt.Sprintf("clock_in >= $%d", len(args)))
	args = append(args, to)
	clauses = append(clauses, fmt.Sprintf("clock_in <= $%d", len(args)))

	args = append(args, approvedBy)
	query := fmt.Sprintf(`UPDATE time_entries SET approval_status = 'approved', approved_by = $%d, updated_at = NOW()%s`,
		len(args), whereClause(clauses))

	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk approve: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// StartBreak inserta una pausa.
func (r *TimeEntryRepo) StartBreak(ctx context.Context, b *entity.BreakEntry) error {
	query := `
		INSERT INTO break_entries (id, time_entry_id, company_id, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, b.ID, b.TimeEntryID, b.CompanyID, b.StartedAt, b.EndedAt, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert break: %w", err)
	}
	return nil
}

// EndBreak cierra la pausa (solo si sigue abierta).
func (r *TimeEntryRepo) EndBreak(ctx context.Context, breakID, companyID string, at time.Time) error {
	query := `
		UPDATE break_entries SET ended_at = $3
		WHERE id = $1 AND company_id = $2 AND ended_at IS NULL`
	_, err := r.q.Exec(ctx, query, breakID, companyID, at)
	if err != nil {
		return fmt.Errorf("end break: %w", err)
	}
	return nil
}

// GetOpenBreak retorna la pausa abierta de un turno (nil si no hay).
func (r *TimeEntryRepo) GetOpenBreak(ctx context.Context, timeEntryID, companyID string) (*entity.BreakEntry, error) {
	query := `
		SELECT id, time_entry_id, company_id, started_at, ended_at, created_at
		FROM break_entries
		WHERE time_entry_id = $1 AND company_id = $2 AND ended_at IS NULL
		ORDER BY started_at DESC LIMIT 1`
	var b entity.BreakEntry
	err := r.q.QueryRow(ctx, query, timeEntryID, companyID).Scan(
		&b.ID, &b.TimeEntryID, &b.CompanyID, &b.StartedAt, &b.EndedAt, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open break: %w", err)
	}
	return &b, nil
}

// ListBreaks lista las pausas de un turno en orden cronológico.
func (r *TimeEntryRepo) ListBreaks(ctx context.Context, timeEntryID, companyID string) ([]*entity.BreakEntry, error) {
	query := `
		SELECT id, time_entry_id, company_id, started_at, ended_at, created_at
		FROM break_entries
		WHERE time_entry_id = $1 AND company_id = $2 ORDER BY started_at`
	rows, err := r.q.Query(ctx, query, timeEntryID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list breaks: %w", err)
	}
	defer rows.Close()

	var list []*entity.BreakEntry
	for rows.Next() {
		var b entity.BreakEntry
		if err := rows.Scan(&b.ID, &b.TimeEntryID, &b.CompanyID, &b.StartedAt, &b.EndedAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan break: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// scanTimeEntry mapea una fila al entity (acepta pgx.Row o pgx.Rows).
func scanTimeEntry(row pgx.Row) (*entity.TimeEntry, error) {
	var t entity.TimeEntry
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.EmployeeID, &t.ClockIn, &t.ClockOut,
		&t.ApprovalStatus, &t.ApprovedBy, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
