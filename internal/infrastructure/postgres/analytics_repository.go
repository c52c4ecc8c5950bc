package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only agregadas para el tablero. Todas las
// subconsultas llevan el predicado de scope; un manager solo agrega sobre
// empleados de sus sedes asignadas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardSummary calcula las métricas del tablero en una sola sentencia.
func (r *AnalyticsRepo) GetDashboardSummary(ctx context.Context, sc access.Scope) (*repository.DashboardSummaryResult, error) {
	empClauses, empArgs := appendEmployeeScope([]string{"status = 'active'"}, nil, sc)

	entryClauses, entryArgs := appendScope(nil, empArgs, sc, "company_id", "employee_id")
	openClauses := append(append([]string(nil), entryClauses...), "clock_out IS NULL")
	pendingClauses := append(append([]string(nil), entryClauses...), "approval_status = 'pending'")

	// El neto de nómina agrega el mes en curso
	payClauses, payArgs := appendScope(nil, entryArgs, sc, "company_id", "employee_id")
	payArgs = append(payArgs, time.Now().AddDate(0, -1, 0))
	payClauses = append(payClauses, fmt.Sprintf("period_end >= $%d", len(payArgs)))

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM employees%s),
			(SELECT COUNT(*) FROM time_entries%s),
			(SELECT COUNT(*) FROM time_entries%s),
			(SELECT COALESCE(SUM(net_pay), 0) FROM payroll_records%s)`,
		whereClause(empClauses), whereClause(openClauses), whereClause(pendingClauses), whereClause(payClauses))

	var res repository.DashboardSummaryResult
	err := r.q.QueryRow(ctx, query, payArgs...).Scan(
		&res.ActiveEmployees, &res.OpenShifts, &res.PendingApprovals, &res.TotalNetPay,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &res, nil
}

// GetHoursByLocation agrega horas trabajadas por sede en el rango, con las
// pausas descontadas vía LEFT JOIN LATERAL sobre break_entries.
func (r *AnalyticsRepo) GetHoursByLocation(ctx context.Context, sc access.Scope, from, to time.Time) ([]repository.LocationHoursResult, error) {
	clauses, args := appendScope(nil, nil, sc, "te.company_id", "te.employee_id")

	args = append(args, from)
	clauses = append(clauses, fmt.Sprintf("te.clock_in >= $%d", len(args)))
	args = append(args, to)
	clauses = append(clauses, fmt.Sprintf("te.clock_in <= $%d", len(args)))
	clauses = append(clauses, "te.clock_out IS NOT NULL")

	query := fmt.Sprintf(`
		SELECT
			l.id, l.name,
			COUNT(DISTINCT te.employee_id),
			COUNT(te.id),
			COALESCE(SUM(
				EXTRACT(EPOCH FROM (te.clock_out - te.clock_in)) / 3600
				- COALESCE(br.break_hours, 0)
			), 0)
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		JOIN locations l ON l.id = e.location_id
		LEFT JOIN LATERAL (
			SELECT SUM(EXTRACT(EPOCH FROM (b.ended_at - b.started_at)) / 3600) AS break_hours
			FROM break_entries b
			WHERE b.time_entry_id = te.id AND b.ended_at IS NOT NULL
		) br ON TRUE
		%s
		GROUP BY l.id, l.name
		ORDER BY l.name`, whereClause(clauses))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("hours by location: %w", err)
	}
	defer rows.Close()

	var list []repository.LocationHoursResult
	for rows.Next() {
		var res repository.LocationHoursResult
		if err := rows.Scan(&res.LocationID, &res.LocationName, &res.Employees, &res.Entries, &res.TotalHours); err != nil {
			return nil, fmt.Errorf("scan hours by location: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}
