package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

const payrollColumns = `id, company_id, employee_id, period_start, period_end,
		base_pay, gross_pay, total_deductions, net_pay,
		cune, document_status, document_number, xml_signed, created_at, updated_at`

// PayrollRepo implementación del puerto PayrollRepository sobre PostgreSQL.
// Usable con pool o tx: AddAdjustment + RecomputeTotals corren dentro de la
// misma transacción vía el TxRunner.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador de nómina. Pasar pool o tx (Querier).
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

// CreateRecord persiste una nómina nueva.
func (r *PayrollRepo) CreateRecord(ctx context.Context, rec *entity.PayrollRecord) error {
	query := `
		INSERT INTO payroll_records (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.PeriodStart, rec.PeriodEnd,
		rec.BasePay, rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.CUNE, rec.DocumentStatus, rec.DocumentNumber, rec.XMLSigned, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payroll record: %w", err)
	}
	return nil
}

// GetRecord obtiene una nómina dentro del scope (fuera de scope = nil).
func (r *PayrollRepo) GetRecord(ctx context.Context, id string, sc access.Scope) (*entity.PayrollRecord, error) {
	clauses := []string{"id = $1"}
	args := []any{id}
	clauses, args = appendScope(clauses, args, sc, "company_id", "employee_id")

	query := `SELECT ` + payrollColumns + ` FROM payroll_records` + whereClause(clauses)
	rec, err := scanPayrollRecord(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll record: %w", err)
	}
	return rec, nil
}

// ListRecords lista nóminas dentro del scope con filtro opcional de período.
func (r *PayrollRepo) ListRecords(ctx context.Context, sc access.Scope, periodStart, periodEnd *time.Time, limit, offset int) ([]*entity.PayrollRecord, error) {
	clauses, args := appendScope(nil, nil, sc, "company_id", "employee_id")

	if periodStart != nil {
		args = append(args, *periodStart)
		clauses = append(clauses, fmt.Sprintf("period_start >= $%d", len(args)))
	}
	if periodEnd != nil {
		args = append(args, *periodEnd)
		clauses = append(clauses, fmt.Sprintf("period_end <= $%d", len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+payrollColumns+` FROM payroll_records%s ORDER BY period_start DESC LIMIT $%d OFFSET $%d`,
		whereClause(clauses), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	defer rows.Close()

	var list []*entity.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// AddAdjustment inserta una fila de detalle (bono o deducción).
func (r *PayrollRepo) AddAdjustment(ctx context.Context, a *entity.PayrollAdjustment) error {
	query := `
		INSERT INTO payroll_adjustments (id, payroll_record_id, company_id, kind, concept, amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.PayrollRecordID, a.CompanyID, a.Kind, a.Concept, a.Amount, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payroll adjustment: %w", err)
	}
	return nil
}

// RecomputeTotals recalcula gross/deductions/net re-sumando TODAS las filas de
// detalle en una sola sentencia set-based. Nunca incrementa el agregado: el
// total derivado siempre se re-deriva, así un detalle perdido o duplicado no
// desincroniza la nómina.
func (r *PayrollRepo) RecomputeTotals(ctx context.Context, recordID, companyID string) error {
	query := `
		UPDATE payroll_records pr SET
			gross_pay = pr.base_pay + COALESCE(adj.bonuses, 0),
			total_deductions = COALESCE(adj.deductions, 0),
			net_pay = pr.base_pay + COALESCE(adj.bonuses, 0) - COALESCE(adj.deductions, 0),
			updated_at = NOW()
		FROM (
			SELECT
				SUM(amount) FILTER (WHERE kind = 'bonus')     AS bonuses,
				SUM(amount) FILTER (WHERE kind = 'deduction') AS deductions
			FROM payroll_adjustments
			WHERE payroll_record_id = $1 AND company_id = $2
		) adj
		WHERE pr.id = $1 AND pr.company_id = $2`
	cmd, err := r.q.Exec(ctx, query, recordID, companyID)
	if err != nil {
		return fmt.Errorf("recompute payroll totals: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAdjustments lista el detalle de una nómina en orden de inserción.
func (r *PayrollRepo) ListAdjustments(ctx context.Context, recordID, companyID string) ([]*entity.PayrollAdjustment, error) {
	query := `
		SELECT id, payroll_record_id, company_id, kind, concept, amount, created_by, created_at
		FROM payroll_adjustments
		WHERE payroll_record_id = $1 AND company_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, recordID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list payroll adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.PayrollAdjustment
	for rows.Next() {
		var a entity.PayrollAdjustment
		if err := rows.Scan(&a.ID, &a.PayrollRecordID, &a.CompanyID, &a.Kind, &a.Concept, &a.Amount, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payroll adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// NextDocumentNumber entrega el siguiente consecutivo del tenant. Upsert
// atómico sobre la tabla de secuencias: seguro ante emisiones concurrentes.
func (r *PayrollRepo) NextDocumentNumber(ctx context.Context, companyID string) (int64, error) {
	query := `
		INSERT INTO payroll_document_sequences (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_number = payroll_document_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document number: %w", err)
	}
	return n, nil
}

// UpdateDocument actualiza el estado del documento de nómina electrónica.
func (r *PayrollRepo) UpdateDocument(ctx context.Context, recordID, cune, number, status, signedXML string) error {
	query := `
		UPDATE payroll_records
		SET cune = $2, document_number = $3, document_status = $4, xml_signed = $5, updated_at = NOW()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, recordID, cune, number, status, signedXML)
	if err != nil {
		return fmt.Errorf("update payroll document: %w", err)
	}
	return nil
}

// scanPayrollRecord mapea una fila al entity (acepta pgx.Row o pgx.Rows).
func scanPayrollRecord(row pgx.Row) (*entity.PayrollRecord, error) {
	var rec entity.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.BasePay, &rec.GrossPay, &rec.TotalDeductions, &rec.NetPay,
		&rec.CUNE, &rec.DocumentStatus, &rec.DocumentNumber, &rec.XMLSigned, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
