package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, employee_code, email, password_hash, name, document,
		role, status, location_id, team_id, base_salary, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado nuevo.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.EmployeeCode, e.Email, e.PasswordHash, e.Name, e.Document,
		e.Role, e.Status, e.LocationID, e.TeamID, e.BaseSalary, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por UUID. activeOnly filtra inactivos (identidad).
func (r *EmployeeRepo) GetByID(ctx context.Context, id string, activeOnly bool) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	return r.getOne(ctx, query, id)
}

// GetByCode obtiene un empleado por código (credencial alternativa al UUID).
func (r *EmployeeRepo) GetByCode(ctx context.Context, code string, activeOnly bool) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`
	if activeOnly {
		query += ` AND status = 'active'`
	}
	return r.getOne(ctx, query, code)
}

// GetByEmailAndCompany busca por email dentro de un tenant (unicidad de onboarding).
func (r *EmployeeRepo) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 AND company_id = $2`
	return r.getOne(ctx, query, email, companyID)
}

// GetByEmail busca por email global (login con sesión).
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// Update actualiza los datos mutables del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	query := `
		UPDATE employees
		SET email = $2, name = $3, document = $4, role = $5, status = $6,
		    location_id = $7, team_id = $8, base_salary = $9, updated_at = $10
		WHERE id = $1 AND company_id = $11`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Email, e.Name, e.Document, e.Role, e.Status,
		e.LocationID, e.TeamID, e.BaseSalary, e.UpdatedAt, e.CompanyID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Deactivate marca el empleado como inactivo (soft delete).
func (r *EmployeeRepo) Deactivate(ctx context.Context, id, companyID string) (bool, error) {
	query := `
		UPDATE employees SET status = 'inactive', updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'active'`
	cmd, err := r.q.Exec(ctx, query, id, companyID)
	if err != nil {
		return false, fmt.Errorf("deactivate employee: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista empleados dentro del scope con paginación.
func (r *EmployeeRepo) List(ctx context.Context, sc access.Scope, limit, offset int) ([]*entity.Employee, error) {
	clauses, args := appendEmployeeScope(nil, nil, sc)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+employeeColumns+` FROM employees%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause(clauses), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ResolveTenant carga el tenant del empleado activo. nil = sin scope (403).
func (r *EmployeeRepo) ResolveTenant(ctx context.Context, employeeID string) (*access.Tenant, error) {
	query := `
		SELECT c.id, c.organization_id
		FROM employees e
		JOIN companies c ON c.id = e.company_id
		WHERE e.id = $1 AND e.status = 'active' AND c.status = 'active'`
	var t access.Tenant
	err := r.q.QueryRow(ctx, query, employeeID).Scan(&t.CompanyID, &t.OrganizationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}
	return &t, nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// scanEmployee mapea una fila al entity (acepta pgx.Row o pgx.Rows).
func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeCode, &e.Email, &e.PasswordHash, &e.Name, &e.Document,
		&e.Role, &e.Status, &e.LocationID, &e.TeamID, &e.BaseSalary, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
