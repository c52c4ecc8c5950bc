package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.RoleHistoryRepository = (*RoleHistoryRepo)(nil)

// RoleHistoryRepo registro append-only de transiciones de rol. La tabla no
// tiene UPDATE ni DELETE en ninguna ruta de código: solo INSERT y SELECT.
type RoleHistoryRepo struct {
	q Querier
}

// NewRoleHistoryRepository construye el adaptador.
func NewRoleHistoryRepository(q Querier) *RoleHistoryRepo {
	return &RoleHistoryRepo{q: q}
}

// Append inserta una transición de rol.
func (r *RoleHistoryRepo) Append(ctx context.Context, ra *entity.RoleAssignment) error {
	query := `
		INSERT INTO role_assignments (id, company_id, employee_email, old_role, new_role, assigned_by, reason, effective_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		ra.ID, ra.CompanyID, ra.EmployeeEmail, ra.OldRole, ra.NewRole,
		ra.AssignedBy, ra.Reason, ra.EffectiveAt, ra.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert role assignment: %w", err)
	}
	return nil
}

// ListByEmail lista el historial de un empleado (más reciente primero).
func (r *RoleHistoryRepo) ListByEmail(ctx context.Context, companyID, email string, limit, offset int) ([]*entity.RoleAssignment, error) {
	query := `
		SELECT id, company_id, employee_email, old_role, new_role, assigned_by, reason, effective_at, created_at
		FROM role_assignments
		WHERE company_id = $1 AND employee_email = $2
		ORDER BY effective_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list role assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.RoleAssignment
	for rows.Next() {
		var ra entity.RoleAssignment
		if err := rows.Scan(
			&ra.ID, &ra.CompanyID, &ra.EmployeeEmail, &ra.OldRole, &ra.NewRole,
			&ra.AssignedBy, &ra.Reason, &ra.EffectiveAt, &ra.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan role assignment: %w", err)
		}
		list = append(list, &ra)
	}
	return list, rows.Err()
}
