package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador de equipos.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un equipo nuevo.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `
		INSERT INTO teams (id, company_id, name, location_id, lead_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, t.ID, t.CompanyID, t.Name, t.LocationID, t.LeadID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID dentro del tenant.
func (r *TeamRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Team, error) {
	query := `
		SELECT id, company_id, name, location_id, lead_id, created_at, updated_at
		FROM teams WHERE id = $1 AND company_id = $2`
	var t entity.Team
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.LocationID, &t.LeadID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// Update actualiza un equipo existente (siempre dentro del tenant).
func (r *TeamRepo) Update(ctx context.Context, t *entity.Team) error {
	query := `
		UPDATE teams SET name = $2, location_id = $3, lead_id = $4, updated_at = $5
		WHERE id = $1 AND company_id = $6`
	_, err := r.q.Exec(ctx, query, t.ID, t.Name, t.LocationID, t.LeadID, t.UpdatedAt, t.CompanyID)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// ListByCompany lista equipos del tenant con paginación.
func (r *TeamRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Team, error) {
	query := `
		SELECT id, company_id, name, location_id, lead_id, created_at, updated_at
		FROM teams WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.LocationID, &t.LeadID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina un equipo del tenant. Retorna false si no existía.
func (r *TeamRepo) Delete(ctx context.Context, id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM teams WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return false, fmt.Errorf("delete team: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
