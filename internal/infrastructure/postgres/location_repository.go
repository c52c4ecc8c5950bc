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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de sedes.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una sede nueva.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, l.CompanyID, l.Name, l.Address, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una sede por ID dentro del tenant.
func (r *LocationRepo) GetByID(ctx context.Context, id, companyID string) (*entity.Location, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM locations WHERE id = $1 AND company_id = $2`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&l.ID, &l.CompanyID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza una sede existente (siempre dentro del tenant).
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, address = $3, updated_at = $4
		WHERE id = $1 AND company_id = $5`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Address, l.UpdatedAt, l.CompanyID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// ListByCompany lista sedes del tenant con paginación.
func (r *LocationRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM locations WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Address, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una sede del tenant. Retorna false si no existía.
func (r *LocationRepo) Delete(ctx context.Context, id, companyID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return false, fmt.Errorf("delete location: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
