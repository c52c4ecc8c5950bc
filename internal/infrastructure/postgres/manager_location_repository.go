package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.ManagerLocationRepository = (*ManagerLocationRepo)(nil)

// ManagerLocationRepo persistencia de la relación manager ↔ sedes asignadas.
// Esta tabla es la fuente del predicado de scope de los managers: las
// subconsultas de appendScope leen de aquí.
type ManagerLocationRepo struct {
	q Querier
}

// NewManagerLocationRepository construye el adaptador.
func NewManagerLocationRepository(q Querier) *ManagerLocationRepo {
	return &ManagerLocationRepo{q: q}
}

// Assign asigna una sede a un manager. Idempotente: la asignación repetida no falla.
func (r *ManagerLocationRepo) Assign(ctx context.Context, ml *entity.ManagerLocation) error {
	query := `
		INSERT INTO manager_locations (manager_id, location_id, company_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (manager_id, location_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, ml.ManagerID, ml.LocationID, ml.CompanyID, ml.CreatedAt)
	if err != nil {
		return fmt.Errorf("assign manager location: %w", err)
	}
	return nil
}

// Unassign retira una sede de un manager.
func (r *ManagerLocationRepo) Unassign(ctx context.Context, managerID, locationID, companyID string) error {
	query := `
		DELETE FROM manager_locations
		WHERE manager_id = $1 AND location_id = $2 AND company_id = $3`
	_, err := r.q.Exec(ctx, query, managerID, locationID, companyID)
	if err != nil {
		return fmt.Errorf("unassign manager location: %w", err)
	}
	return nil
}

// ListByManager lista las sedes asignadas de un manager dentro del tenant.
func (r *ManagerLocationRepo) ListByManager(ctx context.Context, managerID, companyID string) ([]*entity.ManagerLocation, error) {
	query := `
		SELECT manager_id, location_id, company_id, created_at
		FROM manager_locations
		WHERE manager_id = $1 AND company_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, managerID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list manager locations: %w", err)
	}
	defer rows.Close()

	var list []*entity.ManagerLocation
	for rows.Next() {
		var ml entity.ManagerLocation
		if err := rows.Scan(&ml.ManagerID, &ml.LocationID, &ml.CompanyID, &ml.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan manager location: %w", err)
		}
		list = append(list, &ml)
	}
	return list, rows.Err()
}
