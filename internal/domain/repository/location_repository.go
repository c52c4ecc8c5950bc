package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Location, error)
	Delete(ctx context.Context, id, companyID string) (bool, error)
}

// TeamRepository define el puerto de persistencia para Team.
type TeamRepository interface {
	Create(ctx context.Context, t *entity.Team) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Team, error)
	Update(ctx context.Context, t *entity.Team) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Team, error)
	Delete(ctx context.Context, id, companyID string) (bool, error)
}

// ManagerLocationRepository administra la relación N:M manager ↔ sedes asignadas.
type ManagerLocationRepository interface {
	Assign(ctx context.Context, ml *entity.ManagerLocation) error
	Unassign(ctx context.Context, managerID, locationID, companyID string) error
	ListByManager(ctx context.Context, managerID, companyID string) ([]*entity.ManagerLocation, error)
}

// RoleHistoryRepository registro append-only de transiciones de rol.
// No existe Update ni Delete: el historial jamás se muta después del insert.
type RoleHistoryRepository interface {
	Append(ctx context.Context, ra *entity.RoleAssignment) error
	ListByEmail(ctx context.Context, companyID, email string, limit, offset int) ([]*entity.RoleAssignment, error)
}
