package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// LocationUseCase CRUD de sedes dentro del tenant.
type LocationUseCase struct {
	locations repository.LocationRepository
}

func NewLocationUseCase(locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locations: locations}
}

func (uc *LocationUseCase) Create(ctx context.Context, companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (uc *LocationUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return toLocationResponse(loc), nil
}

func (uc *LocationUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.locations.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, loc := range list {
		items = append(items, *toLocationResponse(loc))
	}
	return &dto.LocationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *LocationUseCase) Update(ctx context.Context, id, companyID string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	if in.Name != nil {
		loc.Name = *in.Name
	}
	if in.Address != nil {
		loc.Address = *in.Address
	}
	loc.UpdatedAt = time.Now()
	if err := uc.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

func (uc *LocationUseCase) Delete(ctx context.Context, id, companyID string) (bool, error) {
	return uc.locations.Delete(ctx, id, companyID)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		CompanyID: l.CompanyID,
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
