package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TeamUseCase CRUD de equipos dentro del tenant.
type TeamUseCase struct {
	teams repository.TeamRepository
}

func NewTeamUseCase(teams repository.TeamRepository) *TeamUseCase {
	return &TeamUseCase{teams: teams}
}

func (uc *TeamUseCase) Create(ctx context.Context, companyID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	now := time.Now()
	team := &entity.Team{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		LocationID: in.LocationID,
		LeadID:     in.LeadID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (uc *TeamUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.TeamResponse, error) {
	team, err := uc.teams.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}
	return toTeamResponse(team), nil
}

func (uc *TeamUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.TeamListResponse, error) {
	list, err := uc.teams.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TeamResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTeamResponse(t))
	}
	return &dto.TeamListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func (uc *TeamUseCase) Update(ctx context.Context, id, companyID string, in dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := uc.teams.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}
	if in.Name != nil {
		team.Name = *in.Name
	}
	if in.LocationID != nil {
		team.LocationID = in.LocationID
	}
	if in.LeadID != nil {
		team.LeadID = in.LeadID
	}
	team.UpdatedAt = time.Now()
	if err := uc.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (uc *TeamUseCase) Delete(ctx context.Context, id, companyID string) (bool, error) {
	return uc.teams.Delete(ctx, id, companyID)
}

func toTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:         t.ID,
		CompanyID:  t.CompanyID,
		Name:       t.Name,
		LocationID: t.LocationID,
		LeadID:     t.LeadID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
