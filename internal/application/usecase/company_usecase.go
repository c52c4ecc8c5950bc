package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/nomina"
)

// CompanyUseCase registro y consulta de empresas (tenants).
type CompanyUseCase struct {
	companies repository.CompanyRepository
}

func NewCompanyUseCase(companies repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies}
}

// Create registra una empresa nueva. El NIT se valida contra el dígito de
// verificación DIAN cuando viene con DV.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	nit, _, err := nomina.ParseNIT(in.NIT)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		OrganizationID: uuid.New().String(),
		Name:           in.Name,
		NIT:            nit,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		NIT:            c.NIT,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}
