package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación por sesión: login con email/password.
// El alta de empleados vive en EmployeeUseCase (onboarding, solo admin).
type AuthUseCase struct {
	employees repository.EmployeeRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employees: employees, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + empleado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	emp, err := uc.employees.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !emp.Active() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, emp.ID, emp.CompanyID, emp.EmployeeCode, emp.Role.String(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToEmployeeResponse(emp),
	}, nil
}

// ToEmployeeResponse mapea la entidad al DTO de salida (sin password hash).
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:           e.ID,
		CompanyID:    e.CompanyID,
		EmployeeCode: e.EmployeeCode,
		Email:        e.Email,
		Name:         e.Name,
		Role:         e.Role.String(),
		Status:       e.Status,
		LocationID:   e.LocationID,
		TeamID:       e.TeamID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
