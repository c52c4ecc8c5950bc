package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso de gestión de empleados: onboarding, perfil,
// cambio de rol con historial, desactivación y asignación de sedes a managers.
type EmployeeUseCase struct {
	employees   repository.EmployeeRepository
	roleHistory repository.RoleHistoryRepository
	managerLocs repository.ManagerLocationRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	employees repository.EmployeeRepository,
	roleHistory repository.RoleHistoryRepository,
	managerLocs repository.ManagerLocationRepository,
) *EmployeeUseCase {
	return &EmployeeUseCase{employees: employees, roleHistory: roleHistory, managerLocs: managerLocs}
}

// Onboard crea un empleado en el tenant del actor: hashea password con bcrypt
// y persiste. El companyID viene del scope resuelto, nunca del body.
func (uc *EmployeeUseCase) Onboard(ctx context.Context, companyID string, in dto.OnboardEmployeeRequest) (*dto.EmployeeResponse, error) {
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	existing, err := uc.employees.GetByEmailAndCompany(ctx, in.Email, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	salary := decimal.Zero
	if in.BaseSalary != "" {
		salary, err = decimal.NewFromString(in.BaseSalary)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	emp := &entity.Employee{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		EmployeeCode: in.EmployeeCode,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Document:     in.Document,
		Role:         role,
		Status:       entity.EmployeeActive,
		LocationID:   in.LocationID,
		TeamID:       in.TeamID,
		BaseSalary:   salary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(emp), nil
}

// GetByID obtiene un empleado dentro del scope del actor. Fuera de scope se
// reporta como no encontrado (indistinguible de inexistente, no filtra existencia).
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string, sc access.Scope) (*dto.EmployeeResponse, error) {
	emp, err := uc.employees.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != sc.CompanyID {
		return nil, nil
	}
	if sc.EmployeeID != "" && emp.ID != sc.EmployeeID {
		return nil, nil
	}
	return auth.ToEmployeeResponse(emp), nil
}

// List lista empleados según el scope (admin: tenant completo; manager: sedes asignadas).
func (uc *EmployeeUseCase) List(ctx context.Context, sc access.Scope, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.employees.List(ctx, sc, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *auth.ToEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza el perfil de un empleado dentro del tenant. No toca el rol.
func (uc *EmployeeUseCase) Update(ctx context.Context, id, companyID string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.employees.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, nil
	}
	if in.Name != nil {
		emp.Name = *in.Name
	}
	if in.Document != nil {
		emp.Document = *in.Document
	}
	if in.LocationID != nil {
		emp.LocationID = in.LocationID
	}
	if in.TeamID != nil {
		emp.TeamID = in.TeamID
	}
	if in.BaseSalary != nil {
		salary, err := decimal.NewFromString(*in.BaseSalary)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		emp.BaseSalary = salary
	}
	emp.UpdatedAt = time.Now()
	if err := uc.employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(emp), nil
}

// ChangeRole cambia el rol de un empleado (solo admin) dejando una fila
// inmutable en el historial: rol anterior, nuevo, actor, razón y fecha efectiva.
func (uc *EmployeeUseCase) ChangeRole(ctx context.Context, id, companyID, actorID string, in dto.ChangeRoleRequest) (*dto.EmployeeResponse, error) {
	newRole, err := entity.ParseRole(in.NewRole)
	if err != nil {
		return nil, err
	}
	emp, err := uc.employees.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, nil
	}
	oldRole := emp.Role
	if oldRole == newRole {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	emp.Role = newRole
	emp.UpdatedAt = now
	if err := uc.employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	history := &entity.RoleAssignment{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		EmployeeEmail: emp.Email,
		OldRole:       oldRole,
		NewRole:       newRole,
		AssignedBy:    actorID,
		Reason:        in.Reason,
		EffectiveAt:   now,
		CreatedAt:     now,
	}
	if err := uc.roleHistory.Append(ctx, history); err != nil {
		return nil, err
	}
	return auth.ToEmployeeResponse(emp), nil
}

// Deactivate marca el empleado como inactivo (soft delete, nunca DELETE).
// Retorna false si no existe o está fuera del tenant.
func (uc *EmployeeUseCase) Deactivate(ctx context.Context, id, companyID string) (bool, error) {
	return uc.employees.Deactivate(ctx, id, companyID)
}

// RoleHistory lista el historial de roles de un empleado por email (solo admin).
func (uc *EmployeeUseCase) RoleHistory(ctx context.Context, companyID, employeeID string, limit, offset int) ([]dto.RoleAssignmentResponse, error) {
	emp, err := uc.employees.GetByID(ctx, employeeID, false)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.roleHistory.ListByEmail(ctx, companyID, emp.Email, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleAssignmentResponse, 0, len(list))
	for _, ra := range list {
		items = append(items, dto.RoleAssignmentResponse{
			ID:            ra.ID,
			EmployeeEmail: ra.EmployeeEmail,
			OldRole:       ra.OldRole.String(),
			NewRole:       ra.NewRole.String(),
			AssignedBy:    ra.AssignedBy,
			Reason:        ra.Reason,
			EffectiveAt:   ra.EffectiveAt,
		})
	}
	return items, nil
}

// AssignLocation asigna una sede a un manager (solo admin). El empleado debe
// tener rol manager: la relación define el alcance de sus consultas.
func (uc *EmployeeUseCase) AssignLocation(ctx context.Context, managerID, companyID, locationID string) error {
	emp, err := uc.employees.GetByID(ctx, managerID, false)
	if err != nil {
		return err
	}
	if emp == nil || emp.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if !entity.IsManager(emp) {
		return domain.ErrInvalidInput
	}
	return uc.managerLocs.Assign(ctx, &entity.ManagerLocation{
		ManagerID:  managerID,
		LocationID: locationID,
		CompanyID:  companyID,
		CreatedAt:  time.Now(),
	})
}

// UnassignLocation retira una sede de un manager.
func (uc *EmployeeUseCase) UnassignLocation(ctx context.Context, managerID, companyID, locationID string) error {
	return uc.managerLocs.Unassign(ctx, managerID, locationID, companyID)
}

// ListLocations lista las sedes asignadas de un manager.
func (uc *EmployeeUseCase) ListLocations(ctx context.Context, managerID, companyID string) ([]string, error) {
	list, err := uc.managerLocs.ListByManager(ctx, managerID, companyID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, ml := range list {
		ids = append(ids, ml.LocationID)
	}
	return ids, nil
}
