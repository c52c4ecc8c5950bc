package repository

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Las lecturas con Scope aplican el predicado de tenant/sede estructuralmente.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	// GetByID busca por UUID; solo retorna empleados activos si activeOnly es true.
	GetByID(ctx context.Context, id string, activeOnly bool) (*entity.Employee, error)
	// GetByCode busca por código de empleado (credencial alternativa al UUID).
	GetByCode(ctx context.Context, code string, activeOnly bool) (*entity.Employee, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	// Deactivate marca el empleado como inactivo (soft delete, nunca DELETE).
	Deactivate(ctx context.Context, id, companyID string) (bool, error)
	List(ctx context.Context, sc access.Scope, limit, offset int) ([]*entity.Employee, error)
	// ResolveTenant carga el tenant del empleado. nil = sin scope autorizado (403).
	ResolveTenant(ctx context.Context, employeeID string) (*access.Tenant, error)
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
