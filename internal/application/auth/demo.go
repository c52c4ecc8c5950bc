package auth

import (
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// StaticDemoProvider retorna siempre la misma identidad admin fija.
// Se construye solo cuando AUTH_DEMO_ENABLED=true; NO es una frontera de
// seguridad, es una válvula de escape para demos y ambientes de prueba.
type StaticDemoProvider struct {
	emp    *entity.Employee
	tenant access.Tenant
}

// NewStaticDemoProvider construye el proveedor con la identidad fija de configuración.
func NewStaticDemoProvider(employeeID, companyID, orgID, email string) *StaticDemoProvider {
	now := time.Now()
	return &StaticDemoProvider{
		emp: &entity.Employee{
			ID:           employeeID,
			CompanyID:    companyID,
			EmployeeCode: "DEMO",
			Email:        email,
			Name:         "Demo Admin",
			Role:         entity.RoleAdmin,
			Status:       entity.EmployeeActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		tenant: access.Tenant{CompanyID: companyID, OrganizationID: orgID},
	}
}

// Identity retorna la identidad demo fija.
func (p *StaticDemoProvider) Identity() *entity.Employee { return p.emp }

// Tenant retorna el tenant demo fijo.
func (p *StaticDemoProvider) Tenant() access.Tenant { return p.tenant }
