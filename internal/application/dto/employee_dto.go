package dto

import "time"

// OnboardEmployeeRequest entrada para crear un empleado (password en texto, se hashea en use case).
type OnboardEmployeeRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Document     string  `json:"document" validate:"required"`
	EmployeeCode string  `json:"employee_code" validate:"required,max=20"`
	Role         string  `json:"role" validate:"required,oneof=admin manager employee team_lead project_manager"`
	LocationID   *string `json:"location_id" validate:"omitempty,uuid"`
	TeamID       *string `json:"team_id" validate:"omitempty,uuid"`
	BaseSalary   string  `json:"base_salary" validate:"omitempty"`
}

// UpdateEmployeeRequest campos opcionales para actualizar el perfil.
// El rol NO se cambia aquí: usar ChangeRoleRequest (deja historial).
type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Document   *string `json:"document"`
	LocationID *string `json:"location_id"`
	TeamID     *string `json:"team_id"`
	BaseSalary *string `json:"base_salary"`
}

// ChangeRoleRequest entrada para cambiar el rol de un empleado (solo admin).
type ChangeRoleRequest struct {
	NewRole string `json:"new_role" validate:"required,oneof=admin manager employee team_lead project_manager"`
	Reason  string `json:"reason" validate:"required,min=3"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	EmployeeCode string    `json:"employee_code"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	LocationID   *string   `json:"location_id,omitempty"`
	TeamID       *string   `json:"team_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EmployeeListResponse listado paginado de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RoleAssignmentResponse una transición del historial de roles.
type RoleAssignmentResponse struct {
	ID            string    `json:"id"`
	EmployeeEmail string    `json:"employee_email"`
	OldRole       string    `json:"old_role"`
	NewRole       string    `json:"new_role"`
	AssignedBy    string    `json:"assigned_by"`
	Reason        string    `json:"reason"`
	EffectiveAt   time.Time `json:"effective_at"`
}

// AssignLocationRequest asigna una sede a un manager.
type AssignLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid"`
}
