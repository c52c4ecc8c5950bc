package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Employee. Los empleados nunca se borran físicamente:
// la baja es un soft-delete vía Status = inactive.
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee representa un trabajador del sistema (pertenece a una Company).
type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string // código corto visible (ej: EMP001), alternativa al UUID como credencial
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Document     string // documento de identidad (CC), requerido para nómina electrónica
	Role         Role
	Status       string  // active, inactive
	LocationID   *string // sede asignada (nil = sin sede)
	TeamID       *string // equipo asignado (nil = sin equipo)
	BaseSalary   decimal.Decimal // salario base mensual
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active indica si el empleado puede autenticarse y registrar tiempo.
func (e *Employee) Active() bool { return e != nil && e.Status == EmployeeActive }

// ManagerLocation relación N:M entre un manager y las sedes que tiene asignadas.
// Es la única fuente del alcance de consultas de un manager.
type ManagerLocation struct {
	ManagerID  string
	LocationID string
	CompanyID  string
	CreatedAt  time.Time
}

// RoleAssignment registro inmutable del historial de cambios de rol.
// Se inserta una fila por transición y jamás se actualiza ni borra.
type RoleAssignment struct {
	ID            string
	CompanyID     string
	EmployeeEmail string // clave histórica: sobrevive a recreación del empleado
	OldRole       Role
	NewRole       Role
	AssignedBy    string // ID del actor que asignó
	Reason        string
	EffectiveAt   time.Time
	CreatedAt     time.Time
}
