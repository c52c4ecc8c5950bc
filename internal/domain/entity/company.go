package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant, enfoque Colombia).
// OrganizationID agrupa varias companies bajo un mismo grupo empresarial; se
// resuelve junto con el tenant en cada request, nunca se toma del cliente.
type Company struct {
	ID             string
	OrganizationID string
	Name           string
	NIT            string // NIT colombiano (con o sin dígito de verificación)
	Address        string
	Phone          string
	Email          string
	Status         string // active, suspended, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
