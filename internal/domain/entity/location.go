package entity

import "time"

// Location representa una sede o punto de trabajo de la empresa (multi-sede).
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team representa un equipo de trabajo dentro de una sede.
type Team struct {
	ID         string
	CompanyID  string
	Name       string
	LocationID *string // sede del equipo (nil = transversal)
	LeadID     *string // empleado con rol team_lead (nil = sin líder)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
