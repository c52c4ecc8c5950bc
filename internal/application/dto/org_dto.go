package dto

import "time"

// CreateCompanyRequest entrada para registrar una empresa.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	NIT     string `json:"nit" validate:"required"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	NIT            string    `json:"nit"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateLocationRequest entrada para crear una sede.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// UpdateLocationRequest campos opcionales para actualizar una sede.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// LocationResponse salida de una sede.
type LocationResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse listado paginado de sedes.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateTeamRequest entrada para crear un equipo.
type CreateTeamRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	LocationID *string `json:"location_id" validate:"omitempty,uuid"`
	LeadID     *string `json:"lead_id" validate:"omitempty,uuid"`
}

// UpdateTeamRequest campos opcionales para actualizar un equipo.
type UpdateTeamRequest struct {
	Name       *string `json:"name"`
	LocationID *string `json:"location_id"`
	LeadID     *string `json:"lead_id"`
}

// TeamResponse salida de un equipo.
type TeamResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	LocationID *string   `json:"location_id,omitempty"`
	LeadID     *string   `json:"lead_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TeamListResponse listado paginado de equipos.
type TeamListResponse struct {
	Items []TeamResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
