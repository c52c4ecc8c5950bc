package dto

// LoginRequest entrada para login con email y password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT de sesión.
type LoginResponse struct {
	Token string           `json:"token"`
	User  EmployeeResponse `json:"user"`
}

// MeResponse identidad resuelta del request actual.
type MeResponse struct {
	User           EmployeeResponse `json:"user"`
	CompanyID      string           `json:"company_id"`
	OrganizationID string           `json:"organization_id"`
	Demo           bool             `json:"demo,omitempty"` // true si la identidad vino del proveedor demo
}
