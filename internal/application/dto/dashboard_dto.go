package dto

// DashboardSummaryResponse métricas agregadas para el tablero (siempre scoped).
type DashboardSummaryResponse struct {
	ActiveEmployees  int64  `json:"active_employees"`
	OpenShifts       int64  `json:"open_shifts"`
	PendingApprovals int64  `json:"pending_approvals"`
	TotalNetPay      string `json:"total_net_pay"`
}

// LocationHoursResponse horas trabajadas por sede en el rango consultado.
type LocationHoursResponse struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	Employees    int64  `json:"employees"`
	Entries      int64  `json:"entries"`
	TotalHours   string `json:"total_hours"`
}
