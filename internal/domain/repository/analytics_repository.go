package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/domain/access"
)

// LocationHoursResult horas trabajadas agregadas por sede en un rango.
type LocationHoursResult struct {
	LocationID   string
	LocationName string
	Employees    int64
	Entries      int64
	TotalHours   decimal.Decimal // horas con pausas descontadas
}

// DashboardSummaryResult métricas agregadas para el tablero.
type DashboardSummaryResult struct {
	ActiveEmployees  int64
	OpenShifts       int64
	PendingApprovals int64
	TotalNetPay      decimal.Decimal // neto del período actual
}

// AnalyticsRepository consultas de solo lectura para tableros (siempre scoped).
type AnalyticsRepository interface {
	GetDashboardSummary(ctx context.Context, sc access.Scope) (*DashboardSummaryResult, error)
	GetHoursByLocation(ctx context.Context, sc access.Scope, from, to time.Time) ([]LocationHoursResult, error)
}
