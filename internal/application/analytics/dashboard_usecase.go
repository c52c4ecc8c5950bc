// Package analytics contiene los casos de uso de tablero y reportes operativos.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen operativo del tenant: empleados activos,
// turnos abiertos, aprobaciones pendientes y neto de nómina del período.
//
// Fuente de datos: AnalyticsRepository (consultas read-only, siempre scoped).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el resumen del tablero para el scope del actor.
// Un manager solo ve los agregados de sus sedes asignadas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, sc access.Scope) (*dto.DashboardSummaryResponse, error) {
	res, err := uc.analyticsRepo.GetDashboardSummary(ctx, sc)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		ActiveEmployees:  res.ActiveEmployees,
		OpenShifts:       res.OpenShifts,
		PendingApprovals: res.PendingApprovals,
		TotalNetPay:      res.TotalNetPay.StringFixed(2),
	}, nil
}

// GetHoursByLocation agrega horas trabajadas por sede en el rango consultado,
// con pausas descontadas. Default: los últimos 7 días.
func (uc *DashboardUseCase) GetHoursByLocation(ctx context.Context, sc access.Scope, from, to *time.Time) ([]dto.LocationHoursResponse, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	list, err := uc.analyticsRepo.GetHoursByLocation(ctx, sc, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationHoursResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.LocationHoursResponse{
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			Employees:    r.Employees,
			Entries:      r.Entries,
			TotalHours:   r.TotalHours.StringFixed(2),
		})
	}
	return out, nil
}
