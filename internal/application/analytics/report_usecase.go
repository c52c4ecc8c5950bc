package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/access"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// ReportUseCase exporta reportes operativos en CSV.
//
// El CSV se codifica en Windows-1252: es el encoding que Excel en Windows
// (instalación típica en las empresas colombianas) abre sin asistente de
// importación, con tildes y eñes correctas.
type ReportUseCase struct {
	entries   repository.TimeEntryRepository
	employees repository.EmployeeRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(entries repository.TimeEntryRepository, employees repository.EmployeeRepository) *ReportUseCase {
	return &ReportUseCase{entries: entries, employees: employees}
}

// TimeEntriesCSV genera el reporte de turnos del rango dentro del scope del
// actor. Retorna los bytes ya codificados en Windows-1252 y el nombre de archivo.
func (uc *ReportUseCase) TimeEntriesCSV(ctx context.Context, sc access.Scope, from, to time.Time) ([]byte, string, error) {
	filter := repository.TimeEntryFilter{From: &from, To: &to}
	list, err := uc.entries.List(ctx, sc, filter, 10000, 0)
	if err != nil {
		return nil, "", fmt.Errorf("report: listar turnos: %w", err)
	}

	// cache de empleados: varios turnos comparten empleado
	names := make(map[string][2]string) // id -> {código, nombre}
	lookup := func(id string) [2]string {
		if v, ok := names[id]; ok {
			return v
		}
		v := [2]string{id, ""}
		if emp, err := uc.employees.GetByID(ctx, id, false); err == nil && emp != nil {
			v = [2]string{emp.EmployeeCode, emp.Name}
		}
		names[id] = v
		return v
	}

	var buf bytes.Buffer
	enc := transform.NewWriter(&buf, charmap.Windows1252.NewEncoder())
	w := csv.NewWriter(enc)
	w.Comma = ';' // separador que Excel regional es-CO espera

	header := []string{"Código", "Nombre", "Entrada", "Salida", "Horas", "Estado aprobación"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, e := range list {
		emp := lookup(e.EmployeeID)
		clockOut, hours := "", ""
		if e.ClockOut != nil {
			clockOut = e.ClockOut.Format("2006-01-02 15:04")
			hours = fmt.Sprintf("%.2f", e.ClockOut.Sub(e.ClockIn).Hours())
		}
		row := []string{
			emp[0],
			emp[1],
			e.ClockIn.Format("2006-01-02 15:04"),
			clockOut,
			hours,
			approvalLabel(e.ApprovalStatus),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	if err := enc.Close(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("turnos_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	return buf.Bytes(), filename, nil
}

// approvalLabel traduce el estado de aprobación al label del reporte.
func approvalLabel(status string) string {
	switch status {
	case entity.ApprovalApproved:
		return "Aprobado"
	case entity.ApprovalRejected:
		return "Rechazado"
	default:
		return "Pendiente"
	}
}
