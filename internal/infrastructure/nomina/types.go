// Package nomina implementa la generación del XML NominaIndividual para el
// Documento Soporte de Pago de Nómina Electrónica DIAN (Colombia).
package nomina

import (
	"context"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// NominaBuildContext contexto con todos los datos necesarios para construir el
// XML del documento de nómina individual.
type NominaBuildContext struct {
	Record      *entity.PayrollRecord
	Employee    *entity.Employee // Trabajador
	Company     *entity.Company  // Empleador
	Adjustments []*entity.PayrollAdjustment

	GeneratedAt  time.Time // FechaGen/HoraGen (misma marca usada para el CUNE)
	SoftwareID   string    // ID del software registrado ante la DIAN
	TipoAmbiente string    // '1' = Producción, '2' = Pruebas
}

// SubmitResult resultado de la entrega al WS DIAN.
type SubmitResult struct {
	TrackID  string // ZipKey devuelto por SendNominaSync / SendTestSetAsync
	Accepted bool   // true si la DIAN aceptó el documento (HasErrors == false)
	Errors   string // mensajes de error/rechazo de la DIAN (puede ser vacío)
}

// NominaSubmitter define el puerto de salida para la entrega de documentos al WS DIAN.
// La implementación concreta usa SOAP; para tests se puede inyectar un mock.
type NominaSubmitter interface {
	// SubmitZip envía el ZIP del documento electrónico al WS DIAN.
	// env debe ser "test" o "prod"; determina la URL del endpoint.
	// filename es el nombre del archivo ZIP (ej: "900123456NE00000001.zip").
	SubmitZip(ctx context.Context, zipBytes []byte, filename, env string) (*SubmitResult, error)
}
