// Package nomina contiene catálogos y validaciones alineados al Anexo Técnico
// de Nómina Electrónica DIAN (Colombia) v1.0.
package nomina

// =============================================================================
// Período de Nómina (Anexo NE 1.0 - PeriodoNomina)
// =============================================================================

const (
	PeriodoSemanal    = "1" // Semanal
	PeriodoDecenal    = "2" // Decenal
	PeriodoCatorcenal = "3" // Catorcenal
	PeriodoQuincenal  = "4" // Quincenal
	PeriodoMensual    = "5" // Mensual
)

// ValidPayrollPeriodCodes códigos de período de nómina válidos.
var ValidPayrollPeriodCodes = map[string]bool{
	PeriodoSemanal: true, PeriodoDecenal: true, PeriodoCatorcenal: true,
	PeriodoQuincenal: true, PeriodoMensual: true,
}

// =============================================================================
// Tipo de XML (Anexo NE 1.0 - InformacionGeneral/TipoXML)
// =============================================================================

const (
	TipoXMLNominaIndividual = "102" // NominaIndividual
	TipoXMLNominaAjuste     = "103" // NominaIndividualDeAjuste
)

// =============================================================================
// Tipo de Trabajador (Anexo NE 1.0 - TipoTrabajador) - códigos de uso frecuente
// =============================================================================

const (
	TrabajadorDependiente      = "01" // Dependiente
	TrabajadorServicioDomestico = "02" // Servicio doméstico
	TrabajadorEntidadCooperativa = "12" // Asociados a cooperativas
	TrabajadorAprendizSENA     = "18" // Aprendices del SENA en etapa lectiva
	TrabajadorPensionado       = "23" // Por fondo de pensiones (pensionado)
)

// =============================================================================
// Tipo de Contrato (Anexo NE 1.0 - TipoContrato)
// =============================================================================

const (
	ContratoTerminoFijo       = "1" // Término fijo
	ContratoTerminoIndefinido = "2" // Término indefinido
	ContratoObraLabor         = "3" // Obra o labor
	ContratoAprendizaje       = "4" // Aprendizaje
	ContratoPracticas         = "5" // Prácticas o pasantías
)

// =============================================================================
// Tipos de identificación (compartidos con facturación, Tabla 3 Anexo 1.9)
// =============================================================================

const (
	IdentificationTypeNIT = "31" // NIT - requiere dígito de verificación
	IdentificationTypeCC  = "13" // Cédula de ciudadanía
)
