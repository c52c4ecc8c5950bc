package nomina

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	pkgnomina "github.com/jhoicas/Nomina-api/pkg/nomina"
)

// Namespaces oficiales del Anexo Técnico de Nómina Electrónica 1.0.
const (
	// Namespace por defecto (NominaIndividual)
	NsNomina = "dian:gov:co:facturaelectronica:NominaIndividual"
	// Extension Components (mismo esquema UBL que factura)
	NsExt = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	// XML Digital Signature
	NsDs = "http://www.w3.org/2000/09/xmldsig#"
	// XAdES (para la firma)
	NsXades = "http://uri.etsi.org/01903/v1.3.2#"
	// XML Schema Instance (para schemaLocation)
	nsXsi = "http://www.w3.org/2001/XMLSchema-instance"
	// Schema location NominaIndividual
	schemaLocationNomina = "dian:gov:co:facturaelectronica:NominaIndividual NominaIndividualElectronicaXSD.xsd"
)

// XMLBuilderService construye el XML NominaIndividual (sin firma XAdES).
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el []byte del documento NominaIndividual según el Anexo 1.0.
func (s *XMLBuilderService) Build(ctx *NominaBuildContext) ([]byte, error) {
	if ctx == nil || ctx.Record == nil || ctx.Company == nil || ctx.Employee == nil {
		return nil, fmt.Errorf("nomina: faltan record, company o employee en el contexto")
	}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	// Root <NominaIndividual> con atributos obligatorios. Id para Reference URI en firma XAdES.
	root := xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "NominaIndividual"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Id"}, Value: "nomina-id"},
			{Name: xml.Name{Local: "xmlns"}, Value: NsNomina},
			{Name: xml.Name{Local: "xmlns:ds"}, Value: NsDs},
			{Name: xml.Name{Local: "xmlns:ext"}, Value: NsExt},
			{Name: xml.Name{Local: "xmlns:xades"}, Value: NsXades},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: nsXsi},
			{Name: xml.Name{Space: nsXsi, Local: "schemaLocation"}, Value: schemaLocationNomina},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	// ---- CRÍTICO: ext:UBLExtensions siempre como primer hijo (requerido por el firmador)
	if err := s.writeUBLExtensions(enc); err != nil {
		return nil, err
	}

	// ---- Periodo de liquidación
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Periodo"}})
	writeEl(enc, "FechaLiquidacionInicio", ctx.Record.PeriodStart.Format("2006-01-02"))
	writeEl(enc, "FechaLiquidacionFin", ctx.Record.PeriodEnd.Format("2006-01-02"))
	writeEl(enc, "FechaGen", ctx.GeneratedAt.Format("2006-01-02"))
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Periodo"}})

	// ---- NumeroSecuenciaXML (prefijo + consecutivo)
	prefix, number := splitDocumentNumber(ctx.Record.DocumentNumber)
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "NumeroSecuenciaXML"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Prefijo"}, Value: prefix},
			{Name: xml.Name{Local: "Consecutivo"}, Value: number},
			{Name: xml.Name{Local: "Numero"}, Value: ctx.Record.DocumentNumber},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "NumeroSecuenciaXML"}})

	// ---- InformacionGeneral (versión, ambiente, CUNE)
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "InformacionGeneral"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "Version"}, Value: "V1.0: Documento Soporte de Pago de Nómina Electrónica"},
			{Name: xml.Name{Local: "Ambiente"}, Value: ctx.TipoAmbiente},
			{Name: xml.Name{Local: "TipoXML"}, Value: pkgnomina.TipoXMLNominaIndividual},
			{Name: xml.Name{Local: "CUNE"}, Value: ctx.Record.CUNE},
			{Name: xml.Name{Local: "EncripCUNE"}, Value: "CUNE-SHA384"},
			{Name: xml.Name{Local: "FechaGen"}, Value: ctx.GeneratedAt.Format("2006-01-02")},
			{Name: xml.Name{Local: "HoraGen"}, Value: ctx.GeneratedAt.Format("15:04:05-07:00")},
			{Name: xml.Name{Local: "PeriodoNomina"}, Value: pkgnomina.PeriodoMensual},
			{Name: xml.Name{Local: "TipoMoneda"}, Value: "COP"},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "InformacionGeneral"}})

	// ---- Empleador
	if err := s.writeEmpleador(enc, ctx); err != nil {
		return nil, err
	}
	// ---- Trabajador
	if err := s.writeTrabajador(enc, ctx); err != nil {
		return nil, err
	}
	// ---- Devengados (básico + bonos)
	if err := s.writeDevengados(enc, ctx); err != nil {
		return nil, err
	}
	// ---- Deducciones
	if err := s.writeDeducciones(enc, ctx); err != nil {
		return nil, err
	}

	// ---- Totales
	writeEl(enc, "DevengadosTotal", formatDecimal(ctx.Record.GrossPay))
	writeEl(enc, "DeduccionesTotal", formatDecimal(ctx.Record.TotalDeductions))
	writeEl(enc, "ComprobanteTotal", formatDecimal(ctx.Record.NetPay))

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeUBLExtensions escribe siempre ext:UBLExtensions como primer hijo.
// Una sola extensión con ExtensionContent vacío: el firmador inyectará aquí <ds:Signature>.
func (s *XMLBuilderService) writeUBLExtensions(enc *xml.Encoder) error {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "UBLExtensions"}})
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "UBLExtension"}})
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsExt, Local: "ExtensionContent"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "ExtensionContent"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "UBLExtension"}})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsExt, Local: "UBLExtensions"}})
	return nil
}

func (s *XMLBuilderService) writeEmpleador(enc *xml.Encoder, ctx *NominaBuildContext) error {
	nit, dv, err := pkgnomina.ParseNIT(ctx.Company.NIT)
	if err != nil {
		return fmt.Errorf("nomina: NIT del empleador: %w", err)
	}
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Empleador"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "RazonSocial"}, Value: ctx.Company.Name},
			{Name: xml.Name{Local: "NIT"}, Value: nit},
			{Name: xml.Name{Local: "DV"}, Value: string(dv)},
			{Name: xml.Name{Local: "Pais"}, Value: "CO"},
			{Name: xml.Name{Local: "DireccionDomicilio"}, Value: ctx.Company.Address},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Empleador"}})
	return nil
}

func (s *XMLBuilderService) writeTrabajador(enc *xml.Encoder, ctx *NominaBuildContext) error {
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Trabajador"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "TipoTrabajador"}, Value: pkgnomina.TrabajadorDependiente},
			{Name: xml.Name{Local: "TipoDocumento"}, Value: pkgnomina.IdentificationTypeCC},
			{Name: xml.Name{Local: "NumeroDocumento"}, Value: ctx.Employee.Document},
			{Name: xml.Name{Local: "NombreCompleto"}, Value: ctx.Employee.Name},
			{Name: xml.Name{Local: "TipoContrato"}, Value: pkgnomina.ContratoTerminoIndefinido},
			{Name: xml.Name{Local: "Sueldo"}, Value: formatDecimal(ctx.Record.BasePay)},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Trabajador"}})
	return nil
}

func (s *XMLBuilderService) writeDevengados(enc *xml.Encoder, ctx *NominaBuildContext) error {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Devengados"}})

	// Básico: días del período y sueldo base
	days := int(ctx.Record.PeriodEnd.Sub(ctx.Record.PeriodStart).Hours()/24) + 1
	_ = enc.EncodeToken(xml.StartElement{
		Name: xml.Name{Space: NsNomina, Local: "Basico"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "DiasTrabajados"}, Value: strconv.Itoa(days)},
			{Name: xml.Name{Local: "SueldoTrabajado"}, Value: formatDecimal(ctx.Record.BasePay)},
		},
	})
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Basico"}})

	// Bonificaciones: una entrada por cada ajuste tipo bonus
	bonuses := filterAdjustments(ctx.Adjustments, entity.AdjustmentBonus)
	if len(bonuses) > 0 {
		_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Bonificaciones"}})
		for _, b := range bonuses {
			_ = enc.EncodeToken(xml.StartElement{
				Name: xml.Name{Space: NsNomina, Local: "Bonificacion"},
				Attr: []xml.Attr{
					{Name: xml.Name{Local: "BonificacionNS"}, Value: formatDecimal(b.Amount)},
				},
			})
			_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Bonificacion"}})
		}
		_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Bonificaciones"}})
	}

	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Devengados"}})
	return nil
}

func (s *XMLBuilderService) writeDeducciones(enc *xml.Encoder, ctx *NominaBuildContext) error {
	deductions := filterAdjustments(ctx.Adjustments, entity.AdjustmentDeduction)
	if len(deductions) == 0 {
		return nil
	}
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: "Deducciones"}})
	for _, d := range deductions {
		_ = enc.EncodeToken(xml.StartElement{
			Name: xml.Name{Space: NsNomina, Local: "OtraDeduccion"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "Concepto"}, Value: d.Concept},
				{Name: xml.Name{Local: "Deduccion"}, Value: formatDecimal(d.Amount)},
			},
		})
		_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "OtraDeduccion"}})
	}
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: "Deducciones"}})
	return nil
}

func writeEl(enc *xml.Encoder, local, value string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Space: NsNomina, Local: local}})
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Space: NsNomina, Local: local}})
}

func filterAdjustments(list []*entity.PayrollAdjustment, kind string) []*entity.PayrollAdjustment {
	var out []*entity.PayrollAdjustment
	for _, a := range list {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// splitDocumentNumber separa el prefijo alfabético del consecutivo numérico.
func splitDocumentNumber(docNumber string) (prefix, number string) {
	i := 0
	for i < len(docNumber) && (docNumber[i] < '0' || docNumber[i] > '9') {
		i++
	}
	return docNumber[:i], docNumber[i:]
}

func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
