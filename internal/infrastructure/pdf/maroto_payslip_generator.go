// Package pdf implementa la generación del desprendible de pago de nómina
// (representación gráfica del Documento Soporte de Pago de Nómina Electrónica,
// Resolución 000013/2021 DIAN).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Documento + Período      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADOR: Dirección / Tel / Email                          │
//	│  TRABAJADOR: Nombre + CC + cargo/sede                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Tipo | Valor                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Devengado / Deducciones / NETO A PAGAR             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER DIAN: CUNE + QR + Leyenda legal                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apppayroll "github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPayslipGenerator implementa payroll.PayslipPDFGenerator usando Maroto v2.
type MarotoPayslipGenerator struct{}

// NewMarotoPayslipGenerator construye el generador.
func NewMarotoPayslipGenerator() *MarotoPayslipGenerator { return &MarotoPayslipGenerator{} }

// GeneratePayslipPDF genera el PDF del desprendible y devuelve sus bytes.
func (g *MarotoPayslipGenerator) GeneratePayslipPDF(
	_ context.Context,
	record *entity.PayrollRecord,
	employee *entity.Employee,
	company *entity.Company,
	adjustments []*entity.PayrollAdjustment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Desprendible de Nómina", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(record, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(empleadorRow(company))
	m.AddRows(trabajadorRow(employee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de conceptos: salario base + cada bono/deducción
	m.AddRows(tableHeaderRow())
	for _, r := range tableConceptRows(record, adjustments) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(record))

	// Footer DIAN
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range dianFooterRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y N° documento + período (der).
func headerRow(record *entity.PayrollRecord, company *entity.Company) core.Row {
	numDoc := record.DocumentNumber
	if numDoc == "" {
		numDoc = "SIN EMITIR"
	}
	periodo := record.PeriodStart.Format("02/01/2006") + " - " + record.PeriodEnd.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DESPRENDIBLE DE NÓMINA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numDoc, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Período: "+periodo, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// empleadorRow: datos del empleador (empresa).
func empleadorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMPLEADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// trabajadorRow: datos del trabajador.
func trabajadorRow(employee *entity.Employee) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TRABAJADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(employee.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CC: %s   |   Código: %s   |   Email: %s",
				nonEmpty(employee.Document, "—"),
				nonEmpty(employee.EmployeeCode, "—"),
				nonEmpty(employee.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 6, align.Left),
		h("Tipo", 3, align.Center),
		h("Valor", 3, align.Right),
	)
}

// tableConceptRows: salario base + una fila por ajuste.
func tableConceptRows(record *entity.PayrollRecord, adjustments []*entity.PayrollAdjustment) []core.Row {
	conceptRow := func(concept, kind, value string) core.Row {
		return row.New(7).Add(
			col.New(6).Add(text.New(
				concept,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				kind,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				value,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		)
	}

	result := make([]core.Row, 0, len(adjustments)+1)
	result = append(result, conceptRow("Salario básico",
		"Devengado", "$"+formatMoney(record.BasePay.StringFixed(0))))

	for _, a := range adjustments {
		kind := "Devengado"
		value := "$" + formatMoney(a.Amount.StringFixed(0))
		if a.Kind == entity.AdjustmentDeduction {
			kind = "Deducción"
			value = "-$" + formatMoney(a.Amount.StringFixed(0))
		}
		result = append(result, conceptRow(a.Concept, kind, value))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(record *entity.PayrollRecord) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3), // espacio izquierdo
		col.New(3).Add(
			label("Total devengado:"),
			label("Total deducciones:"),
			grandLabel("NETO A PAGAR:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(record.GrossPay.StringFixed(0))),
			value("-$"+formatMoney(record.TotalDeductions.StringFixed(0))),
			grandValue("$"+formatMoney(record.NetPay.StringFixed(0))),
		),
		col.New(3), // espacio derecho
	)
}

// dianFooterRows: CUNE partido + código QR + leyenda legal.
func dianFooterRows(record *entity.PayrollRecord) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INFORMACIÓN ELECTRÓNICA DIAN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	// CUNE partido en fragmentos de 80 caracteres
	if record.CUNE != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("CUNE (Código Único de Nómina Electrónica):", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)))
		for _, chunk := range splitEvery(record.CUNE, 80) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}

		rows = append(rows, row.New(3))

		// QR con el CUNE para validación en el Portal DIAN
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(record.CUNE, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para validar\neste documento en el Portal DIAN.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("DOCUMENTO SOPORTE DE PAGO DE\nNÓMINA ELECTRÓNICA", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22,
					Left: 3, Color: colorPrimary,
				}),
			),
		))
	} else {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Documento sin emitir ante la DIAN — desprendible informativo", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		)))
	}

	// Leyenda legal
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este desprendible fue generado conforme a la normativa DIAN de Nómina Electrónica "+
				"(Resolución 000013/2021, Anexo Técnico 1.0). "+
				"Conserve este documento como soporte laboral y fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if neg {
		return "-" + string(buf)
	}
	return string(buf)
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}

var _ apppayroll.PayslipPDFGenerator = (*MarotoPayslipGenerator)(nil)
