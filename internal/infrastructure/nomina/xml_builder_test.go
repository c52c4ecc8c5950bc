package nomina

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

func buildContext() *NominaBuildContext {
	return &NominaBuildContext{
		Record: &entity.PayrollRecord{
			ID:              "rec-1",
			CompanyID:       "co-1",
			EmployeeID:      "emp-1",
			PeriodStart:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			BasePay:         decimal.RequireFromString("2500000"),
			GrossPay:        decimal.RequireFromString("2700000"),
			TotalDeductions: decimal.RequireFromString("100000"),
			NetPay:          decimal.RequireFromString("2600000"),
			CUNE:            "abc123cune",
			DocumentNumber:  "NE00000042",
		},
		Employee: &entity.Employee{
			ID: "emp-1", Name: "María Pérez", Document: "1018456789",
		},
		Company: &entity.Company{
			ID: "co-1", Name: "Acme Colombia SAS", NIT: "900373115-3", Address: "Cra 7 # 71-21",
		},
		Adjustments: []*entity.PayrollAdjustment{
			{Kind: entity.AdjustmentBonus, Concept: "Bono desempeño", Amount: decimal.RequireFromString("200000")},
			{Kind: entity.AdjustmentDeduction, Concept: "Salud", Amount: decimal.RequireFromString("100000")},
		},
		GeneratedAt:  time.Date(2026, 4, 1, 10, 30, 0, 0, time.FixedZone("-05", -5*3600)),
		SoftwareID:   "soft-1",
		TipoAmbiente: "2",
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// XML NominaIndividual
// ═══════════════════════════════════════════════════════════════════════════

func TestBuild_EstructuraNominaIndividual(t *testing.T) {
	svc := NewXMLBuilderService()
	out, err := svc.Build(buildContext())
	require.NoError(t, err)
	xmlStr := string(out)

	// Raíz con Id para la Reference de la firma
	assert.Contains(t, xmlStr, `Id="nomina-id"`)
	// UBLExtensions antes que cualquier otro hijo (lo exige el firmador)
	extIdx := strings.Index(xmlStr, "UBLExtensions")
	perIdx := strings.Index(xmlStr, "Periodo")
	require.Greater(t, extIdx, 0)
	assert.Less(t, extIdx, perIdx)

	// CUNE y consecutivo
	assert.Contains(t, xmlStr, `CUNE="abc123cune"`)
	assert.Contains(t, xmlStr, `EncripCUNE="CUNE-SHA384"`)
	assert.Contains(t, xmlStr, `Prefijo="NE"`)
	assert.Contains(t, xmlStr, `Consecutivo="00000042"`)

	// Empleador con NIT base + DV separados
	assert.Contains(t, xmlStr, `NIT="900373115"`)
	assert.Contains(t, xmlStr, `DV="3"`)

	// Devengados y deducciones
	assert.Contains(t, xmlStr, `SueldoTrabajado="2500000.00"`)
	assert.Contains(t, xmlStr, `BonificacionNS="200000.00"`)
	assert.Contains(t, xmlStr, `Concepto="Salud"`)

	// Totales
	assert.Contains(t, xmlStr, "2700000.00")
	assert.Contains(t, xmlStr, "2600000.00")
}

func TestBuild_ContextoIncompleto(t *testing.T) {
	svc := NewXMLBuilderService()
	_, err := svc.Build(nil)
	assert.Error(t, err)

	ctx := buildContext()
	ctx.Company = nil
	_, err = svc.Build(ctx)
	assert.Error(t, err)
}

func TestBuild_NITInvalidoFalla(t *testing.T) {
	svc := NewXMLBuilderService()
	ctx := buildContext()
	ctx.Company.NIT = "900373115-9" // DV incorrecto
	_, err := svc.Build(ctx)
	assert.Error(t, err)
}

// ═══════════════════════════════════════════════════════════════════════════
// ZIP y nombres de archivo
// ═══════════════════════════════════════════════════════════════════════════

func TestNominaFilenames(t *testing.T) {
	ctx := buildContext()
	xmlName, zipName := NominaFilenames(ctx.Company, ctx.Record)

	// NIT solo dígitos, sin DV, + número de documento
	assert.Equal(t, "900373115NE00000042.xml", xmlName)
	assert.Equal(t, "900373115NE00000042.zip", zipName)
}

func TestCompressXMLToZip_RoundTrip(t *testing.T) {
	payload := []byte(`<NominaIndividual/>`)
	zipBytes, err := CompressXMLToZip(payload, "900373115NE00000042.xml")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "900373115NE00000042.xml", zr.File[0].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
