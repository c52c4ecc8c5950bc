package nomina_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Nomina-api/internal/domain/nomina"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestCalculateCune valida que el cálculo SHA-384 del CUNE produce el hash
// exacto esperado para parámetros conocidos.
//
// Si alguien modifica inadvertidamente la cadena de concatenación, el algoritmo
// o el formato de los montos, el test falla inmediatamente antes de llegar a
// producción.
//
// Vector de prueba calculado manualmente con SHA-384:
//
//	Cadena = NumNIE + FecNIE + HorNIE + ValDev + ValDed + ValTol +
//	         NitNIE + DocEmp + TipoXML + TipoAmb + SoftwarePin
//	       = "NE0000001" + "2026-03-31" + "18:30:00-05:00" +
//	         "3500000.00" + "280000.00" + "3220000.00" +
//	         "900123456" + "1018456789" + "102" + "2" + "75315"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCuneExpected = "c763dae741d6c9a2cc1cd45038b229e68ace11cc75c25613a0ef95d57adf07b55f31a4ffdf05181bf6ec679a1b75d7e7"

	testNitNIE  = "900123456"
	testDocEmp  = "1018456789"
	testPin     = "75315"
	testFecNIE  = "2026-03-31"
	testHorNIE  = "18:30:00-05:00"
	testNumNIE  = "NE0000001"
	testTipoAmb = "2"
)

func TestCalculateCune_VectorExacto(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()

	params := &nomina.CuneParams{
		NumNIE:      testNumNIE,
		FecNIE:      testFecNIE,
		HorNIE:      testHorNIE,
		ValDev:      decimal.NewFromFloat(3_500_000),
		ValDed:      decimal.NewFromFloat(280_000),
		ValTol:      decimal.NewFromFloat(3_220_000),
		NitNIE:      testNitNIE,
		DocEmp:      testDocEmp,
		TipoAmb:     testTipoAmb,
		SoftwarePin: testPin,
	}

	cune, err := svc.Calculate(params)
	require.NoError(t, err, "Calculate no debe retornar error con parámetros válidos")
	assert.Equal(t, testCuneExpected, cune,
		"El CUNE debe coincidir exactamente con el vector SHA-384 de referencia DIAN")
}

// TestCalculateCune_DeterministaIgual verifica que llamar Calculate dos veces
// con los mismos parámetros produce siempre el mismo hash (idempotente).
func TestCalculateCune_DeterministaIgual(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	params := buildTestParams()

	cune1, err1 := svc.Calculate(params)
	cune2, err2 := svc.Calculate(params)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, cune1, cune2, "El mismo input siempre debe producir el mismo CUNE")
}

// TestCalculateCune_DiferenteNumNIE verifica que cambiar el consecutivo del
// documento produce un hash distinto (sensibilidad al input).
func TestCalculateCune_DiferenteNumNIE(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.NumNIE = "NE0000002" // solo cambia el consecutivo

	cune1, _ := svc.Calculate(p1)
	cune2, _ := svc.Calculate(p2)

	assert.NotEqual(t, cune1, cune2,
		"Documentos con consecutivos distintos deben tener CUNEs distintos")
}

// TestCalculateCune_TipoAmbienteAfectaHash verifica que producción (TipoAmb=1)
// y pruebas (TipoAmb=2) producen hashes diferentes.
func TestCalculateCune_TipoAmbienteAfectaHash(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()

	pPruebas := buildTestParams()
	pPruebas.TipoAmb = "2"

	pProduccion := buildTestParams()
	pProduccion.TipoAmb = "1"

	cunePruebas, _ := svc.Calculate(pPruebas)
	cuneProduccion, _ := svc.Calculate(pProduccion)

	assert.NotEqual(t, cunePruebas, cuneProduccion,
		"Los CUNEs de ambiente pruebas y producción deben ser distintos")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCalculateCune_ErrorSiNilParams(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	_, err := svc.Calculate(nil)
	assert.Error(t, err, "Calculate con nil debe retornar error")
}

func TestCalculateCune_ErrorSiNumNIEVacio(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	p := buildTestParams()
	p.NumNIE = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin NumNIE debe retornar error")
}

func TestCalculateCune_ErrorSiNitVacio(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	p := buildTestParams()
	p.NitNIE = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin NitNIE debe retornar error")
}

func TestCalculateCune_ErrorSiPinVacio(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	p := buildTestParams()
	p.SoftwarePin = ""
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin SoftwarePin debe retornar error")
}

// TestCalculateCune_LongitudHash valida que el hash SHA-384 tenga exactamente
// 96 caracteres hexadecimales (384 bits / 4 bits por nibble = 96 nibbles).
func TestCalculateCune_LongitudHash(t *testing.T) {
	svc := nomina.NewCuneCalculatorService()
	cune, err := svc.Calculate(buildTestParams())
	require.NoError(t, err)
	assert.Len(t, cune, 96, "El CUNE debe tener 96 caracteres hexadecimales (SHA-384)")
}

// ── helper ────────────────────────────────────────────────────────────────────

func buildTestParams() *nomina.CuneParams {
	return &nomina.CuneParams{
		NumNIE:      testNumNIE,
		FecNIE:      testFecNIE,
		HorNIE:      testHorNIE,
		ValDev:      decimal.NewFromFloat(3_500_000),
		ValDed:      decimal.NewFromFloat(280_000),
		ValTol:      decimal.NewFromFloat(3_220_000),
		NitNIE:      testNitNIE,
		DocEmp:      testDocEmp,
		TipoAmb:     testTipoAmb,
		SoftwarePin: testPin,
	}
}
