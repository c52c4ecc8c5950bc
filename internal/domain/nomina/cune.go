// Package nomina: cálculo del CUNE (Código Único de Nómina Electrónica) según el
// Anexo Técnico de Nómina Electrónica DIAN 1.0.
// Algoritmo: SHA-384. Fórmula de concatenación en el orden estricto definido por la DIAN.

package nomina

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// TipoXML para el Documento Soporte de Pago de Nómina Electrónica individual.
const TipoXMLNominaIndividual = "102"

// CuneParams contiene los datos para calcular el CUNE en el orden exigido por la DIAN.
type CuneParams struct {
	NumNIE      string          // Número del documento (prefijo + consecutivo, sin espacios)
	FecNIE      string          // Fecha de generación YYYY-MM-DD
	HorNIE      string          // Hora de generación HH:MM:SS-05:00
	ValDev      decimal.Decimal // Valor total devengados (gross)
	ValDed      decimal.Decimal // Valor total deducciones
	ValTol      decimal.Decimal // Valor total del comprobante (neto)
	NitNIE      string          // NIT del empleador (solo dígitos)
	DocEmp      string          // Documento de identidad del trabajador (solo dígitos)
	TipoAmb     string          // '1' = Producción, '2' = Pruebas
	SoftwarePin string          // PIN del software registrado ante la DIAN
}

// CuneCalculatorService calcula el CUNE según el Anexo Técnico 1.0.
type CuneCalculatorService struct{}

// NewCuneCalculatorService crea el servicio.
func NewCuneCalculatorService() *CuneCalculatorService {
	return &CuneCalculatorService{}
}

// Calculate genera el CUNE (hash hexadecimal) a partir de los parámetros.
// Fórmula (sin separadores): NumNIE + FecNIE + HorNIE + ValDev + ValDed + ValTol + NitNIE + DocEmp + TipoXML + TipoAmb + SoftwarePin
// Algoritmo: SHA-384. Montos sin separador de miles, con punto decimal (ej: 1500.00).
func (s *CuneCalculatorService) Calculate(p *CuneParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("nomina: CuneParams es obligatorio")
	}

	numNIE := regexp.MustCompile(`\s+`).ReplaceAllString(strings.TrimSpace(p.NumNIE), "")
	if numNIE == "" {
		return "", fmt.Errorf("nomina: NumNIE es obligatorio")
	}
	if p.FecNIE == "" {
		return "", fmt.Errorf("nomina: FecNIE es obligatorio (YYYY-MM-DD)")
	}
	if p.HorNIE == "" {
		return "", fmt.Errorf("nomina: HorNIE es obligatorio (HH:MM:SS-05:00)")
	}

	nitNIE := onlyDigits(p.NitNIE)
	docEmp := onlyDigits(p.DocEmp)
	if nitNIE == "" {
		return "", fmt.Errorf("nomina: NitNIE es obligatorio para el CUNE")
	}
	if docEmp == "" {
		return "", fmt.Errorf("nomina: DocEmp es obligatorio para el CUNE")
	}
	if p.SoftwarePin == "" {
		return "", fmt.Errorf("nomina: SoftwarePin es obligatorio para el CUNE")
	}
	tipoAmb := p.TipoAmb
	if tipoAmb == "" {
		tipoAmb = "1"
	}

	// Orden estricto DIAN (sin separadores)
	cadena := numNIE +
		p.FecNIE +
		p.HorNIE +
		formatAmount(p.ValDev) +
		formatAmount(p.ValDed) +
		formatAmount(p.ValTol) +
		nitNIE +
		docEmp +
		TipoXMLNominaIndividual +
		tipoAmb +
		p.SoftwarePin

	hash := sha512.Sum384([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// formatAmount formatea montos para la cadena CUNE: sin separador de miles, punto decimal, 2 decimales (ej: 1500.00).
func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// onlyDigits deja solo dígitos 0-9 (para NIT y documento).
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
