package nomina

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// CompressXMLToZip empaqueta el XML firmado en un archivo ZIP en memoria.
// La DIAN exige que el ZIP contenga un único archivo con el nombre:
//
//	{NIT_EMPLEADOR}{NUMERO_DOCUMENTO}.xml  (sin guiones ni espacios)
//
// Devuelve los bytes del ZIP listo para enviar al WS DIAN.
func CompressXMLToZip(xmlBytes []byte, xmlFilename string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.Create(xmlFilename)
	if err != nil {
		return nil, fmt.Errorf("zip: crear entrada %s: %w", xmlFilename, err)
	}
	if _, err := fw.Write(xmlBytes); err != nil {
		return nil, fmt.Errorf("zip: escribir XML: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

var nonDigit = regexp.MustCompile(`[^0-9]`)

// NominaFilenames genera los nombres de archivo requeridos por la DIAN para el
// ZIP y el XML interno. Formato: {NIT_EMPLEADOR}{NUMERO}  (solo dígitos del NIT, sin DV).
// Ejemplo: 900123456NE00000001
func NominaFilenames(company *entity.Company, record *entity.PayrollRecord) (xmlName, zipName string) {
	nit := nonDigit.ReplaceAllString(company.NIT, "")
	if len(nit) > 9 {
		nit = nit[:9] // quitar dígito de verificación
	}
	base := nit + record.DocumentNumber
	return base + ".xml", base + ".zip"
}
