package nomina

import (
	"crypto/tls"
	"fmt"
)

// LoadCertFromPEM carga un certificado y llave privada desde archivos PEM.
// Si keyPath está vacío se asume que certPath contiene cert+key en un solo PEM.
func LoadCertFromPEM(certPath, keyPath string) (tls.Certificate, error) {
	if keyPath == "" {
		return tls.LoadX509KeyPair(certPath, certPath)
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("cargar certificado de firma: %w", err)
	}
	return cert, nil
}
