package payroll

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TxRunner ejecuta una función con un PayrollRepository ligado a una transacción.
// Insertar el ajuste y recalcular los totales de la nómina ocurren en la misma
// transacción: o se persisten ambos o ninguno.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(payrollRepo repository.PayrollRepository) error) error
}

// ElectronicPayrollConfig configuración del ciclo de nómina electrónica para el
// caso de uso (PIN de software, ambiente y rutas de certificado).
type ElectronicPayrollConfig struct {
	SoftwareID   string
	SoftwarePin  string
	Environment  string // "1" = Producción, "2" = Pruebas
	AppEnv       string // dev|test|prod
	Prefix       string
	CertPath     string
	CertKeyPath  string
	CertPassword string
}
