package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ payroll.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPayroll inicia una transacción, ejecuta fn con un PayrollRepository atado
// a la tx y hace Commit o Rollback. Insertar el ajuste y recalcular los
// totales son un solo cambio atómico.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(payrollRepo repository.PayrollRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPayrollRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
