package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tht-textil/telas-api/internal/application/almacentela"
	"github.com/tht-textil/telas-api/internal/application/corte"
	"github.com/tht-textil/telas-api/internal/application/importacion"
	"github.com/tht-textil/telas-api/internal/application/movimiento"
	"github.com/tht-textil/telas-api/internal/application/tela"
	"github.com/tht-textil/telas-api/internal/domain/repository"
)

var _ movimiento.TxRunner = (*TxRunner)(nil)
var _ corte.TxRunner = (*TxRunner)(nil)
var _ almacentela.TxRunner = (*TxRunner)(nil)
var _ tela.TxRunner = (*TxRunner)(nil)
var _ importacion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de tela y movimientos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	telaRepo repository.TelaRepository,
	movRepo repository.MovimientoTelaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTelaRepository(tx), NewMovimientoTelaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCorte inicia una transacción con los tres repos de una salida a corte.
func (r *TxRunner) RunCorte(ctx context.Context, fn func(
	telaRepo repository.TelaRepository,
	movRepo repository.MovimientoTelaRepository,
	salidaRepo repository.SalidaCorteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTelaRepository(tx), NewMovimientoTelaRepository(tx), NewSalidaCorteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTransferencia inicia una transacción con el repo de asignaciones.
func (r *TxRunner) RunTransferencia(ctx context.Context, fn func(
	almacenTelaRepo repository.AlmacenTelaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAlmacenTelaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIntake inicia una transacción con los repos de un ingreso de lote.
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	telaRepo repository.TelaRepository,
	almacenTelaRepo repository.AlmacenTelaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTelaRepository(tx), NewAlmacenTelaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
