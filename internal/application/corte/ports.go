package corte

import (
	"context"

	"github.com/tht-textil/telas-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los tres repositorios que toca
// una salida a corte: la tela, su ledger de movimientos y la salida misma.
type TxRunner interface {
	RunCorte(ctx context.Context, fn func(
		telaRepo repository.TelaRepository,
		movRepo repository.MovimientoTelaRepository,
		salidaRepo repository.SalidaCorteRepository,
	) error) error
}
