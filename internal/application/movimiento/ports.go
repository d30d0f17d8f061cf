package movimiento

import (
	"context"

	"github.com/tht-textil/telas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa transacción. Cada operación lógica del motor (registro o
// anulación de un movimiento) es una unidad atómica: o se escriben la tela y
// el ledger juntos, o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		telaRepo repository.TelaRepository,
		movRepo repository.MovimientoTelaRepository,
	) error) error
}
