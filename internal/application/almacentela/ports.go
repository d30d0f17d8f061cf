package almacentela

import (
	"context"

	"github.com/tht-textil/telas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de
// asignaciones atado a ella. Los traslados entre almacenes tocan dos filas
// (origen y destino) y deben confirmarse como una unidad.
type TxRunner interface {
	RunTransferencia(ctx context.Context, fn func(
		almacenTelaRepo repository.AlmacenTelaRepository,
	) error) error
}
