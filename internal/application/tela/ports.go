package tela

import (
	"context"

	"github.com/tht-textil/telas-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repositorios que toca un
// ingreso de lote: la tela y, si el lote entra directo a un almacén, su
// asignación.
type TxRunner interface {
	RunIntake(ctx context.Context, fn func(
		telaRepo repository.TelaRepository,
		almacenTelaRepo repository.AlmacenTelaRepository,
	) error) error
}
