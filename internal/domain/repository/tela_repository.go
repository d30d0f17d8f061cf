package repository

import (
	"time"

	"github.com/tht-textil/telas-api/internal/domain/entity"
)

// TelaRepository define el puerto de persistencia para telas.
// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción: es la serialización por lote que evita lost
// updates entre operaciones concurrentes sobre la misma tela.
type TelaRepository interface {
	Create(tela *entity.Tela) error
	GetByID(id int64) (*entity.Tela, error)
	GetByIDForUpdate(id int64) (*entity.Tela, error)
	Update(tela *entity.Tela) error
	List(limit, offset int) ([]*entity.Tela, error)
	ListAll() ([]*entity.Tela, error)
	ListByFechaIngresoBetween(desde, hasta time.Time) ([]*entity.Tela, error)
	Count() (int64, error)
}
