package repository

import (
	"time"

	"github.com/tht-textil/telas-api/internal/domain/entity"
)

// SalidaCorteRepository define el puerto de persistencia para salidas a corte.
type SalidaCorteRepository interface {
	Create(salida *entity.SalidaCorte) error
	GetByID(id int64) (*entity.SalidaCorte, error)
	GetByIDForUpdate(id int64) (*entity.SalidaCorte, error)
	Update(salida *entity.SalidaCorte) error

	ListByTela(telaID int64) ([]*entity.SalidaCorte, error)
	ListByOP(op string) ([]*entity.SalidaCorte, error)
	ListByAreaDestino(area string) ([]*entity.SalidaCorte, error)
	ListByFechaSalidaBetween(desde, hasta time.Time) ([]*entity.SalidaCorte, error)
	ListAll() ([]*entity.SalidaCorte, error)
}
