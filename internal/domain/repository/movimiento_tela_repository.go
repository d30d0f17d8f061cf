package repository

import (
	"time"

	"github.com/tht-textil/telas-api/internal/domain/entity"
)

// MovimientoTelaRepository define el puerto de persistencia del ledger de
// movimientos. El ledger es append-only: no hay Update general, solo
// UpdateEstado para marcar un movimiento como ANULADO al compensarlo.
type MovimientoTelaRepository interface {
	Create(mov *entity.MovimientoTela) error
	GetByID(id int64) (*entity.MovimientoTela, error)
	GetByIDForUpdate(id int64) (*entity.MovimientoTela, error)
	UpdateEstado(id int64, estado string) error

	ListByTela(telaID int64) ([]*entity.MovimientoTela, error)
	ListByReferencia(referenciaDocumento string) ([]*entity.MovimientoTela, error)
	ListByTipo(tipo entity.TipoMovimiento) ([]*entity.MovimientoTela, error)
	ListByAreaOrigen(area string) ([]*entity.MovimientoTela, error)
	ListByAreaDestino(area string) ([]*entity.MovimientoTela, error)
	ListByFechaBetween(desde, hasta time.Time) ([]*entity.MovimientoTela, error)
	ListByUsuario(usuario string) ([]*entity.MovimientoTela, error)
	ListByEstado(estado string) ([]*entity.MovimientoTela, error)
	ListAll() ([]*entity.MovimientoTela, error)
	ListRecent(n int) ([]*entity.MovimientoTela, error)
	Count() (int64, error)
	CountByTipo() (map[entity.TipoMovimiento]int64, error)
}
