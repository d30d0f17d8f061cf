package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoAlmacenTela estado de una asignación tela-almacén.
type EstadoAlmacenTela string

const (
	AlmacenTelaActivo    EstadoAlmacenTela = "ACTIVO"
	AlmacenTelaConsumido EstadoAlmacenTela = "CONSUMIDO"
)

// AlmacenTela es el peso de una tela asignado a un almacén concreto.
// Por cada par (almacén, tela) hay a lo sumo una fila ACTIVO; cuando el peso
// llega exactamente a cero la fila pasa a CONSUMIDO y un traslado posterior
// hacia ese almacén crea una fila ACTIVO nueva.
//
// Este registro de pesos es independiente del ledger de MovimientoTela:
// las transferencias entre almacenes NO generan movimientos.
type AlmacenTela struct {
	ID              int64             `db:"id"`
	AlmacenID       int64             `db:"almacen_id"`
	TelaID          int64             `db:"tela_id"`
	Peso            decimal.Decimal   `db:"peso"`
	FechaAsignacion time.Time         `db:"fecha_asignacion"`
	Estado          EstadoAlmacenTela `db:"estado"`

	Tela *Tela `db:"-"`
}
