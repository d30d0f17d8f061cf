package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tht-textil/telas-api/internal/domain"
)

// Estados de una tela.
const (
	TelaEstadoActivo   = "ACTIVO"
	TelaEstadoInactivo = "INACTIVO"
)

// Tela representa un lote físico de tela: los datos descriptivos del ingreso
// (guía, partida, proveedor, cliente...) más las dos cantidades de stock.
// PesoIngresado y StockReal se mueven siempre en conjunto: toda mutación pasa
// por IncreaseStock/DecreaseStock.
type Tela struct {
	ID                  int64           `db:"id"`
	NumGuia             string          `db:"num_guia"`
	Partida             string          `db:"partida"`
	OS                  string          `db:"os"`
	Proveedor           string          `db:"proveedor"`
	FechaIngreso        *time.Time      `db:"fecha_ingreso"`
	Cliente             string          `db:"cliente"`
	Marca               string          `db:"marca"`
	OP                  string          `db:"op"`
	TipoTela            string          `db:"tipo_tela"`
	Descripcion         string          `db:"descripcion"`
	Ench                string          `db:"ench"`
	CantRollosIngresado int             `db:"cant_rollos_ingresado"`
	PesoIngresado       decimal.Decimal `db:"peso_ingresado"`
	StockReal           decimal.Decimal `db:"stock_real"`
	Estado              string          `db:"estado"`
	Almacen             string          `db:"almacen"`
	FechaRegistro       time.Time       `db:"fecha_registro"`
	FechaActualizacion  time.Time       `db:"fecha_actualizacion"`
}

// IncreaseStock suma la cantidad a PesoIngresado y StockReal.
func (t *Tela) IncreaseStock(cantidad decimal.Decimal) error {
	if !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	t.PesoIngresado = t.PesoIngresado.Add(cantidad)
	t.StockReal = t.StockReal.Add(cantidad)
	return nil
}

// DecreaseStock resta la cantidad de PesoIngresado y StockReal.
// Falla con ErrInsufficientStock si alguno de los dos quedaría negativo;
// en ese caso no muta nada.
func (t *Tela) DecreaseStock(cantidad decimal.Decimal) error {
	if !cantidad.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if t.StockReal.LessThan(cantidad) || t.PesoIngresado.LessThan(cantidad) {
		return domain.ErrInsufficientStock
	}
	t.PesoIngresado = t.PesoIngresado.Sub(cantidad)
	t.StockReal = t.StockReal.Sub(cantidad)
	return nil
}
