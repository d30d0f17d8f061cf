package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoMovimiento es el conjunto cerrado de tipos de movimiento del kardex.
// Los switches sobre este tipo deben ser exhaustivos: un tipo desconocido es
// un error de entrada, nunca se ignora en silencio.
type TipoMovimiento string

const (
	MovimientoEntrada            TipoMovimiento = "ENTRADA"
	MovimientoSalida             TipoMovimiento = "SALIDA"
	MovimientoTraslado           TipoMovimiento = "TRASLADO"
	MovimientoDevolucionSobrante TipoMovimiento = "DEVOLUCION_SOBRANTE"
	MovimientoAnulacionEntrada   TipoMovimiento = "ANULACION_ENTRADA"
	MovimientoAnulacionSalida    TipoMovimiento = "ANULACION_SALIDA"
	MovimientoAnulacionTraslado  TipoMovimiento = "ANULACION_TRASLADO"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t TipoMovimiento) Valid() bool {
	switch t {
	case MovimientoEntrada, MovimientoSalida, MovimientoTraslado,
		MovimientoDevolucionSobrante,
		MovimientoAnulacionEntrada, MovimientoAnulacionSalida, MovimientoAnulacionTraslado:
		return true
	}
	return false
}

// EsAnulacion indica si el tipo es una entrada compensatoria.
func (t TipoMovimiento) EsAnulacion() bool {
	switch t {
	case MovimientoAnulacionEntrada, MovimientoAnulacionSalida, MovimientoAnulacionTraslado:
		return true
	}
	return false
}

// Anulacion devuelve el tipo compensatorio de un tipo base y true, o false si
// el tipo no admite anulación (devoluciones y anulaciones no se anulan).
func (t TipoMovimiento) Anulacion() (TipoMovimiento, bool) {
	switch t {
	case MovimientoEntrada:
		return MovimientoAnulacionEntrada, true
	case MovimientoSalida:
		return MovimientoAnulacionSalida, true
	case MovimientoTraslado:
		return MovimientoAnulacionTraslado, true
	}
	return "", false
}

// Estados de un movimiento. El ledger es append-only: la única mutación
// permitida tras crearse es pasar de COMPLETADO a ANULADO.
const (
	MovimientoEstadoCompletado = "COMPLETADO"
	MovimientoEstadoAnulado    = "ANULADO"
)

// MovimientoTela es una entrada del ledger de movimientos de stock.
type MovimientoTela struct {
	ID                  int64           `db:"id"`
	TelaID              int64           `db:"tela_id"`
	AreaOrigen          string          `db:"area_origen"`
	AreaDestino         string          `db:"area_destino"`
	Cantidad            decimal.Decimal `db:"cantidad"`
	FechaMovimiento     time.Time       `db:"fecha_movimiento"`
	Tipo                TipoMovimiento  `db:"tipo"`
	ReferenciaDocumento string          `db:"referencia_documento"`
	UsuarioResponsable  string          `db:"usuario_responsable"`
	Estado              string          `db:"estado"`
	Observaciones       string          `db:"observaciones"`

	// Tela enriquece las consultas; no se persiste con el movimiento.
	Tela *Tela `db:"-"`
}
