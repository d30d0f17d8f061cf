package dto

import "github.com/shopspring/decimal"

// MovimientoCreateRequest registro manual de un movimiento
// (ENTRADA, SALIDA o TRASLADO).
type MovimientoCreateRequest struct {
	TelaID              int64           `json:"telaId"`
	AreaOrigen          string          `json:"areaOrigen"`
	AreaDestino         string          `json:"areaDestino"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	TipoMovimiento      string          `json:"tipoMovimiento"`
	ReferenciaDocumento string          `json:"referenciaDocumento"`
	Observaciones       string          `json:"observaciones"`
}

// AnulacionRequest motivo de anulación de un movimiento o de una salida.
type AnulacionRequest struct {
	Motivo string `json:"motivo"`
}

// MovimientoFiltroRequest filtros de búsqueda de movimientos. Se aplica el
// primer filtro no vacío, en este orden: telaId, tipoMovimiento, areaOrigen,
// areaDestino, rango de fechas, usuarioResponsable, estado.
type MovimientoFiltroRequest struct {
	TelaID             int64  `query:"telaId"`
	TipoMovimiento     string `query:"tipoMovimiento"`
	AreaOrigen         string `query:"areaOrigen"`
	AreaDestino        string `query:"areaDestino"`
	FechaInicio        string `query:"fechaInicio"` // YYYY-MM-DD
	FechaFin           string `query:"fechaFin"`
	UsuarioResponsable string `query:"usuarioResponsable"`
	Estado             string `query:"estado"`
	Pagina             int    `query:"pagina"`
	TamanoPagina       int    `query:"tamanoPagina"`
}
