package dto

import "github.com/shopspring/decimal"

// SalidaCorteCreateRequest registro de una salida de tela a corte.
type SalidaCorteCreateRequest struct {
	TelaID        int64           `json:"telaId"`
	ServicioCorte string          `json:"servicioCorte"`
	FechaSalida   string          `json:"fechaSalida"` // YYYY-MM-DD
	NotaSalida    string          `json:"notaSalida"`
	OP            string          `json:"op"`
	SalidaCorte   decimal.Decimal `json:"salidaCorte"`
	AreaDestino   string          `json:"areaDestino"`
}

// ConsumoRealRequest corrección de consumo parcial de una salida.
type ConsumoRealRequest struct {
	ConsumoReal decimal.Decimal `json:"consumoReal"`
	Observacion string          `json:"observacion"`
}

// SalidaCorteFiltroRequest filtros de búsqueda de salidas (primer filtro no
// vacío: op, areaDestino, rango de fechas).
type SalidaCorteFiltroRequest struct {
	OP           string `query:"op"`
	AreaDestino  string `query:"areaDestino"`
	FechaInicio  string `query:"fechaInicio"`
	FechaFin     string `query:"fechaFin"`
	Pagina       int    `query:"pagina"`
	TamanoPagina int    `query:"tamanoPagina"`
}
