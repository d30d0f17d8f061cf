package dto

import "github.com/shopspring/decimal"

// TelaCreateRequest ingreso manual de una tela. StockReal inicia igual al
// peso ingresado.
type TelaCreateRequest struct {
	NumGuia             string          `json:"numGuia"`
	Partida             string          `json:"partida"`
	OS                  string          `json:"os"`
	Proveedor           string          `json:"proveedor"`
	FechaIngreso        string          `json:"fechaIngreso"` // YYYY-MM-DD
	Cliente             string          `json:"cliente"`
	Marca               string          `json:"marca"`
	OP                  string          `json:"op"`
	TipoTela            string          `json:"tipoTela"`
	Descripcion         string          `json:"descripcion"`
	Ench                string          `json:"ench"`
	CantRollosIngresado int             `json:"cantRollosIngresado"`
	PesoIngresado       decimal.Decimal `json:"pesoIngresado"`
	Almacen             string          `json:"almacen"`
}

// TelaBusquedaRequest búsqueda de lotes por texto libre (sin distinguir
// mayúsculas ni tildes), estado y rango de fecha de ingreso.
type TelaBusquedaRequest struct {
	Texto        string `query:"texto"`
	Estado       string `query:"estado"`
	FechaInicio  string `query:"fechaInicio"` // YYYY-MM-DD
	FechaFin     string `query:"fechaFin"`
	Pagina       int    `query:"pagina"`
	TamanoPagina int    `query:"tamanoPagina"`
}
