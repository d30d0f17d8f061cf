package dto

import "github.com/shopspring/decimal"

// AsignacionRequest asigna una tela a un almacén con un peso inicial.
type AsignacionRequest struct {
	TelaID int64           `json:"telaId"`
	Peso   decimal.Decimal `json:"peso"`
}

// PesoRequest nuevo peso de una asignación (sobrescribe, sin ledger).
type PesoRequest struct {
	Peso decimal.Decimal `json:"peso"`
}

// TransferenciaRequest traslado de peso entre almacenes.
type TransferenciaRequest struct {
	AlmacenOrigenID  int64           `json:"almacenOrigenId"`
	AlmacenDestinoID int64           `json:"almacenDestinoId"`
	TelaID           int64           `json:"telaId"`
	Peso             decimal.Decimal `json:"peso"`
}

// AlmacenTelaBusquedaRequest búsqueda de asignaciones dentro de un almacén.
type AlmacenTelaBusquedaRequest struct {
	Termino      string `query:"termino"`
	Campo        string `query:"campo"`
	OrdenCampo   string `query:"ordenCampo"`
	OrdenDir     string `query:"ordenDir"`
	Pagina       int    `query:"pagina"`
	TamanoPagina int    `query:"tamanoPagina"`
}

// AlmacenCreateRequest alta de un almacén.
type AlmacenCreateRequest struct {
	CodigoAlmacen int    `json:"codigoAlmacen"`
	NombreAlmacen string `json:"nombreAlmacen"`
	Abreviatura   string `json:"abreviatura"`
	Descripcion   string `json:"descripcion"`
	TipoAlmacen   string `json:"tipoAlmacen"`
	Local         string `json:"local"`
}
