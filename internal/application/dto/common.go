package dto

// PageRequest paginación para listados (página base cero).
type PageRequest struct {
	Pagina       int `query:"pagina"`
	TamanoPagina int `query:"tamanoPagina"`
}

// DefaultPage aplica valores por defecto si faltan.
func (p *PageRequest) DefaultPage() {
	if p.TamanoPagina <= 0 {
		p.TamanoPagina = 20
	}
	if p.Pagina < 0 {
		p.Pagina = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
