package dto

// ImportacionResultado resumen de una importación masiva desde Excel.
type ImportacionResultado struct {
	LoteID              string   `json:"loteId"`
	TotalRegistros      int      `json:"totalRegistros"`
	RegistrosImportados int      `json:"registrosImportados"`
	RegistrosFallidos   int      `json:"registrosFallidos"`
	Errores             []string `json:"errores"`
}
