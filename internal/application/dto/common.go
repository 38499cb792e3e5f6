package dto

// Estados por tópico: cada bloque de análisis responde de forma independiente.
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateRangeDTO rango de fechas resuelto de la consulta.
type DateRangeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// WarningDTO advertencia estructurada sobre la calidad de los datos.
// Items lista los ítems afectados (acotada a 10).
type WarningDTO struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Items   []string `json:"items,omitempty"`
}
