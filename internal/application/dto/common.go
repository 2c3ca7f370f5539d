package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta informativa sin datos (ej. búsqueda sin coincidencias).
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
