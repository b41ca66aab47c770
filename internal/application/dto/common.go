package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta informativa (operaciones sin cuerpo de datos).
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination parámetros de paginación por query string.
type Pagination struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize acota los valores a rangos razonables.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
