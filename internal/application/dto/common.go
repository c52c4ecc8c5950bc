package dto

// Response envoltura estándar de la API: { success, data?, error?, code? }.
// Los errores internos nunca exponen detalle: el handler registra el error
// completo y responde un mensaje genérico.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK construye una respuesta exitosa con datos.
func OK(data interface{}) Response { return Response{Success: true, Data: data} }

// Fail construye una respuesta de error con código de aplicación y mensaje.
func Fail(code, message string) Response {
	return Response{Success: false, Code: code, Error: message}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
