package dto

// Límites de paginación de la API (skip/limit).
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// PageRequest paginación para listados.
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=1,max=500"`
}

// Valid indica si skip/limit están dentro de los rangos permitidos.
func (p PageRequest) Valid() bool {
	return p.Skip >= 0 && p.Limit >= 1 && p.Limit <= MaxLimit
}

// CountResponse cuerpo de /count.
type CountResponse struct {
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP. Detail es el mensaje mostrado al usuario.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// SelectorOption opción para un selector de UI (valor, etiqueta, deshabilitado).
type SelectorOption struct {
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Ptr devuelve un puntero a v; útil para armar filtros y payloads parciales.
func Ptr[T any](v T) *T { return &v }
