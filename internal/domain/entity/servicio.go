package entity

import "time"

// Servicio representa un servicio ofrecido, vinculado N:N a categorías.
// Categorias es solo modelo de lectura: lo resuelve el servidor a partir de categoria_ids.
type Servicio struct {
	ID          int               `json:"id"`
	Nombre      string            `json:"nombre"`
	Descripcion *string           `json:"descripcion"`
	Activo      bool              `json:"activo"`
	Categorias  []CategoriaSimple `json:"categorias"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// GetID identidad estable asignada por el servidor.
func (s Servicio) GetID() int { return s.ID }

// IsActive último valor confirmado de activo.
func (s Servicio) IsActive() bool { return s.Activo }

