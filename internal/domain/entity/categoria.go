package entity

import "time"

// CategoriaSimple resumen desnormalizado de una categoría (padre, subcategorías, categorías de un servicio).
// Es una copia por valor: nunca se usa para modificar la categoría que resume.
type CategoriaSimple struct {
	ID     int     `json:"id"`
	Nombre string  `json:"nombre"`
	Icono  *string `json:"icono"`
	Activo bool    `json:"activo"`
}

// Categoria representa una categoría de servicios (jerárquica opcional).
type Categoria struct {
	ID               int               `json:"id"`
	Nombre           string            `json:"nombre"`
	Descripcion      *string           `json:"descripcion"`
	Icono            *string           `json:"icono"`
	Activo           bool              `json:"activo"`
	CategoriaPadreID *int              `json:"categoria_padre_id"` // nil si es raíz
	CategoriaPadre   *CategoriaSimple  `json:"categoria_padre"`
	Subcategorias    []CategoriaSimple `json:"subcategorias"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// GetID identidad estable asignada por el servidor.
func (c Categoria) GetID() int { return c.ID }

// IsActive último valor confirmado de activo.
func (c Categoria) IsActive() bool { return c.Activo }

// EsRaiz indica si la categoría no tiene padre.
func (c Categoria) EsRaiz() bool { return c.CategoriaPadreID == nil }

// Simple devuelve el resumen de la categoría.
func (c Categoria) Simple() CategoriaSimple {
	return CategoriaSimple{ID: c.ID, Nombre: c.Nombre, Icono: c.Icono, Activo: c.Activo}
}

// CategoriaTree nodo del árbol jerárquico de categorías, armado en el servidor.
type CategoriaTree struct {
	ID            int             `json:"id"`
	Nombre        string          `json:"nombre"`
	Icono         *string         `json:"icono"`
	Activo        bool            `json:"activo"`
	Descripcion   *string         `json:"descripcion"`
	Subcategorias []CategoriaTree `json:"subcategorias"`
}
