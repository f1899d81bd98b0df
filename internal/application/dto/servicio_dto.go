package dto

// CreateServicioRequest entrada para crear un servicio.
type CreateServicioRequest struct {
	Nombre       string  `json:"nombre" validate:"required,min=1,max=300"`
	Descripcion  *string `json:"descripcion,omitempty"`
	Activo       *bool   `json:"activo,omitempty"` // por defecto true
	CategoriaIDs []int   `json:"categoria_ids"`
}

// UpdateServicioRequest entrada para actualizar un servicio.
// CategoriaIDs, si viene, es el conjunto completo que reemplaza las categorías actuales.
type UpdateServicioRequest struct {
	Nombre       *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=300"`
	Descripcion  *string `json:"descripcion,omitempty"`
	Activo       *bool   `json:"activo,omitempty"`
	CategoriaIDs *[]int  `json:"categoria_ids,omitempty"`
}

// ServicioFilter filtros de listado; nil = no enviado.
type ServicioFilter struct {
	Skip        *int
	Limit       *int
	SoloActivos *bool
	CategoriaID *int
}
