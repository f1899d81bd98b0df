package dto

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre           string  `json:"nombre" validate:"required,min=1,max=150"`
	Descripcion      *string `json:"descripcion,omitempty" validate:"omitempty,max=1000"`
	Icono            *string `json:"icono,omitempty" validate:"omitempty,max=700"`
	Activo           *bool   `json:"activo,omitempty"` // por defecto true
	CategoriaPadreID *int    `json:"categoria_padre_id,omitempty"`
}

// UpdateCategoriaRequest entrada para actualizar una categoría (todos los campos opcionales).
type UpdateCategoriaRequest struct {
	Nombre           *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=150"`
	Descripcion      *string `json:"descripcion,omitempty" validate:"omitempty,max=1000"`
	Icono            *string `json:"icono,omitempty" validate:"omitempty,max=700"`
	Activo           *bool   `json:"activo,omitempty"`
	CategoriaPadreID *int    `json:"categoria_padre_id,omitempty"`
}

// CategoriaFilter filtros de listado; nil = no enviado (el servidor aplica su valor por defecto).
type CategoriaFilter struct {
	Skip        *int
	Limit       *int
	SoloActivos *bool
	SoloRaiz    *bool
}
