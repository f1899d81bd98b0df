package ports

import (
	"context"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

// CategoriaGateway acceso remoto a categorías. Cada operación devuelve el snapshot completo que
// confirmó el servidor; los fallos se reportan como *domain.RemoteError.
type CategoriaGateway interface {
	List(ctx context.Context, filter dto.CategoriaFilter) ([]entity.Categoria, error)
	Tree(ctx context.Context, soloActivos bool) ([]entity.CategoriaTree, error)
	Count(ctx context.Context, soloActivos bool) (int, error)
	Get(ctx context.Context, id int) (entity.Categoria, error)
	Subcategorias(ctx context.Context, id int) ([]entity.Categoria, error)
	Create(ctx context.Context, in dto.CreateCategoriaRequest) (entity.Categoria, error)
	Update(ctx context.Context, id int, in dto.UpdateCategoriaRequest) (entity.Categoria, error)
	ToggleActive(ctx context.Context, id int) (entity.Categoria, error)
	Delete(ctx context.Context, id int) error
}

// ServicioGateway acceso remoto a servicios.
type ServicioGateway interface {
	List(ctx context.Context, filter dto.ServicioFilter) ([]entity.Servicio, error)
	Count(ctx context.Context, soloActivos bool) (int, error)
	Get(ctx context.Context, id int) (entity.Servicio, error)
	Create(ctx context.Context, in dto.CreateServicioRequest) (entity.Servicio, error)
	Update(ctx context.Context, id int, in dto.UpdateServicioRequest) (entity.Servicio, error)
	ToggleActive(ctx context.Context, id int) (entity.Servicio, error)
	Delete(ctx context.Context, id int) error
}
