package repository

import (
	"context"

	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

// ServicioListFilter filtros de listado de servicios. CategoriaID 0 = sin filtro.
type ServicioListFilter struct {
	Skip        int
	Limit       int
	SoloActivos bool
	CategoriaID int
}

// ServicioRepository puerto de persistencia para Servicio y su relación N:N con categorías.
// Las lecturas devuelven el servicio con Categorias ya resuelto.
type ServicioRepository interface {
	Create(ctx context.Context, s *entity.Servicio) error
	GetByID(ctx context.Context, id int) (*entity.Servicio, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Servicio, error)
	Update(ctx context.Context, s *entity.Servicio) error
	// ReplaceCategorias reemplaza el conjunto completo de categorías vinculadas.
	ReplaceCategorias(ctx context.Context, servicioID int, categoriaIDs []int) error
	List(ctx context.Context, f ServicioListFilter) ([]*entity.Servicio, error)
	Count(ctx context.Context, soloActivos bool) (int, error)
	Delete(ctx context.Context, id int) error
}
