package repository

import (
	"context"

	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

// CategoriaListFilter filtros de listado de categorías. Los resultados se ordenan por nombre.
type CategoriaListFilter struct {
	Skip        int
	Limit       int
	SoloActivos bool
	SoloRaiz    bool
}

// CategoriaRepository define el puerto de persistencia para Categoria (DIP).
// GetByID y GetByNombre devuelven nil, nil si no existe.
type CategoriaRepository interface {
	Create(ctx context.Context, c *entity.Categoria) error
	GetByID(ctx context.Context, id int) (*entity.Categoria, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Categoria, error)
	Update(ctx context.Context, c *entity.Categoria) error
	List(ctx context.Context, f CategoriaListFilter) ([]*entity.Categoria, error)
	// ListAll devuelve todas las categorías ordenadas por nombre; base del árbol.
	ListAll(ctx context.Context) ([]*entity.Categoria, error)
	ListByParent(ctx context.Context, parentID int) ([]*entity.Categoria, error)
	ListByIDs(ctx context.Context, ids []int) ([]*entity.Categoria, error)
	Count(ctx context.Context, soloActivos bool) (int, error)
	CountChildren(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}
