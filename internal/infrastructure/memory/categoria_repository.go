// Package memory implementa los repositorios de catálogo en memoria (tests y DB_DRIVER=memory).
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo categorías en memoria con IDs autoincrementales.
type CategoriaRepo struct {
	mu     sync.RWMutex
	nextID int
	rows   map[int]entity.Categoria

	// onDelete se invoca con el ID borrado (cascada hacia servicio_categorias).
	onDelete func(id int)
}

// NewCategoriaRepository construye un repositorio vacío.
func NewCategoriaRepository() *CategoriaRepo {
	return &CategoriaRepo{nextID: 1, rows: make(map[int]entity.Categoria)}
}

func (r *CategoriaRepo) Create(_ context.Context, c *entity.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nombreEnUso(c.Nombre, 0) {
		return domain.ErrDuplicate
	}
	c.ID = r.nextID
	r.nextID++
	r.rows[c.ID] = plain(*c)
	return nil
}

func (r *CategoriaRepo) GetByID(_ context.Context, id int) (*entity.Categoria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoriaRepo) GetByNombre(_ context.Context, nombre string) (*entity.Categoria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.rows {
		if c.Nombre == nombre {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoriaRepo) Update(_ context.Context, c *entity.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; !ok {
		return nil
	}
	if r.nombreEnUso(c.Nombre, c.ID) {
		return domain.ErrDuplicate
	}
	r.rows[c.ID] = plain(*c)
	return nil
}

func (r *CategoriaRepo) List(_ context.Context, f repository.CategoriaListFilter) ([]*entity.Categoria, error) {
	return page(r.sorted(func(c entity.Categoria) bool {
		return (!f.SoloActivos || c.Activo) && (!f.SoloRaiz || c.CategoriaPadreID == nil)
	}), f.Skip, f.Limit), nil
}

func (r *CategoriaRepo) ListAll(_ context.Context) ([]*entity.Categoria, error) {
	return r.sorted(func(entity.Categoria) bool { return true }), nil
}

func (r *CategoriaRepo) ListByParent(_ context.Context, parentID int) ([]*entity.Categoria, error) {
	return r.sorted(func(c entity.Categoria) bool {
		return c.CategoriaPadreID != nil && *c.CategoriaPadreID == parentID
	}), nil
}

func (r *CategoriaRepo) ListByIDs(_ context.Context, ids []int) ([]*entity.Categoria, error) {
	return r.sorted(func(c entity.Categoria) bool { return slices.Contains(ids, c.ID) }), nil
}

func (r *CategoriaRepo) Count(_ context.Context, soloActivos bool) (int, error) {
	return len(r.sorted(func(c entity.Categoria) bool { return !soloActivos || c.Activo })), nil
}

func (r *CategoriaRepo) CountChildren(ctx context.Context, id int) (int, error) {
	hijas, err := r.ListByParent(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(hijas), nil
}

func (r *CategoriaRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	delete(r.rows, id)
	onDelete := r.onDelete
	r.mu.Unlock()
	if onDelete != nil {
		onDelete(id)
	}
	return nil
}

func (r *CategoriaRepo) nombreEnUso(nombre string, exceptID int) bool {
	for id, c := range r.rows {
		if id != exceptID && c.Nombre == nombre {
			return true
		}
	}
	return false
}

func (r *CategoriaRepo) sorted(keep func(entity.Categoria) bool) []*entity.Categoria {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Categoria, 0, len(r.rows))
	for _, c := range r.rows {
		if keep(c) {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Categoria) int {
		return cmp.Or(cmp.Compare(a.Nombre, b.Nombre), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// plain descarta las relaciones calculadas; se guardan solo las columnas.
func plain(c entity.Categoria) entity.Categoria {
	c.CategoriaPadre = nil
	c.Subcategorias = nil
	return c
}

func page[T any](list []T, skip, limit int) []T {
	if skip >= len(list) {
		return []T{}
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
