package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

// CategoriaUseCase casos de uso CRUD y árbol para categorías.
type CategoriaUseCase struct {
	repo repository.CategoriaRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(repo repository.CategoriaRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo}
}

// List lista categorías ordenadas por nombre.
func (uc *CategoriaUseCase) List(ctx context.Context, page dto.PageRequest, soloActivos, soloRaiz bool) ([]entity.Categoria, error) {
	list, err := uc.repo.List(ctx, repository.CategoriaListFilter{
		Skip:        page.Skip,
		Limit:       page.Limit,
		SoloActivos: soloActivos,
		SoloRaiz:    soloRaiz,
	})
	if err != nil {
		return nil, err
	}
	return uc.withRelations(ctx, list)
}

// Tree devuelve las categorías raíz (solo activas si soloActivos) con sus descendientes anidados.
func (uc *CategoriaUseCase) Tree(ctx context.Context, soloActivos bool) ([]entity.CategoriaTree, error) {
	all, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(all, soloActivos), nil
}

// Count cuenta categorías.
func (uc *CategoriaUseCase) Count(ctx context.Context, soloActivos bool) (int, error) {
	return uc.repo.Count(ctx, soloActivos)
}

// GetByID obtiene una categoría con su padre y subcategorías.
func (uc *CategoriaUseCase) GetByID(ctx context.Context, id int) (*entity.Categoria, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withRelationsOne(ctx, c)
}

// Subcategorias hijas directas de una categoría existente.
func (uc *CategoriaUseCase) Subcategorias(ctx context.Context, id int) ([]entity.Categoria, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByParent(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withRelations(ctx, list)
}

// Create crea una categoría. El nombre es único y el padre, si viene, debe existir.
func (uc *CategoriaUseCase) Create(ctx context.Context, in dto.CreateCategoriaRequest) (*entity.Categoria, error) {
	if in.Nombre == "" {
		return nil, domain.Invalid("El nombre es requerido")
	}
	if err := uc.checkNombreLibre(ctx, in.Nombre); err != nil {
		return nil, err
	}
	padreID := in.CategoriaPadreID
	if padreID != nil && *padreID == 0 {
		padreID = nil
	}
	if padreID != nil {
		if err := uc.checkPadre(ctx, *padreID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	c := &entity.Categoria{
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		Icono:            in.Icono,
		Activo:           in.Activo == nil || *in.Activo,
		CategoriaPadreID: padreID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nombreDuplicado(in.Nombre)
		}
		return nil, err
	}
	return uc.GetByID(ctx, c.ID)
}

// Update aplica un cambio parcial. categoria_padre_id = 0 convierte la categoría en raíz.
func (uc *CategoriaUseCase) Update(ctx context.Context, id int, in dto.UpdateCategoriaRequest) (*entity.Categoria, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil && *in.Nombre != c.Nombre {
		if *in.Nombre == "" {
			return nil, domain.Invalid("El nombre es requerido")
		}
		if err := uc.checkNombreLibre(ctx, *in.Nombre); err != nil {
			return nil, err
		}
		c.Nombre = *in.Nombre
	}
	if in.CategoriaPadreID != nil {
		switch padreID := *in.CategoriaPadreID; {
		case padreID == 0:
			c.CategoriaPadreID = nil
		case padreID == id:
			return nil, domain.Invalid("Una categoría no puede ser su propia categoría padre")
		default:
			if err := uc.checkPadre(ctx, padreID); err != nil {
				return nil, err
			}
			if err := uc.checkSinCiclo(ctx, id, padreID); err != nil {
				return nil, err
			}
			c.CategoriaPadreID = &padreID
		}
	}
	if in.Descripcion != nil {
		c.Descripcion = in.Descripcion
	}
	if in.Icono != nil {
		c.Icono = in.Icono
	}
	if in.Activo != nil {
		c.Activo = *in.Activo
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, nombreDuplicado(c.Nombre)
		}
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ToggleActive invierte el estado activo.
func (uc *CategoriaUseCase) ToggleActive(ctx context.Context, id int) (*entity.Categoria, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Activo = !c.Activo
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.withRelationsOne(ctx, c)
}

// Delete elimina una categoría sin subcategorías.
func (uc *CategoriaUseCase) Delete(ctx context.Context, id int) error {
	n, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Invalid("No se puede eliminar una categoría que tiene subcategorías")
	}
	if _, err := uc.mustGet(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoriaUseCase) mustGet(ctx context.Context, id int) (*entity.Categoria, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, categoriaNoEncontrada(id)
	}
	return c, nil
}

func (uc *CategoriaUseCase) checkNombreLibre(ctx context.Context, nombre string) error {
	existente, err := uc.repo.GetByNombre(ctx, nombre)
	if err != nil {
		return err
	}
	if existente != nil {
		return nombreDuplicado(nombre)
	}
	return nil
}

func (uc *CategoriaUseCase) checkPadre(ctx context.Context, padreID int) error {
	padre, err := uc.repo.GetByID(ctx, padreID)
	if err != nil {
		return err
	}
	if padre == nil {
		return domain.Invalid("Categoría padre con ID %d no encontrada", padreID)
	}
	return nil
}

// checkSinCiclo sube por los ancestros de padreID; si aparece id, el cambio cerraría un ciclo.
// El recorrido se corta tras tantos pasos como filas haya.
func (uc *CategoriaUseCase) checkSinCiclo(ctx context.Context, id, padreID int) error {
	total, err := uc.repo.Count(ctx, false)
	if err != nil {
		return err
	}
	actual := padreID
	for range total {
		if actual == id {
			return domain.Invalid("Una categoría no puede ser descendiente de sí misma")
		}
		c, err := uc.repo.GetByID(ctx, actual)
		if err != nil {
			return err
		}
		if c == nil || c.CategoriaPadreID == nil {
			return nil
		}
		actual = *c.CategoriaPadreID
	}
	return nil
}

func (uc *CategoriaUseCase) withRelations(ctx context.Context, list []*entity.Categoria) ([]entity.Categoria, error) {
	out := make([]entity.Categoria, 0, len(list))
	for _, c := range list {
		full, err := uc.withRelationsOne(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *full)
	}
	return out, nil
}

// withRelationsOne completa categoria_padre y subcategorias.
func (uc *CategoriaUseCase) withRelationsOne(ctx context.Context, c *entity.Categoria) (*entity.Categoria, error) {
	out := *c
	out.CategoriaPadre = nil
	if c.CategoriaPadreID != nil {
		padre, err := uc.repo.GetByID(ctx, *c.CategoriaPadreID)
		if err != nil {
			return nil, err
		}
		if padre != nil {
			s := padre.Simple()
			out.CategoriaPadre = &s
		}
	}
	hijas, err := uc.repo.ListByParent(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out.Subcategorias = make([]entity.CategoriaSimple, 0, len(hijas))
	for _, h := range hijas {
		out.Subcategorias = append(out.Subcategorias, h.Simple())
	}
	return &out, nil
}

// BuildTree arma el árbol a partir de la lista plana (ordenada por nombre). Solo las raíces se
// filtran por activo. Un nodo que ya está en el camino actual no se vuelve a visitar, así que un
// ciclo en categoria_padre_id no produce recursión infinita.
func BuildTree(all []*entity.Categoria, soloActivos bool) []entity.CategoriaTree {
	hijos := make(map[int][]*entity.Categoria, len(all))
	var raices []*entity.Categoria
	for _, c := range all {
		if c.CategoriaPadreID == nil {
			if !soloActivos || c.Activo {
				raices = append(raices, c)
			}
			continue
		}
		hijos[*c.CategoriaPadreID] = append(hijos[*c.CategoriaPadreID], c)
	}

	enCamino := make(map[int]bool)
	var nodo func(c *entity.Categoria) entity.CategoriaTree
	nodo = func(c *entity.Categoria) entity.CategoriaTree {
		enCamino[c.ID] = true
		defer delete(enCamino, c.ID)

		t := entity.CategoriaTree{
			ID:            c.ID,
			Nombre:        c.Nombre,
			Icono:         c.Icono,
			Activo:        c.Activo,
			Descripcion:   c.Descripcion,
			Subcategorias: []entity.CategoriaTree{},
		}
		for _, h := range hijos[c.ID] {
			if enCamino[h.ID] {
				continue
			}
			t.Subcategorias = append(t.Subcategorias, nodo(h))
		}
		return t
	}

	out := make([]entity.CategoriaTree, 0, len(raices))
	for _, r := range raices {
		out = append(out, nodo(r))
	}
	return out
}

func categoriaNoEncontrada(id int) error {
	return domain.NotFound("Categoría con ID %d no encontrada", id)
}

func nombreDuplicado(nombre string) error {
	return &domain.DetailError{
		Kind:   domain.ErrDuplicate,
		Detail: "Ya existe una categoría con el nombre '" + nombre + "'",
	}
}
