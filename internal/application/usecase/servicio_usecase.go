package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
)

// ServicioUseCase casos de uso CRUD para servicios y su vínculo con categorías.
type ServicioUseCase struct {
	repo       repository.ServicioRepository
	categorias repository.CategoriaRepository
	tx         ports.TxRunner
}

// NewServicioUseCase construye el caso de uso.
func NewServicioUseCase(repo repository.ServicioRepository, categorias repository.CategoriaRepository, tx ports.TxRunner) *ServicioUseCase {
	return &ServicioUseCase{repo: repo, categorias: categorias, tx: tx}
}

// List lista servicios ordenados por nombre. categoriaID 0 = sin filtro.
func (uc *ServicioUseCase) List(ctx context.Context, page dto.PageRequest, soloActivos bool, categoriaID int) ([]entity.Servicio, error) {
	list, err := uc.repo.List(ctx, repository.ServicioListFilter{
		Skip:        page.Skip,
		Limit:       page.Limit,
		SoloActivos: soloActivos,
		CategoriaID: categoriaID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.Servicio, 0, len(list))
	for _, s := range list {
		out = append(out, *s)
	}
	return out, nil
}

// Count cuenta servicios.
func (uc *ServicioUseCase) Count(ctx context.Context, soloActivos bool) (int, error) {
	return uc.repo.Count(ctx, soloActivos)
}

// GetByID obtiene un servicio con sus categorías.
func (uc *ServicioUseCase) GetByID(ctx context.Context, id int) (*entity.Servicio, error) {
	return uc.mustGet(ctx, id)
}

// Create crea un servicio y lo vincula a las categorías indicadas en una sola transacción.
func (uc *ServicioUseCase) Create(ctx context.Context, in dto.CreateServicioRequest) (*entity.Servicio, error) {
	if in.Nombre == "" {
		return nil, domain.Invalid("El nombre es requerido")
	}
	if err := uc.checkNombreLibre(ctx, in.Nombre); err != nil {
		return nil, err
	}
	ids, err := uc.checkCategorias(ctx, in.CategoriaIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &entity.Servicio{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Activo:      in.Activo == nil || *in.Activo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunServicio(ctx, func(servicios repository.ServicioRepository) error {
		if err := servicios.Create(ctx, s); err != nil {
			return err
		}
		return servicios.ReplaceCategorias(ctx, s.ID, ids)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, servicioDuplicado(in.Nombre)
		}
		return nil, err
	}
	return uc.mustGet(ctx, s.ID)
}

// Update aplica un cambio parcial. Si viene categoria_ids, reemplaza el conjunto completo.
func (uc *ServicioUseCase) Update(ctx context.Context, id int, in dto.UpdateServicioRequest) (*entity.Servicio, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil && *in.Nombre != s.Nombre {
		if *in.Nombre == "" {
			return nil, domain.Invalid("El nombre es requerido")
		}
		if err := uc.checkNombreLibre(ctx, *in.Nombre); err != nil {
			return nil, err
		}
		s.Nombre = *in.Nombre
	}
	var ids []int
	if in.CategoriaIDs != nil {
		if ids, err = uc.checkCategorias(ctx, *in.CategoriaIDs); err != nil {
			return nil, err
		}
	}
	if in.Descripcion != nil {
		s.Descripcion = in.Descripcion
	}
	if in.Activo != nil {
		s.Activo = *in.Activo
	}
	s.UpdatedAt = time.Now()

	err = uc.tx.RunServicio(ctx, func(servicios repository.ServicioRepository) error {
		if err := servicios.Update(ctx, s); err != nil {
			return err
		}
		if in.CategoriaIDs == nil {
			return nil
		}
		return servicios.ReplaceCategorias(ctx, id, ids)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, servicioDuplicado(s.Nombre)
		}
		return nil, err
	}
	return uc.mustGet(ctx, id)
}

// ToggleActive invierte el estado activo.
func (uc *ServicioUseCase) ToggleActive(ctx context.Context, id int) (*entity.Servicio, error) {
	s, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Activo = !s.Activo
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return uc.mustGet(ctx, id)
}

// Delete elimina un servicio; sus vínculos se borran en cascada.
func (uc *ServicioUseCase) Delete(ctx context.Context, id int) error {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ServicioUseCase) mustGet(ctx context.Context, id int) (*entity.Servicio, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("Servicio con ID %d no encontrado", id)
	}
	return s, nil
}

func (uc *ServicioUseCase) checkNombreLibre(ctx context.Context, nombre string) error {
	existente, err := uc.repo.GetByNombre(ctx, nombre)
	if err != nil {
		return err
	}
	if existente != nil {
		return servicioDuplicado(nombre)
	}
	return nil
}

// checkCategorias verifica que todas las categorías existan y devuelve los IDs sin repetir,
// en el orden recibido.
func (uc *ServicioUseCase) checkCategorias(ctx context.Context, ids []int) ([]int, error) {
	unicos := make([]int, 0, len(ids))
	vistos := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !vistos[id] {
			vistos[id] = true
			unicos = append(unicos, id)
		}
	}
	if len(unicos) == 0 {
		return unicos, nil
	}
	found, err := uc.categorias.ListByIDs(ctx, unicos)
	if err != nil {
		return nil, err
	}
	existe := make(map[int]bool, len(found))
	for _, c := range found {
		existe[c.ID] = true
	}
	for _, id := range unicos {
		if !existe[id] {
			return nil, domain.Invalid("Categoría con ID %d no encontrada", id)
		}
	}
	return unicos, nil
}

func servicioDuplicado(nombre string) error {
	return &domain.DetailError{
		Kind:   domain.ErrDuplicate,
		Detail: "Ya existe un servicio con el nombre '" + nombre + "'",
	}
}
