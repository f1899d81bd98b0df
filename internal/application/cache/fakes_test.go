package cache_test

import (
	"context"
	"errors"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

var _ ports.CategoriaGateway = (*fakeCategorias)(nil)
var _ ports.ServicioGateway = (*fakeServicios)(nil)

var errRed = &domain.RemoteError{Err: errors.New("dial tcp: connection refused")}

// fakeCategorias gateway en memoria; cada función nil devuelve un valor neutro.
type fakeCategorias struct {
	listFn   func(dto.CategoriaFilter) ([]entity.Categoria, error)
	treeFn   func(bool) ([]entity.CategoriaTree, error)
	countFn  func(bool) (int, error)
	getFn    func(int) (entity.Categoria, error)
	createFn func(dto.CreateCategoriaRequest) (entity.Categoria, error)
	updateFn func(context.Context, int, dto.UpdateCategoriaRequest) (entity.Categoria, error)
	toggleFn func(int) (entity.Categoria, error)
	deleteFn func(int) error

	lastFilter dto.CategoriaFilter
}

func (f *fakeCategorias) List(_ context.Context, filter dto.CategoriaFilter) ([]entity.Categoria, error) {
	f.lastFilter = filter
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(filter)
}

func (f *fakeCategorias) Tree(_ context.Context, soloActivos bool) ([]entity.CategoriaTree, error) {
	if f.treeFn == nil {
		return nil, nil
	}
	return f.treeFn(soloActivos)
}

func (f *fakeCategorias) Count(_ context.Context, soloActivos bool) (int, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(soloActivos)
}

func (f *fakeCategorias) Get(_ context.Context, id int) (entity.Categoria, error) {
	if f.getFn == nil {
		return entity.Categoria{ID: id}, nil
	}
	return f.getFn(id)
}

func (f *fakeCategorias) Subcategorias(_ context.Context, _ int) ([]entity.Categoria, error) {
	return nil, nil
}

func (f *fakeCategorias) Create(_ context.Context, in dto.CreateCategoriaRequest) (entity.Categoria, error) {
	return f.createFn(in)
}

func (f *fakeCategorias) Update(ctx context.Context, id int, in dto.UpdateCategoriaRequest) (entity.Categoria, error) {
	return f.updateFn(ctx, id, in)
}

func (f *fakeCategorias) ToggleActive(_ context.Context, id int) (entity.Categoria, error) {
	return f.toggleFn(id)
}

func (f *fakeCategorias) Delete(_ context.Context, id int) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

// fakeServicios gateway en memoria para servicios.
type fakeServicios struct {
	listFn   func(dto.ServicioFilter) ([]entity.Servicio, error)
	updateFn func(int, dto.UpdateServicioRequest) (entity.Servicio, error)
	createFn func(dto.CreateServicioRequest) (entity.Servicio, error)

	lastUpdate dto.UpdateServicioRequest
}

func (f *fakeServicios) List(_ context.Context, filter dto.ServicioFilter) ([]entity.Servicio, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(filter)
}

func (f *fakeServicios) Count(context.Context, bool) (int, error) { return 0, nil }

func (f *fakeServicios) Get(_ context.Context, id int) (entity.Servicio, error) {
	return entity.Servicio{ID: id}, nil
}

func (f *fakeServicios) Create(_ context.Context, in dto.CreateServicioRequest) (entity.Servicio, error) {
	return f.createFn(in)
}

func (f *fakeServicios) Update(_ context.Context, id int, in dto.UpdateServicioRequest) (entity.Servicio, error) {
	f.lastUpdate = in
	return f.updateFn(id, in)
}

func (f *fakeServicios) ToggleActive(_ context.Context, id int) (entity.Servicio, error) {
	return entity.Servicio{ID: id}, nil
}

func (f *fakeServicios) Delete(context.Context, int) error { return nil }
