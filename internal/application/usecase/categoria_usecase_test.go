package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/usecase"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/memory"
)

var todo = dto.PageRequest{Skip: 0, Limit: dto.DefaultLimit}

func newCategoriaUC() *usecase.CategoriaUseCase {
	return usecase.NewCategoriaUseCase(memory.NewCategoriaRepository())
}

func crear(t *testing.T, uc *usecase.CategoriaUseCase, nombre string, padre *int) *entity.Categoria {
	t.Helper()
	c, err := uc.Create(context.Background(), dto.CreateCategoriaRequest{Nombre: nombre, CategoriaPadreID: padre})
	require.NoError(t, err)
	return c
}

func TestCategoriaUseCase_CreateActivaPorDefecto(t *testing.T) {
	uc := newCategoriaUC()

	c := crear(t, uc, "Cabello", nil)

	assert.Equal(t, 1, c.ID)
	assert.True(t, c.Activo)
	assert.Nil(t, c.CategoriaPadre)
	assert.Empty(t, c.Subcategorias)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCategoriaUseCase_CreateNombreDuplicado(t *testing.T) {
	uc := newCategoriaUC()
	crear(t, uc, "Cabello", nil)

	_, err := uc.Create(context.Background(), dto.CreateCategoriaRequest{Nombre: "Cabello"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.EqualError(t, err, "Ya existe una categoría con el nombre 'Cabello'")
}

func TestCategoriaUseCase_CreatePadreInexistente(t *testing.T) {
	uc := newCategoriaUC()

	_, err := uc.Create(context.Background(), dto.CreateCategoriaRequest{Nombre: "Hija", CategoriaPadreID: dto.Ptr(99)})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "Categoría padre con ID 99 no encontrada")
}

func TestCategoriaUseCase_RelacionesPadreHija(t *testing.T) {
	uc := newCategoriaUC()
	padre := crear(t, uc, "Cabello", nil)
	crear(t, uc, "Corte", &padre.ID)
	crear(t, uc, "Color", &padre.ID)

	got, err := uc.GetByID(context.Background(), padre.ID)
	require.NoError(t, err)
	require.Len(t, got.Subcategorias, 2)
	assert.Equal(t, "Color", got.Subcategorias[0].Nombre, "ordenadas por nombre")

	hija, err := uc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, hija.CategoriaPadre)
	assert.Equal(t, "Cabello", hija.CategoriaPadre.Nombre)

	subs, err := uc.Subcategorias(context.Background(), padre.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	_, err = uc.Subcategorias(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoriaUseCase_GetNoEncontrada(t *testing.T) {
	_, err := newCategoriaUC().GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Categoría con ID 7 no encontrada")
}

func TestCategoriaUseCase_UpdatePropioPadre(t *testing.T) {
	uc := newCategoriaUC()
	c := crear(t, uc, "Cabello", nil)

	_, err := uc.Update(context.Background(), c.ID, dto.UpdateCategoriaRequest{CategoriaPadreID: dto.Ptr(c.ID)})

	assert.EqualError(t, err, "Una categoría no puede ser su propia categoría padre")
}

func TestCategoriaUseCase_UpdateDescendienteComoPadre(t *testing.T) {
	ctx := context.Background()
	uc := newCategoriaUC()
	a := crear(t, uc, "A", nil)
	b := crear(t, uc, "B", &a.ID)
	c := crear(t, uc, "C", &b.ID)

	_, err := uc.Update(ctx, a.ID, dto.UpdateCategoriaRequest{CategoriaPadreID: dto.Ptr(c.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "Una categoría no puede ser descendiente de sí misma")

	tree, err := uc.Tree(ctx, false)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, a.ID, tree[0].ID)

	// Mover una rama bajo otra sin ciclo sigue permitido.
	d := crear(t, uc, "D", nil)
	movida, err := uc.Update(ctx, b.ID, dto.UpdateCategoriaRequest{CategoriaPadreID: dto.Ptr(d.ID)})
	require.NoError(t, err)
	require.NotNil(t, movida.CategoriaPadre)
	assert.Equal(t, d.ID, movida.CategoriaPadre.ID)
}

func TestCategoriaUseCase_UpdateParcial(t *testing.T) {
	uc := newCategoriaUC()
	padre := crear(t, uc, "Cabello", nil)
	c := crear(t, uc, "Uñas", nil)
	crear(t, uc, "Spa", nil)
	ctx := context.Background()

	_, err := uc.Update(ctx, c.ID, dto.UpdateCategoriaRequest{Nombre: dto.Ptr("Spa")})
	assert.EqualError(t, err, "Ya existe una categoría con el nombre 'Spa'")

	got, err := uc.Update(ctx, c.ID, dto.UpdateCategoriaRequest{
		Descripcion:      dto.Ptr("Manicure y pedicure"),
		CategoriaPadreID: &padre.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Uñas", got.Nombre)
	require.NotNil(t, got.CategoriaPadre)
	assert.Equal(t, padre.ID, got.CategoriaPadre.ID)

	got, err = uc.Update(ctx, c.ID, dto.UpdateCategoriaRequest{CategoriaPadreID: dto.Ptr(0)})
	require.NoError(t, err)
	assert.True(t, got.EsRaiz())
	require.NotNil(t, got.Descripcion)
	assert.Equal(t, "Manicure y pedicure", *got.Descripcion)

	_, err = uc.Update(ctx, 99, dto.UpdateCategoriaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoriaUseCase_ToggleActive(t *testing.T) {
	uc := newCategoriaUC()
	c := crear(t, uc, "Cabello", nil)
	ctx := context.Background()

	got, err := uc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Activo)

	got, err = uc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Activo)

	n, err := uc.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCategoriaUseCase_DeleteConSubcategorias(t *testing.T) {
	uc := newCategoriaUC()
	padre := crear(t, uc, "Cabello", nil)
	hija := crear(t, uc, "Corte", &padre.ID)
	ctx := context.Background()

	err := uc.Delete(ctx, padre.ID)
	assert.EqualError(t, err, "No se puede eliminar una categoría que tiene subcategorías")

	require.NoError(t, uc.Delete(ctx, hija.ID))
	require.NoError(t, uc.Delete(ctx, padre.ID))
	assert.ErrorIs(t, uc.Delete(ctx, padre.ID), domain.ErrNotFound)
}

func TestCategoriaUseCase_ListFiltros(t *testing.T) {
	uc := newCategoriaUC()
	ctx := context.Background()
	b := crear(t, uc, "B", nil)
	crear(t, uc, "A", &b.ID)
	c := crear(t, uc, "C", nil)
	_, err := uc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)

	all, err := uc.List(ctx, todo, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, nombres(all))

	raiz, err := uc.List(ctx, todo, true, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, nombres(raiz))

	pagina, err := uc.List(ctx, dto.PageRequest{Skip: 1, Limit: 1}, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, nombres(pagina))
}

func TestCategoriaUseCase_Tree(t *testing.T) {
	uc := newCategoriaUC()
	ctx := context.Background()
	cabello := crear(t, uc, "Cabello", nil)
	corte := crear(t, uc, "Corte", &cabello.ID)
	crear(t, uc, "Degradado", &corte.ID)
	spa := crear(t, uc, "Spa", nil)
	_, err := uc.ToggleActive(ctx, spa.ID)
	require.NoError(t, err)

	tree, err := uc.Tree(ctx, true)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Cabello", tree[0].Nombre)
	require.Len(t, tree[0].Subcategorias, 1)
	assert.Equal(t, "Degradado", tree[0].Subcategorias[0].Subcategorias[0].Nombre)

	tree, err = uc.Tree(ctx, false)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestBuildTree_CicloNoRecursaInfinito(t *testing.T) {
	uno, dos, tres := 1, 2, 3
	all := []*entity.Categoria{
		{ID: 1, Nombre: "Raíz", Activo: true},
		{ID: 2, Nombre: "Dos", Activo: true, CategoriaPadreID: &tres},
		{ID: 3, Nombre: "Tres", Activo: true, CategoriaPadreID: &dos},
		{ID: 4, Nombre: "Cuatro", Activo: true, CategoriaPadreID: &uno},
	}

	tree := usecase.BuildTree(all, true)

	require.Len(t, tree, 1)
	assert.Equal(t, 1, tree[0].ID)
	require.Len(t, tree[0].Subcategorias, 1)
	assert.Equal(t, 4, tree[0].Subcategorias[0].ID)
	assert.Empty(t, tree[0].Subcategorias[0].Subcategorias)
}

func nombres(list []entity.Categoria) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Nombre)
	}
	return out
}
