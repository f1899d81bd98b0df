package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-app/internal/application/cache"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

func cat(id int, nombre string, activo bool) entity.Categoria {
	return entity.Categoria{ID: id, Nombre: nombre, Activo: activo}
}

func TestReconcile_UpdateReemplazaEnSuPosicion(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true), cat(2, "B", true), cat(3, "C", true)}
	sel := cat(2, "B", true)

	out, outSel := cache.Reconcile(items, &sel, cache.Updated(cat(2, "B2", false)))

	require.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(out))
	assert.Equal(t, "B2", out[1].Nombre)
	require.NotNil(t, outSel)
	assert.Equal(t, "B2", outSel.Nombre)

	// Los argumentos no se modifican.
	assert.Equal(t, "B", items[1].Nombre)
	assert.Equal(t, "B", sel.Nombre)
}

func TestReconcile_UpdateIdempotente(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true), cat(2, "B", true)}
	m := cache.Updated(cat(1, "A", false))

	once, selOnce := cache.Reconcile(items, nil, m)
	twice, selTwice := cache.Reconcile(once, selOnce, m)

	assert.Equal(t, once, twice)
	assert.Nil(t, selTwice)
}

func TestReconcile_UpdateDeEntidadAusente(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true)}

	out, sel := cache.Reconcile(items, nil, cache.Updated(cat(99, "Z", true)))

	assert.Equal(t, items, out, "la colección no cambia si el ID no está")
	assert.Nil(t, sel)
}

func TestReconcile_UpdateSoloSeleccionada(t *testing.T) {
	sel := cat(5, "E", true)

	out, outSel := cache.Reconcile([]entity.Categoria{cat(1, "A", true)}, &sel, cache.Updated(cat(5, "E2", false)))

	assert.Equal(t, []int{1}, ids(out))
	require.NotNil(t, outSel)
	assert.False(t, outSel.Activo)
}

func TestReconcile_DeleteLimpiaSeleccionada(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true), cat(2, "B", true), cat(3, "C", true)}
	sel := cat(2, "B", true)

	out, outSel := cache.Reconcile(items, &sel, cache.Deleted[entity.Categoria](2))

	assert.Equal(t, []int{1, 3}, ids(out))
	assert.Nil(t, outSel)
	assert.Len(t, items, 3, "la colección original no se modifica")
}

func TestReconcile_DeleteDeOtraConservaSeleccionada(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true), cat(2, "B", true)}
	sel := cat(2, "B", true)

	out, outSel := cache.Reconcile(items, &sel, cache.Deleted[entity.Categoria](1))

	assert.Equal(t, []int{2}, ids(out))
	require.NotNil(t, outSel)
	assert.Equal(t, 2, outSel.ID)
}

func TestReconcile_DeleteIdempotente(t *testing.T) {
	items := []entity.Categoria{cat(1, "A", true), cat(2, "B", true)}
	m := cache.Deleted[entity.Categoria](1)

	once, _ := cache.Reconcile(items, nil, m)
	twice, _ := cache.Reconcile(once, nil, m)

	assert.Equal(t, once, twice)
}

func ids[T cache.Entity](items []T) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}
