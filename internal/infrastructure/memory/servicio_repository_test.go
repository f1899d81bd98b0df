package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/domain/repository"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/memory"
)

var errFalla = errors.New("falla")

func TestTxRunner_RollbackSoloDeshaceLoEscritoEnLaTransaccion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewServicioRepository(memory.NewCategoriaRepository())
	tx := memory.NewTxRunner(repo)

	limpieza := &entity.Servicio{Nombre: "Limpieza", Activo: true}
	pintura := &entity.Servicio{Nombre: "Pintura", Activo: true}
	require.NoError(t, repo.Create(ctx, limpieza))
	require.NoError(t, repo.Create(ctx, pintura))
	require.NoError(t, repo.ReplaceCategorias(ctx, limpieza.ID, []int{1}))

	err := tx.RunServicio(ctx, func(s repository.ServicioRepository) error {
		nuevo := &entity.Servicio{Nombre: "Jardinería", Activo: true}
		if err := s.Create(ctx, nuevo); err != nil {
			return err
		}
		if err := s.ReplaceCategorias(ctx, limpieza.ID, []int{2, 3}); err != nil {
			return err
		}
		// Escritura concurrente fuera de la transacción (p. ej. un toggle).
		inactivo := *pintura
		inactivo.Activo = false
		if err := repo.Update(ctx, &inactivo); err != nil {
			return err
		}
		return errFalla
	})
	require.ErrorIs(t, err, errFalla)

	got, err := repo.GetByNombre(ctx, "Jardinería")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, pintura.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Activo, "la escritura externa se conserva")

	n, err := repo.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTxRunner_CommitConservaCambios(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewServicioRepository(memory.NewCategoriaRepository())
	tx := memory.NewTxRunner(repo)

	var id int
	err := tx.RunServicio(ctx, func(s repository.ServicioRepository) error {
		nuevo := &entity.Servicio{Nombre: "Jardinería", Activo: true}
		if err := s.Create(ctx, nuevo); err != nil {
			return err
		}
		id = nuevo.ID
		return nil
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jardinería", got.Nombre)
}

func TestCategoriaRepo_CountChildren(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoriaRepository()
	padre := &entity.Categoria{Nombre: "Hogar", Activo: true}
	require.NoError(t, repo.Create(ctx, padre))
	require.NoError(t, repo.Create(ctx, &entity.Categoria{Nombre: "Plomería", CategoriaPadreID: &padre.ID}))

	n, err := repo.CountChildren(ctx, padre.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
