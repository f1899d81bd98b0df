package main

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/session"
	"github.com/jhoicas/catalogo-app/internal/application/usecase"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/apiclient"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/catalogo-app/internal/interfaces/http"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	categorias := memory.NewCategoriaRepository()
	servicios := memory.NewServicioRepository(categorias)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoriaUC: usecase.NewCategoriaUseCase(categorias),
		ServicioUC:  usecase.NewServicioUseCase(servicios, categorias, memory.NewTxRunner(servicios)),
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api/v1"})
	require.NoError(t, err)
	return session.New(client.Categorias(), client.Servicios(), nil)
}

func TestDispatch_Categorias(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	c, err := s.Categorias.Create(ctx, dto.CreateCategoriaRequest{Nombre: "Hogar"})
	require.NoError(t, err)

	out, err := dispatch(ctx, s, []string{"categorias", "listar"}, false, 0)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = dispatch(ctx, s, []string{"categorias", "activar", strconv.Itoa(c.ID)}, false, 0)
	require.NoError(t, err)
	assert.False(t, out.(entity.Categoria).Activo)

	out, err = dispatch(ctx, s, []string{"categorias", "contar"}, true, 0)
	require.NoError(t, err)
	assert.Equal(t, dto.CountResponse{Total: 0}, out)

	out, err = dispatch(ctx, s, []string{"categorias", "eliminar", strconv.Itoa(c.ID)}, false, 0)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDispatch_ErrorMuestraMensajeDelStore(t *testing.T) {
	s := newTestSession(t)
	_, err := dispatch(context.Background(), s, []string{"servicios", "ver", "42"}, false, 0)
	require.Error(t, err)
	assert.Equal(t, "Servicio con ID 42 no encontrado", err.Error())
	assert.Equal(t, 3, exitCode(err))
}

func TestExitCode(t *testing.T) {
	s := newTestSession(t)
	c, err := s.Categorias.Create(context.Background(), dto.CreateCategoriaRequest{Nombre: "Hogar"})
	require.NoError(t, err)
	_, err = s.Categorias.Create(context.Background(), dto.CreateCategoriaRequest{Nombre: "Plomería", CategoriaPadreID: &c.ID})
	require.NoError(t, err)

	_, err = dispatch(context.Background(), s, []string{"categorias", "eliminar", strconv.Itoa(c.ID)}, false, 0)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = dispatch(context.Background(), s, []string{"categorias", "ver", "x"}, false, 0)
	assert.Equal(t, 2, exitCode(err))
}

func TestDispatch_Uso(t *testing.T) {
	s := newTestSession(t)
	for _, args := range [][]string{
		{},
		{"categorias"},
		{"productos", "listar"},
		{"servicios", "arbol"},
		{"categorias", "ver"},
		{"categorias", "ver", "x"},
	} {
		_, err := dispatch(context.Background(), s, args, false, 0)
		assert.ErrorIs(t, err, errUso, "%v", args)
	}
}
