package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/apiclient"
)

func newClient(t *testing.T, h http.HandlerFunc, opts apiclient.Options) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL + "/api/v1"
	c, err := apiclient.New(opts)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_BaseURLInvalida(t *testing.T) {
	_, err := apiclient.New(apiclient.Options{BaseURL: "no es una url"})
	assert.Error(t, err)
}

func TestCategorias_ListSoloEnviaFiltrosDefinidos(t *testing.T) {
	var gotQuery string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/categorias", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []entity.Categoria{{ID: 1, Nombre: "Cabello", Activo: true}})
	}, apiclient.Options{})

	out, err := c.Categorias().List(context.Background(), dto.CategoriaFilter{Limit: dto.Ptr(50), SoloRaiz: dto.Ptr(true)})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Cabello", out[0].Nombre)
	assert.Equal(t, "limit=50&solo_raiz=true", gotQuery)
}

func TestCategorias_TreeYCount(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("solo_activos"))
		switch r.URL.Path {
		case "/api/v1/categorias/tree":
			writeJSON(w, http.StatusOK, []entity.CategoriaTree{{ID: 1, Subcategorias: []entity.CategoriaTree{{ID: 2}}}})
		case "/api/v1/categorias/count":
			writeJSON(w, http.StatusOK, dto.CountResponse{Total: 7})
		default:
			http.NotFound(w, r)
		}
	}, apiclient.Options{})

	tree, err := c.Categorias().Tree(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, tree[0].Subcategorias[0].ID)

	n, err := c.Categorias().Count(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCategorias_EscriturasUsanVerboYRuta(t *testing.T) {
	type hit struct{ method, path string }
	var hits []hit
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, hit{r.Method, r.URL.Path})
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusOK, entity.Categoria{ID: 3, Nombre: "X"})
		}
	}, apiclient.Options{})
	ctx := context.Background()
	gw := c.Categorias()

	_, err := gw.Create(ctx, dto.CreateCategoriaRequest{Nombre: "X"})
	require.NoError(t, err)
	_, err = gw.Update(ctx, 3, dto.UpdateCategoriaRequest{Nombre: dto.Ptr("Y")})
	require.NoError(t, err)
	_, err = gw.ToggleActive(ctx, 3)
	require.NoError(t, err)
	_, err = gw.Subcategorias(ctx, 3)
	assert.Error(t, err, "un objeto no decodifica como lista")
	require.NoError(t, gw.Delete(ctx, 3))

	assert.Equal(t, []hit{
		{http.MethodPost, "/api/v1/categorias"},
		{http.MethodPut, "/api/v1/categorias/3"},
		{http.MethodPatch, "/api/v1/categorias/3/toggle-activo"},
		{http.MethodGet, "/api/v1/categorias/3/subcategorias"},
		{http.MethodDelete, "/api/v1/categorias/3"},
	}, hits)
}

func TestCliente_EnviaRequestIDYToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)
		assert.Equal(t, "Bearer secreto", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"nombre":"Corte","categoria_ids":[]}`, string(body))
		writeJSON(w, http.StatusCreated, entity.Servicio{ID: 9, Nombre: "Corte"})
	}, apiclient.Options{Token: "secreto"})

	out, err := c.Servicios().Create(context.Background(), dto.CreateServicioRequest{Nombre: "Corte"})

	require.NoError(t, err)
	assert.Equal(t, 9, out.ID)
}

func TestCliente_ErrorConDetail(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Detail: "Categoría con ID 9 no encontrada"})
	}, apiclient.Options{})

	_, err := c.Categorias().Get(context.Background(), 9)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "NOT_FOUND", re.Code)
	assert.Equal(t, "Categoría con ID 9 no encontrada", re.Detail)
	assert.True(t, apiclient.IsStatus(err, http.StatusNotFound))
}

func TestCliente_ErrorDeValidacionSinDetailTexto(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["query","limit"],"msg":"fuera de rango"}]}`)
	}, apiclient.Options{})

	_, err := c.Servicios().List(context.Background(), dto.ServicioFilter{Limit: dto.Ptr(9999)})

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnprocessableEntity, re.Status)
	assert.Empty(t, re.Detail)
	_, ok := domain.RemoteDetail(err)
	assert.False(t, ok)
}

func TestCliente_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()
	c, err := apiclient.New(apiclient.Options{BaseURL: base})
	require.NoError(t, err)

	_, err = c.Categorias().Get(context.Background(), 1)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Zero(t, re.Status)
	assert.Empty(t, re.Detail)
	assert.NotNil(t, re.Err)
}

func TestCliente_ContextCancelado(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, apiclient.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Categorias().Get(ctx, 1)

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestServicios_ListCategoriaCeroNoFiltra(t *testing.T) {
	var queries []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, []entity.Servicio{})
	}, apiclient.Options{})
	ctx := context.Background()

	_, err := c.Servicios().List(ctx, dto.ServicioFilter{CategoriaID: dto.Ptr(0)})
	require.NoError(t, err)
	_, err = c.Servicios().List(ctx, dto.ServicioFilter{CategoriaID: dto.Ptr(4), SoloActivos: dto.Ptr(true)})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "categoria_id=4&solo_activos=true"}, queries)
}

func TestServicios_UpdateEnviaConjuntoCompleto(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []any{float64(3)}, in["categoria_ids"])
		_, tieneNombre := in["nombre"]
		assert.False(t, tieneNombre, "los campos no definidos no se envían")
		writeJSON(w, http.StatusOK, entity.Servicio{ID: 5, Categorias: []entity.CategoriaSimple{{ID: 3}}})
	}, apiclient.Options{})

	out, err := c.Servicios().Update(context.Background(), 5, dto.UpdateServicioRequest{CategoriaIDs: &[]int{3}})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Categorias[0].ID)
}

func TestMetrics_CuentaPorResultado(t *testing.T) {
	m := apiclient.NewMetricsCollector()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Detail: "No se puede eliminar una categoría que tiene subcategorías"})
			return
		}
		writeJSON(w, http.StatusOK, dto.CountResponse{Total: 1})
	}, apiclient.Options{Metrics: m})
	ctx := context.Background()

	_, err := c.Categorias().Count(ctx, true)
	require.NoError(t, err)
	require.Error(t, c.Categorias().Delete(ctx, 1))

	assert.Equal(t, 2, testutil.CollectAndCount(m, "catalogo_gateway_requests_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(m, "catalogo_gateway_request_duration_seconds"))
}
