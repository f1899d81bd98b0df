package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
)

// Verificar en tiempo de compilación que CategoriaGateway implementa el puerto.
var _ ports.CategoriaGateway = (*CategoriaGateway)(nil)

const recursoCategorias = "categorias"

// CategoriaGateway acceso a /categorias.
type CategoriaGateway struct {
	c *Client
}

func (g *CategoriaGateway) List(ctx context.Context, filter dto.CategoriaFilter) ([]entity.Categoria, error) {
	q := url.Values{}
	setInt(q, "skip", filter.Skip)
	setInt(q, "limit", filter.Limit)
	setBool(q, "solo_activos", filter.SoloActivos)
	setBool(q, "solo_raiz", filter.SoloRaiz)

	var out []entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "listar", method: http.MethodGet, path: "/categorias", query: q, out: &out})
	return out, err
}

func (g *CategoriaGateway) Tree(ctx context.Context, soloActivos bool) ([]entity.CategoriaTree, error) {
	q := url.Values{"solo_activos": {strconv.FormatBool(soloActivos)}}
	var out []entity.CategoriaTree
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "arbol", method: http.MethodGet, path: "/categorias/tree", query: q, out: &out})
	return out, err
}

func (g *CategoriaGateway) Count(ctx context.Context, soloActivos bool) (int, error) {
	q := url.Values{"solo_activos": {strconv.FormatBool(soloActivos)}}
	var out dto.CountResponse
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "contar", method: http.MethodGet, path: "/categorias/count", query: q, out: &out})
	return out.Total, err
}

func (g *CategoriaGateway) Get(ctx context.Context, id int) (entity.Categoria, error) {
	var out entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "obtener", method: http.MethodGet, path: itemPath(recursoCategorias, id), out: &out})
	return out, err
}

func (g *CategoriaGateway) Subcategorias(ctx context.Context, id int) ([]entity.Categoria, error) {
	var out []entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "subcategorias", method: http.MethodGet, path: itemPath(recursoCategorias, id, "subcategorias"), out: &out})
	return out, err
}

func (g *CategoriaGateway) Create(ctx context.Context, in dto.CreateCategoriaRequest) (entity.Categoria, error) {
	var out entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "crear", method: http.MethodPost, path: "/categorias", body: in, out: &out})
	return out, err
}

func (g *CategoriaGateway) Update(ctx context.Context, id int, in dto.UpdateCategoriaRequest) (entity.Categoria, error) {
	var out entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "actualizar", method: http.MethodPut, path: itemPath(recursoCategorias, id), body: in, out: &out})
	return out, err
}

func (g *CategoriaGateway) ToggleActive(ctx context.Context, id int) (entity.Categoria, error) {
	var out entity.Categoria
	err := g.c.do(ctx, call{recurso: recursoCategorias, operacion: "cambiar_estado", method: http.MethodPatch, path: itemPath(recursoCategorias, id, "toggle-activo"), out: &out})
	return out, err
}

func (g *CategoriaGateway) Delete(ctx context.Context, id int) error {
	return g.c.do(ctx, call{recurso: recursoCategorias, operacion: "eliminar", method: http.MethodDelete, path: itemPath(recursoCategorias, id)})
}
