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

var _ ports.ServicioGateway = (*ServicioGateway)(nil)

const recursoServicios = "servicios"

// ServicioGateway acceso a /servicios.
type ServicioGateway struct {
	c *Client
}

func (g *ServicioGateway) List(ctx context.Context, filter dto.ServicioFilter) ([]entity.Servicio, error) {
	q := url.Values{}
	setInt(q, "skip", filter.Skip)
	setInt(q, "limit", filter.Limit)
	setBool(q, "solo_activos", filter.SoloActivos)
	// categoria_id 0 equivale a "sin filtro".
	if filter.CategoriaID != nil && *filter.CategoriaID != 0 {
		q.Set("categoria_id", strconv.Itoa(*filter.CategoriaID))
	}

	var out []entity.Servicio
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "listar", method: http.MethodGet, path: "/servicios", query: q, out: &out})
	return out, err
}

func (g *ServicioGateway) Count(ctx context.Context, soloActivos bool) (int, error) {
	q := url.Values{"solo_activos": {strconv.FormatBool(soloActivos)}}
	var out dto.CountResponse
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "contar", method: http.MethodGet, path: "/servicios/count", query: q, out: &out})
	return out.Total, err
}

func (g *ServicioGateway) Get(ctx context.Context, id int) (entity.Servicio, error) {
	var out entity.Servicio
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "obtener", method: http.MethodGet, path: itemPath(recursoServicios, id), out: &out})
	return out, err
}

func (g *ServicioGateway) Create(ctx context.Context, in dto.CreateServicioRequest) (entity.Servicio, error) {
	if in.CategoriaIDs == nil {
		in.CategoriaIDs = []int{}
	}
	var out entity.Servicio
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "crear", method: http.MethodPost, path: "/servicios", body: in, out: &out})
	return out, err
}

func (g *ServicioGateway) Update(ctx context.Context, id int, in dto.UpdateServicioRequest) (entity.Servicio, error) {
	var out entity.Servicio
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "actualizar", method: http.MethodPut, path: itemPath(recursoServicios, id), body: in, out: &out})
	return out, err
}

func (g *ServicioGateway) ToggleActive(ctx context.Context, id int) (entity.Servicio, error) {
	var out entity.Servicio
	err := g.c.do(ctx, call{recurso: recursoServicios, operacion: "cambiar_estado", method: http.MethodPatch, path: itemPath(recursoServicios, id, "toggle-activo"), out: &out})
	return out, err
}

func (g *ServicioGateway) Delete(ctx context.Context, id int) error {
	return g.c.do(ctx, call{recurso: recursoServicios, operacion: "eliminar", method: http.MethodDelete, path: itemPath(recursoServicios, id)})
}
