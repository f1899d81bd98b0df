package cache

import (
	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/internal/domain/entity"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// MensajesServicio mensajes por defecto cuando el servidor no envía detail.
var MensajesServicio = Mensajes{
	Listar:        "Error al cargar servicios",
	Obtener:       "Error al obtener servicio",
	Crear:         "Error al crear servicio",
	Actualizar:    "Error al actualizar servicio",
	CambiarEstado: "Error al cambiar estado",
	Eliminar:      "Error al eliminar servicio",
}

// ServicioStore cache de servicios. Las categorías de cada servicio vienen siempre de la respuesta
// del servidor; los categoria_ids enviados no se guardan en ningún lado.
type ServicioStore struct {
	*Store[entity.Servicio, dto.ServicioFilter, dto.CreateServicioRequest, dto.UpdateServicioRequest]
}

// NewServicioStore construye el cache de servicios sobre el gateway.
func NewServicioStore(gw ports.ServicioGateway, log *logger.Logger) *ServicioStore {
	return &ServicioStore{
		Store: NewStore[entity.Servicio, dto.ServicioFilter, dto.CreateServicioRequest, dto.UpdateServicioRequest](gw, "servicios", MensajesServicio, log),
	}
}
