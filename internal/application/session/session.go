// Package session arma los caches de una sesión de usuario sobre un par de gateways.
package session

import (
	"github.com/jhoicas/catalogo-app/internal/application/cache"
	"github.com/jhoicas/catalogo-app/internal/application/ports"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// Session un cache por tipo de entidad. Se pasa por puntero a los consumidores.
type Session struct {
	Categorias *cache.CategoriaStore
	Servicios  *cache.ServicioStore
}

// New construye la sesión. log puede ser nil.
func New(categorias ports.CategoriaGateway, servicios ports.ServicioGateway, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		Categorias: cache.NewCategoriaStore(categorias, log),
		Servicios:  cache.NewServicioStore(servicios, log),
	}
}

// Reset vacía ambos caches (p. ej. al cerrar sesión).
func (s *Session) Reset() {
	s.Categorias.Reset()
	s.Servicios.Reset()
}
