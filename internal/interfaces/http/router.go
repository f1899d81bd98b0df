package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-app/internal/application/usecase"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoriaUC *usecase.CategoriaUseCase
	ServicioUC  *usecase.ServicioUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api/v1")

	// Escritura: Bearer Token con rol de edición
	write := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(deps.JWTSecret, WriteRoles...)}

	// Categorías (lectura pública)
	categorias := api.Group("/categorias")
	ch := NewCategoriaHandler(deps.CategoriaUC, log)
	categorias.Get("/", ch.List)
	categorias.Get("/tree", ch.Tree)
	categorias.Get("/count", ch.Count)
	categorias.Get("/:id", ch.GetByID)
	categorias.Get("/:id/subcategorias", ch.Subcategorias)
	categorias.Post("/", append(write, ch.Create)...)
	categorias.Put("/:id", append(write, ch.Update)...)
	categorias.Patch("/:id/toggle-activo", append(write, ch.ToggleActive)...)
	categorias.Delete("/:id", append(write, ch.Delete)...)

	// Servicios
	servicios := api.Group("/servicios")
	sh := NewServicioHandler(deps.ServicioUC, log)
	servicios.Get("/", sh.List)
	servicios.Get("/count", sh.Count)
	servicios.Get("/:id", sh.GetByID)
	servicios.Post("/", append(write, sh.Create)...)
	servicios.Put("/:id", append(write, sh.Update)...)
	servicios.Patch("/:id/toggle-activo", append(write, sh.ToggleActive)...)
	servicios.Delete("/:id", append(write, sh.Delete)...)
}
