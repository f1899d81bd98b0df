package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/usecase"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// CategoriaHandler maneja las peticiones HTTP para Categoria.
type CategoriaHandler struct {
	uc  *usecase.CategoriaUseCase
	log *logger.Logger
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase, log *logger.Logger) *CategoriaHandler {
	return &CategoriaHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Param        skip          query  int   false  "Registros a saltar"   default(0)
// @Param        limit         query  int   false  "Límite de registros"  default(100)
// @Param        solo_activos  query  bool  false  "Filtrar solo activos"
// @Param        solo_raiz     query  bool  false  "Filtrar solo categorías raíz"
// @Success      200  {array}   entity.Categoria
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	page, msg := parsePage(c)
	if msg != "" {
		return validationError(c, msg)
	}
	soloActivos, ok1 := queryBool(c, "solo_activos", false)
	soloRaiz, ok2 := queryBool(c, "solo_raiz", false)
	if !ok1 || !ok2 {
		return validationError(c, "solo_activos y solo_raiz deben ser booleanos")
	}
	out, err := h.uc.List(c.UserContext(), page, soloActivos, soloRaiz)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Tree godoc
// @Summary      Árbol jerárquico de categorías
// @Tags         categorias
// @Produce      json
// @Param        solo_activos  query  bool  false  "Filtrar solo raíces activas"  default(true)
// @Success      200  {array}  entity.CategoriaTree
// @Router       /api/v1/categorias/tree [get]
func (h *CategoriaHandler) Tree(c *fiber.Ctx) error {
	soloActivos, ok := queryBool(c, "solo_activos", true)
	if !ok {
		return validationError(c, "solo_activos debe ser booleano")
	}
	out, err := h.uc.Tree(c.UserContext(), soloActivos)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Contar categorías
// @Tags         categorias
// @Produce      json
// @Param        solo_activos  query  bool  false  "Contar solo activos"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/v1/categorias/count [get]
func (h *CategoriaHandler) Count(c *fiber.Ctx) error {
	soloActivos, ok := queryBool(c, "solo_activos", false)
	if !ok {
		return validationError(c, "solo_activos debe ser booleano")
	}
	n, err := h.uc.Count(c.UserContext(), soloActivos)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.CountResponse{Total: n})
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categorias
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  entity.Categoria
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/categorias/{id} [get]
func (h *CategoriaHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Subcategorias godoc
// @Summary      Subcategorías directas
// @Tags         categorias
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría padre"
// @Success      200  {array}   entity.Categoria
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/categorias/{id}/subcategorias [get]
func (h *CategoriaHandler) Subcategorias(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	out, err := h.uc.Subcategorias(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoriaRequest  true  "Datos de la categoría"
// @Success      201   {object}  entity.Categoria
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return validationError(c, "cuerpo inválido")
	}
	if in.Nombre == "" || len([]rune(in.Nombre)) > 150 {
		return validationError(c, "nombre es requerido (máximo 150 caracteres)")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "crear", "categoria", out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Actualización parcial. categoria_padre_id = 0 convierte la categoría en raíz.
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoriaRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Categoria
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/categorias/{id} [put]
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	var in dto.UpdateCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return validationError(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "actualizar", "categoria", out.ID)
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Cambiar estado activo/inactivo
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  entity.Categoria
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/categorias/{id}/toggle-activo [patch]
func (h *CategoriaHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	out, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "activar", "categoria", out.ID)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categorias
// @Security     Bearer
// @Param        id   path  int  true  "ID de la categoría"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/categorias/{id} [delete]
func (h *CategoriaHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "eliminar", "categoria", id)
	return c.SendStatus(fiber.StatusNoContent)
}
