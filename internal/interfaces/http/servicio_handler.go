package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/usecase"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// ServicioHandler maneja las peticiones HTTP para Servicio.
type ServicioHandler struct {
	uc  *usecase.ServicioUseCase
	log *logger.Logger
}

// NewServicioHandler construye el handler.
func NewServicioHandler(uc *usecase.ServicioUseCase, log *logger.Logger) *ServicioHandler {
	return &ServicioHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar servicios
// @Tags         servicios
// @Produce      json
// @Param        skip          query  int   false  "Registros a saltar"   default(0)
// @Param        limit         query  int   false  "Límite de registros"  default(100)
// @Param        solo_activos  query  bool  false  "Filtrar solo activos"
// @Param        categoria_id  query  int   false  "Filtrar por categoría"
// @Success      200  {array}   entity.Servicio
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/v1/servicios [get]
func (h *ServicioHandler) List(c *fiber.Ctx) error {
	page, msg := parsePage(c)
	if msg != "" {
		return validationError(c, msg)
	}
	soloActivos, ok := queryBool(c, "solo_activos", false)
	if !ok {
		return validationError(c, "solo_activos debe ser booleano")
	}
	categoriaID := 0
	if s := c.Query("categoria_id"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return validationError(c, "categoria_id debe ser un entero")
		}
		categoriaID = n
	}
	out, err := h.uc.List(c.UserContext(), page, soloActivos, categoriaID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Contar servicios
// @Tags         servicios
// @Produce      json
// @Param        solo_activos  query  bool  false  "Contar solo activos"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/v1/servicios/count [get]
func (h *ServicioHandler) Count(c *fiber.Ctx) error {
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
// @Summary      Obtener servicio por ID
// @Tags         servicios
// @Produce      json
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  entity.Servicio
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/servicios/{id} [get]
func (h *ServicioHandler) GetByID(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Crear servicio
// @Tags         servicios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServicioRequest  true  "Datos del servicio"
// @Success      201   {object}  entity.Servicio
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/servicios [post]
func (h *ServicioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServicioRequest
	if err := c.BodyParser(&in); err != nil {
		return validationError(c, "cuerpo inválido")
	}
	if in.Nombre == "" || len([]rune(in.Nombre)) > 300 {
		return validationError(c, "nombre es requerido (máximo 300 caracteres)")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "crear", "servicio", out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar servicio
// @Description  Actualización parcial. categoria_ids, si viene, reemplaza el conjunto completo.
// @Tags         servicios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del servicio"
// @Param        body  body  dto.UpdateServicioRequest  true  "Campos a modificar"
// @Success      200   {object}  entity.Servicio
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/servicios/{id} [put]
func (h *ServicioHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	var in dto.UpdateServicioRequest
	if err := c.BodyParser(&in); err != nil {
		return validationError(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "actualizar", "servicio", out.ID)
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Cambiar estado activo/inactivo
// @Tags         servicios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del servicio"
// @Success      200  {object}  entity.Servicio
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/servicios/{id}/toggle-activo [patch]
func (h *ServicioHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	out, err := h.uc.ToggleActive(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "activar", "servicio", out.ID)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar servicio
// @Tags         servicios
// @Security     Bearer
// @Param        id   path  int  true  "ID del servicio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/servicios/{id} [delete]
func (h *ServicioHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return validationError(c, "id debe ser un entero")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	logCambio(c, h.log, "eliminar", "servicio", id)
	return c.SendStatus(fiber.StatusNoContent)
}
