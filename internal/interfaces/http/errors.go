package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

// writeError traduce errores de dominio a status + {"code","detail"}. Los no esperados se
// registran y se responden como 500 sin exponer el mensaje interno.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusBadRequest, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}

	detail := "Error interno del servidor"
	var de *domain.DetailError
	switch {
	case errors.As(err, &de):
		detail = de.Detail
	case status != fiber.StatusInternalServerError:
		detail = err.Error()
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

func validationError(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Detail: detail})
}

// parseID lee el parámetro :id como entero.
func parseID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	return id, err == nil
}

// parsePage lee skip/limit: skip >= 0, 1 <= limit <= 500, por defecto 0/100.
func parsePage(c *fiber.Ctx) (dto.PageRequest, string) {
	page := dto.PageRequest{Skip: 0, Limit: dto.DefaultLimit}
	if s := c.Query("skip"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return page, "skip debe ser un entero"
		}
		page.Skip = n
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return page, "limit debe ser un entero"
		}
		page.Limit = n
	}
	if !page.Valid() {
		return page, "skip debe ser >= 0 y limit entre 1 y 500"
	}
	return page, ""
}

// queryBool lee un booleano opcional; devuelve false en ok si el valor no es válido.
func queryBool(c *fiber.Ctx, key string, def bool) (bool, bool) {
	s := c.Query(key)
	if s == "" {
		return def, true
	}
	b, err := strconv.ParseBool(s)
	return b, err == nil
}
