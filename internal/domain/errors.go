package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// DetailError asocia a un error de dominio el mensaje legible para el usuario final
// (el campo "detail" del cuerpo de error HTTP).
type DetailError struct {
	Kind   error
	Detail string
}

func (e *DetailError) Error() string { return e.Detail }

// Unwrap permite errors.Is(err, domain.ErrNotFound), etc.
func (e *DetailError) Unwrap() error { return e.Kind }

// NotFound construye un ErrNotFound con detalle.
func NotFound(format string, args ...any) error {
	return &DetailError{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

// Invalid construye un ErrInvalidInput con detalle.
func Invalid(format string, args ...any) error {
	return &DetailError{Kind: ErrInvalidInput, Detail: fmt.Sprintf(format, args...)}
}

// RemoteError fallo de una llamada a la API remota de catálogo.
// Detail es el mensaje legible devuelto por el servidor (vacío si no vino o si falló el transporte).
type RemoteError struct {
	Status int    // 0 si la petición no llegó a tener respuesta
	Code   string // código de error del cuerpo, si existe
	Detail string
	Err    error // causa de transporte, si existe
}

func (e *RemoteError) Error() string {
	switch {
	case e.Detail != "" && e.Status != 0:
		return fmt.Sprintf("api remota (HTTP %d): %s", e.Status, e.Detail)
	case e.Detail != "":
		return "api remota: " + e.Detail
	case e.Err != nil:
		return "api remota: " + e.Err.Error()
	default:
		return fmt.Sprintf("api remota: HTTP %d", e.Status)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// RemoteDetail devuelve el detail de un RemoteError envuelto en err, si lo hay.
func RemoteDetail(err error) (string, bool) {
	var re *RemoteError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail, true
	}
	return "", false
}
