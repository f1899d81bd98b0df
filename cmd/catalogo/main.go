// catalogo es un cliente de línea de comandos de la API de catálogo. Arma una sesión (caches de
// categorías y servicios) sobre el cliente REST, ejecuta una operación y muestra el resultado en JSON.
//
// Uso:
//
//	catalogo [-activos] categorias <listar|arbol|selector|contar|ver ID|activar ID|eliminar ID>
//	catalogo [-activos] [-categoria ID] servicios <listar|contar|ver ID|activar ID|eliminar ID>
//	catalogo token <admin|editor> SUBJECT
//
// La URL base, el timeout y el token salen de API_BASE_URL, API_TIMEOUT_SECONDS y API_TOKEN.
// "token" firma un token de operador con JWT_SECRET, listo para exportar como API_TOKEN.
//
// Código de salida: 0 ok, 1 error, 2 uso incorrecto, 3 entidad no encontrada.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jhoicas/catalogo-app/internal/application/auth"
	"github.com/jhoicas/catalogo-app/internal/application/cache"
	"github.com/jhoicas/catalogo-app/internal/application/dto"
	"github.com/jhoicas/catalogo-app/internal/application/session"
	"github.com/jhoicas/catalogo-app/internal/infrastructure/apiclient"
	"github.com/jhoicas/catalogo-app/pkg/config"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

var errUso = errors.New("uso: catalogo [-activos] [-categoria ID] <categorias|servicios> <operación> [ID] | catalogo token <admin|editor> SUBJECT")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalogo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	soloActivos := fs.Bool("activos", false, "solo entidades activas (listar, arbol, contar)")
	categoriaID := fs.Int("categoria", 0, "filtrar servicios por categoría")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: stderr})

	if fs.Arg(0) == "token" {
		if fs.NArg() != 3 {
			fmt.Fprintln(stderr, errUso)
			return 2
		}
		issuer := auth.NewTokenIssuer(auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
		tok, err := issuer.Issue(fs.Arg(2), fs.Arg(1))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, tok)
		return 0
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Token:   cfg.API.Token,
		Logger:  log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "cliente API: %v\n", err)
		return 1
	}
	s := session.New(client.Categorias(), client.Servicios(), log)

	out, err := dispatch(ctx, s, fs.Args(), *soloActivos, *categoriaID)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	if out == nil {
		return 0
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "escribir salida: %v\n", err)
		return 1
	}
	return 0
}

// dispatch ejecuta una operación del cache. Los errores remotos se devuelven con el mensaje que
// quedó en el store, que es el que vería el usuario.
func dispatch(ctx context.Context, s *session.Session, args []string, soloActivos bool, categoriaID int) (any, error) {
	if len(args) < 2 {
		return nil, errUso
	}
	recurso, op, rest := args[0], args[1], args[2:]

	switch recurso {
	case "categorias":
		st := s.Categorias
		switch op {
		case "listar":
			if err := st.LoadList(ctx, dto.CategoriaFilter{SoloActivos: boolFilter(soloActivos)}); err != nil {
				return nil, storeError(st.Store, err)
			}
			return st.Items(), nil
		case "arbol":
			if err := st.LoadTree(ctx, soloActivos); err != nil {
				return nil, storeError(st.Store, err)
			}
			return st.Tree(), nil
		case "selector":
			if err := st.LoadList(ctx, dto.CategoriaFilter{}); err != nil {
				return nil, storeError(st.Store, err)
			}
			return st.Selector(), nil
		}
		return common(ctx, st.Store, op, rest, soloActivos)
	case "servicios":
		st := s.Servicios
		if op == "listar" {
			f := dto.ServicioFilter{SoloActivos: boolFilter(soloActivos)}
			if categoriaID > 0 {
				f.CategoriaID = &categoriaID
			}
			if err := st.LoadList(ctx, f); err != nil {
				return nil, storeError(st.Store, err)
			}
			return st.Items(), nil
		}
		return common(ctx, st.Store, op, rest, soloActivos)
	}
	return nil, errUso
}

// common operaciones por ID y conteo, iguales para ambos tipos.
func common[T cache.Entity, F, C, U any](ctx context.Context, st *cache.Store[T, F, C, U], op string, rest []string, soloActivos bool) (any, error) {
	if op == "contar" {
		st.LoadCount(ctx, soloActivos)
		return dto.CountResponse{Total: st.Total()}, nil
	}
	if len(rest) != 1 {
		return nil, errUso
	}
	id, err := strconv.Atoi(rest[0])
	if err != nil {
		return nil, fmt.Errorf("ID inválido %q: %w", rest[0], errUso)
	}
	switch op {
	case "ver":
		e, err := st.Load(ctx, id)
		if err != nil {
			return nil, storeError(st, err)
		}
		return e, nil
	case "activar":
		e, err := st.ToggleActive(ctx, id)
		if err != nil {
			return nil, storeError(st, err)
		}
		return e, nil
	case "eliminar":
		if err := st.Delete(ctx, id); err != nil {
			return nil, storeError(st, err)
		}
		return nil, nil
	}
	return nil, errUso
}

// mensajeError muestra el mensaje del store y conserva la causa para exitCode.
type mensajeError struct {
	msg string
	err error
}

func (e *mensajeError) Error() string { return e.msg }
func (e *mensajeError) Unwrap() error { return e.err }

func storeError[T cache.Entity, F, C, U any](st *cache.Store[T, F, C, U], err error) error {
	if msg := st.Err(); msg != "" {
		return &mensajeError{msg: msg, err: err}
	}
	return err
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errUso):
		return 2
	case apiclient.IsStatus(err, http.StatusNotFound):
		return 3
	}
	return 1
}

// boolFilter solo envía el filtro cuando se pidió; si no, el servidor aplica su valor por defecto.
func boolFilter(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}
