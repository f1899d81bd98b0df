// Package apiclient implementa los gateways de catálogo sobre la API REST (/api/v1).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-app/internal/domain"
	"github.com/jhoicas/catalogo-app/pkg/logger"
)

const (
	DefaultBaseURL = "http://localhost:8080/api/v1"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// Options configuración del cliente. Los campos vacíos toman el valor por defecto.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Token      string       // Bearer opcional
	HTTPClient *http.Client // opcional; si se pasa, Timeout se ignora
	Metrics    *Collector   // opcional
	Logger     *logger.Logger
}

// Client cliente HTTP compartido por los gateways de categorías y servicios.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	metrics    *Collector
	log        *logger.Logger
}

// New construye el cliente.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("apiclient: base URL inválida %q: %w", base, err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    base,
		token:      opts.Token,
		httpClient: hc,
		metrics:    opts.Metrics,
		log:        log.Named("apiclient"),
	}, nil
}

// Categorias gateway de categorías sobre este cliente.
func (c *Client) Categorias() *CategoriaGateway { return &CategoriaGateway{c: c} }

// Servicios gateway de servicios sobre este cliente.
func (c *Client) Servicios() *ServicioGateway { return &ServicioGateway{c: c} }

// call describe una petición. out nil = se descarta el cuerpo de la respuesta.
type call struct {
	recurso   string
	operacion string
	method    string
	path      string
	query     url.Values
	body      any
	out       any
}

// errorBody cuerpo de error del servidor. detail suele ser string; en errores de validación
// puede ser una lista, en ese caso se ignora.
type errorBody struct {
	Code   string          `json:"code"`
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) do(ctx context.Context, k call) error {
	start := time.Now()
	resultado := "ok"
	defer func() { c.metrics.observe(k.recurso, k.operacion, resultado, time.Since(start)) }()

	u := c.baseURL + k.path
	if len(k.query) > 0 {
		u += "?" + k.query.Encode()
	}

	var reqBody io.Reader
	if k.body != nil {
		raw, err := json.Marshal(k.body)
		if err != nil {
			resultado = "red"
			return &domain.RemoteError{Err: fmt.Errorf("serializar request: %w", err)}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, k.method, u, reqBody)
	if err != nil {
		resultado = "red"
		return &domain.RemoteError{Err: fmt.Errorf("crear HTTP request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		resultado = "red"
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.log.Error().Err(err).Str("method", k.method).Str("path", k.path).Msg("API Error")
		return &domain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		resultado = "red"
		return &domain.RemoteError{Status: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resultado = "http_" + strconv.Itoa(resp.StatusCode/100) + "xx"
		rerr := remoteError(resp.StatusCode, raw)
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("method", k.method).
			Str("path", k.path).
			Str("detail", rerr.Detail).
			Msg("API Error")
		return rerr
	}

	if k.out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, k.out); err != nil {
		resultado = "red"
		return &domain.RemoteError{Status: resp.StatusCode, Err: fmt.Errorf("decodificar respuesta: %w", err)}
	}
	return nil
}

func remoteError(status int, raw []byte) *domain.RemoteError {
	rerr := &domain.RemoteError{Status: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return rerr
	}
	rerr.Code = body.Code
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		rerr.Detail = detail
	}
	return rerr
}

// IsStatus indica si err es un RemoteError con el status HTTP dado.
func IsStatus(err error, status int) bool {
	var re *domain.RemoteError
	return errors.As(err, &re) && re.Status == status
}

func itemPath(recurso string, id int, suffix ...string) string {
	p := "/" + recurso + "/" + strconv.Itoa(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}
