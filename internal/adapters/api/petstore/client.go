package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petstore-client/internal/platform/httpclient"
	"petstore-client/internal/platform/logger"
)

// BasePath se antepone a todos los endpoints.
const BasePath = "/api"

var ErrMalformedResponse = errors.New("petstore: malformed json response")

// TokenSource entrega el token de sesión guardado, si existe.
// Se consulta en cada request.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Config del cliente de la API.
type Config struct {
	// ServerURL es el origin del backend (p.ej. http://localhost:8000);
	// BasePath se agrega acá.
	ServerURL string

	Timeout   time.Duration
	Transport http.RoundTripper // opcional (tests)
}

type Client struct {
	http   *httpclient.Client
	tokens TokenSource
	log    logger.Logger
}

// NewClient crea el cliente. tokens puede ser nil (nunca manda Authorization).
func NewClient(cfg Config, tokens TokenSource, log logger.Logger) (*Client, error) {
	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)

	server := strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if server == "" {
		return nil, errors.New("petstore: server url required")
	}
	if err := hc.SetBaseURL(server + BasePath); err != nil {
		return nil, fmt.Errorf("petstore: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		http:   hc,
		tokens: tokens,
		log:    log.With(map[string]any{"component": "petstore-api"}),
	}, nil
}

// RequestOptions son las opciones de Request. Todas opcionales.
type RequestOptions struct {
	Method  string            // default GET
	Body    []byte            // payload ya serializado
	Headers map[string]string // pisan los defaults
}

// Request es la primitiva de todas las operaciones: arma headers
// (Content-Type JSON + overrides del caller + Bearer si hay token),
// llama a BasePath+endpoint y devuelve el JSON de una respuesta 2xx.
//
// Un status no-2xx devuelve *httpclient.RequestError; una falla de transporte
// o un body que no es JSON se devuelven envueltos. Toda falla se loguea
// una vez antes de devolverse.
func (c *Client) Request(ctx context.Context, endpoint string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		headers.Set(k, v)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			headers.Set("Authorization", "Bearer "+token)
		}
	}

	raw, err := c.http.Do(ctx, method, endpoint, headers, opts.Body)
	if err != nil {
		c.logFailure(method, endpoint, err)
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(raw) {
		err := fmt.Errorf("%w: %s %s", ErrMalformedResponse, method, endpoint)
		c.logFailure(method, endpoint, err)
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *Client) logFailure(method, endpoint string, err error) {
	fields := map[string]any{
		"method":   method,
		"endpoint": endpoint,
		"error":    err,
	}
	if status := httpclient.StatusCode(err); status != 0 {
		fields["status"] = status
	}
	c.log.Error("api request failed", fields)
}

// postJSON serializa payload y hace POST.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("petstore: marshal body: %w", err)
	}
	return c.Request(ctx, endpoint, &RequestOptions{
		Method: http.MethodPost,
		Body:   b,
	})
}

// Decode decodifica el resultado de una operación en out.
func Decode(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
