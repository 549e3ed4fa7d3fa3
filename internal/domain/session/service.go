package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"petstore-client/internal/platform/logger"
	"petstore-client/internal/ports/kv"
)

// Keys del store.
const (
	TokenKey   = "access_token"
	RefreshKey = "refresh_token"
)

var (
	ErrMissingToken       = errors.New("session: token missing in response")
	ErrNotLoggedIn        = errors.New("session: no refresh token stored")
	ErrMissingCredentials = errors.New("session: username and password required")
)

// Authenticator es lo que la sesión necesita de la API.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (json.RawMessage, error)
	RefreshToken(ctx context.Context, refresh string) (json.RawMessage, error)
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager guarda y entrega el token de sesión. Implementa petstore.TokenSource.
type Manager struct {
	store kv.Store
	log   logger.Logger
}

func NewManager(store kv.Store, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{store: store, log: log.With(map[string]any{"component": "session"})}
}

// Token devuelve el access token guardado. Un error de lectura cuenta como
// "sin token" (se loguea).
func (m *Manager) Token(ctx context.Context) (string, bool) {
	v, ok, err := m.store.Get(ctx, TokenKey)
	if err != nil {
		m.log.Warn("read token failed", map[string]any{"error": err})
		return "", false
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	_, ok := m.Token(ctx)
	return ok
}

// SetTokens guarda access y, si viene, refresh.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	access = strings.TrimSpace(access)
	if access == "" {
		return ErrMissingToken
	}
	if err := m.store.Set(ctx, TokenKey, access); err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	if refresh = strings.TrimSpace(refresh); refresh != "" {
		if err := m.store.Set(ctx, RefreshKey, refresh); err != nil {
			return fmt.Errorf("session: save refresh token: %w", err)
		}
	}
	return nil
}

// Login autentica contra la API y guarda el par de tokens.
func (m *Manager) Login(ctx context.Context, api Authenticator, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrMissingCredentials
	}

	raw, err := api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	if err := m.SetTokens(ctx, pair.Access, pair.Refresh); err != nil {
		return err
	}

	m.log.Info("logged in", map[string]any{"username": username})
	return nil
}

// Refresh cambia el refresh token guardado por un access token nuevo.
func (m *Manager) Refresh(ctx context.Context, api Authenticator) error {
	refresh, ok, err := m.store.Get(ctx, RefreshKey)
	if err != nil {
		return fmt.Errorf("session: read refresh token: %w", err)
	}
	if !ok || strings.TrimSpace(refresh) == "" {
		return ErrNotLoggedIn
	}

	raw, err := api.RefreshToken(ctx, refresh)
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	// algunos backends rotan el refresh; si no viene, se conserva el actual
	return m.SetTokens(ctx, pair.Access, pair.Refresh)
}

// Logout borra ambos tokens.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, TokenKey); err != nil {
		return fmt.Errorf("session: remove token: %w", err)
	}
	if err := m.store.Remove(ctx, RefreshKey); err != nil {
		return fmt.Errorf("session: remove refresh token: %w", err)
	}
	return nil
}
