package petstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

var ErrEmptyID = errors.New("petstore: id required")

// Auth

func (c *Client) Login(ctx context.Context, username, password string) (json.RawMessage, error) {
	return c.postJSON(ctx, "/auth/token/", map[string]string{
		"username": username,
		"password": password,
	})
}

// Register manda userData tal cual (objeto definido por el backend).
func (c *Client) Register(ctx context.Context, userData any) (json.RawMessage, error) {
	return c.postJSON(ctx, "/auth/users/register/", userData)
}

func (c *Client) RefreshToken(ctx context.Context, refresh string) (json.RawMessage, error) {
	return c.postJSON(ctx, "/auth/token/refresh/", map[string]string{
		"refresh": refresh,
	})
}

func (c *Client) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/auth/users/profile/", nil)
}

// Pets

// GetPets lista mascotas; params vacío => sin "?".
func (c *Client) GetPets(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return c.Request(ctx, PetsPath(params), nil)
}

func (c *Client) GetPet(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	return c.Request(ctx, "/pets/pets/"+url.PathEscape(id)+"/", nil)
}

func (c *Client) GetCategories(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/pets/categories/", nil)
}

// Orders

// CreateOrder manda orderData tal cual.
func (c *Client) CreateOrder(ctx context.Context, orderData any) (json.RawMessage, error) {
	return c.postJSON(ctx, "/orders/orders/", orderData)
}

func (c *Client) GetOrders(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/orders/orders/", nil)
}

func (c *Client) GetUserOrders(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, "/orders/orders/user_orders/", nil)
}

func (c *Client) CancelOrder(ctx context.Context, id string) (json.RawMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}
	return c.Request(ctx, "/orders/orders/"+url.PathEscape(id)+"/cancel/", &RequestOptions{
		Method: http.MethodPost,
	})
}

// PetsPath arma el endpoint de listado con su query string.
func PetsPath(params url.Values) string {
	const base = "/pets/pets/"
	if q := params.Encode(); q != "" {
		return base + "?" + q
	}
	return base
}
