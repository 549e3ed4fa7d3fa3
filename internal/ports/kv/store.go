package kv

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("kv: empty key")

// Store es el key-value store persistente del cliente (token de sesión, carrito).
// Get devuelve ok=false si la key no existe; no es un error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
