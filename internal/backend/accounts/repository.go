package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

type Repository interface {
	// Create asigna ID. Devuelve ErrUsernameTaken / ErrEmailTaken ante duplicados.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
