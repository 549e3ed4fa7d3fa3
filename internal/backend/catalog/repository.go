package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repository interface {
	CreateCategory(ctx context.Context, c Category) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	CreatePet(ctx context.Context, p Pet) (Pet, error)
	GetPet(ctx context.Context, id int64) (Pet, error)
	ListPets(ctx context.Context) ([]Pet, error)

	// AdjustStock suma delta al stock de forma atómica.
	// Devuelve ErrInsufficientStock si el resultado quedaría negativo.
	AdjustStock(ctx context.Context, id int64, delta int) (Pet, error)
}
