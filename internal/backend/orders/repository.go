package orders

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrStatusConflict = errors.New("order status changed")
)

type Repository interface {
	// Create asigna ID.
	Create(ctx context.Context, o Order) (Order, error)
	// UpdateStatus pasa la orden de from a to en un solo paso.
	// Si el status actual no es from devuelve ErrStatusConflict.
	UpdateStatus(ctx context.Context, id int64, from, to Status, at time.Time) (Order, error)
	GetByID(ctx context.Context, id int64) (Order, error)
	// List devuelve todas las órdenes, más recientes primero.
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
}
