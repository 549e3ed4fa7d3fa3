package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"petstore-client/internal/backend/orders"
)

type orderRepo struct {
	mu   sync.RWMutex
	byID map[int64]orders.Order
	seq  int64
}

func NewOrderRepo() orders.Repository {
	return &orderRepo{
		byID: make(map[int64]orders.Order),
	}
}

func (r *orderRepo) Create(ctx context.Context, o orders.Order) (orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	o.ID = r.seq
	r.byID[o.ID] = o
	return o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, from, to orders.Status, at time.Time) (orders.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.byID[id]
	if !exists {
		return orders.Order{}, orders.ErrNotFound
	}
	if o.Status != from {
		return orders.Order{}, orders.ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = at
	r.byID[id] = o
	return o, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return orders.Order{}, orders.ErrNotFound
	}
	return o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]orders.Order, error) {
	return r.filter(func(orders.Order) bool { return true }), nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]orders.Order, error) {
	return r.filter(func(o orders.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepo) filter(keep func(orders.Order) bool) []orders.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, o := range r.byID {
		if keep(o) {
			out = append(out, o)
		}
	}

	// Más recientes primero; el ID desempata órdenes del mismo instante.
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}
