package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petstore-client/internal/backend/catalog"
)

type catalogRepo struct {
	mu     sync.RWMutex
	cats   map[int64]catalog.Category
	pets   map[int64]catalog.Pet
	catSeq int64
	petSeq int64
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{
		cats: make(map[int64]catalog.Category),
		pets: make(map[int64]catalog.Pet),
	}
}

func (r *catalogRepo) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.cats {
		if strings.EqualFold(existing.Name, c.Name) {
			return catalog.Category{}, errors.New("category already exists")
		}
	}
	r.catSeq++
	c.ID = r.catSeq
	r.cats[c.ID] = c
	return c, nil
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Category, 0, len(r.cats))
	for _, c := range r.cats {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *catalogRepo) CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cats[p.CategoryID]; !ok {
		return catalog.Pet{}, errors.New("category does not exist")
	}
	r.petSeq++
	p.ID = r.petSeq
	r.pets[p.ID] = p
	return p, nil
}

func (r *catalogRepo) GetPet(ctx context.Context, id int64) (catalog.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pets[id]
	if !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}
	return p, nil
}

func (r *catalogRepo) ListPets(ctx context.Context) ([]catalog.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *catalogRepo) AdjustStock(ctx context.Context, id int64, delta int) (catalog.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pets[id]
	if !ok {
		return catalog.Pet{}, catalog.ErrNotFound
	}
	if p.StockQuantity+delta < 0 {
		return catalog.Pet{}, catalog.ErrInsufficientStock
	}
	p.StockQuantity += delta
	r.pets[id] = p
	return p, nil
}
