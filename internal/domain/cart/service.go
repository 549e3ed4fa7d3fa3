package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"petstore-client/internal/platform/logger"
	"petstore-client/internal/ports/kv"
)

var (
	ErrInvalidItemID    = errors.New("cart: item id required")
	ErrInvalidQuantity  = errors.New("cart: quantity must be positive")
	ErrQuantityOverflow = errors.New("cart: quantity too large")
)

// Service es el carrito persistido en un kv.Store.
// Las mutaciones son read-modify-write serializadas con mu.
type Service struct {
	mu    sync.Mutex
	store kv.Store
	badge Badge // opcional
	log   logger.Logger
}

// NewService crea el carrito. badge puede ser nil: UpdateCartCount no hace nada visible.
func NewService(store kv.Store, badge Badge, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		store: store,
		badge: badge,
		log:   log.With(map[string]any{"component": "cart"}),
	}
}

// GetCart devuelve el carrito guardado. Sin key o con contenido corrupto
// devuelve un carrito vacío, nunca error.
func (s *Service) GetCart(ctx context.Context) []Item {
	raw, ok, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		s.log.Warn("read cart failed", map[string]any{"error": err})
		return []Item{}
	}
	if !ok {
		return []Item{}
	}
	return decode(raw)
}

// AddToCart suma quantity al item existente o lo agrega al final.
func (s *Service) AddToCart(ctx context.Context, itemID string, quantity int) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return ErrInvalidItemID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	items := s.GetCart(ctx)
	found := false
	for i := range items {
		if items[i].ItemID == itemID {
			if quantity > math.MaxInt-items[i].Quantity {
				s.mu.Unlock()
				return ErrQuantityOverflow
			}
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{ItemID: itemID, Quantity: quantity})
	}
	err := s.save(ctx, items)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.UpdateCartCount(ctx)
	return nil
}

// RemoveFromCart saca todas las entradas con itemID.
func (s *Service) RemoveFromCart(ctx context.Context, itemID string) error {
	itemID = strings.TrimSpace(itemID)

	s.mu.Lock()
	items := s.GetCart(ctx)
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	err := s.save(ctx, kept)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.UpdateCartCount(ctx)
	return nil
}

// ClearCart borra la key del carrito.
func (s *Service) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	err := s.store.Remove(ctx, StorageKey)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}

	s.UpdateCartCount(ctx)
	return nil
}

// UpdateCartCount recalcula el total y lo pinta en el badge (si hay).
// Devuelve el total.
func (s *Service) UpdateCartCount(ctx context.Context) int {
	count := Total(s.GetCart(ctx))
	if s.badge != nil {
		s.badge.Render(count, count > 0)
	}
	return count
}

func (s *Service) save(ctx context.Context, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}

// decode trata cualquier valor que no sea un array de items válidos como vacío.
func decode(raw string) []Item {
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []Item{}
	}
	for _, it := range items {
		if strings.TrimSpace(it.ItemID) == "" || it.Quantity <= 0 {
			return []Item{}
		}
	}
	return items
}
