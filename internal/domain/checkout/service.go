package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"petstore-client/internal/domain/cart"
	"petstore-client/internal/platform/logger"
)

var (
	ErrEmptyCart             = errors.New("checkout: cart is empty")
	ErrInvalidDeliveryMethod = errors.New("checkout: delivery method must be pickup or delivery")
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

// OrderCreator crea una orden en el backend (RequestClient.CreateOrder).
type OrderCreator interface {
	CreateOrder(ctx context.Context, orderData any) (json.RawMessage, error)
}

// Cart es lo que checkout usa del carrito.
type Cart interface {
	GetCart(ctx context.Context) []cart.Item
	RemoveFromCart(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

type Input struct {
	DeliveryMethod DeliveryMethod // vacío => pickup
	PickupDate     *time.Time
	RecipientName  string
}

type Result struct {
	Orders []json.RawMessage
}

type Service struct {
	cart   Cart
	orders OrderCreator
	log    logger.Logger
}

func NewService(c Cart, orders OrderCreator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		cart:   c,
		orders: orders,
		log:    log.With(map[string]any{"component": "checkout"}),
	}
}

// orderRequest es el payload que espera /orders/orders/.
type orderRequest struct {
	Pet            any            `json:"pet"`
	Quantity       int            `json:"quantity"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PickupDate     string         `json:"pickup_date,omitempty"`
	RecipientName  string         `json:"recipient_name,omitempty"`
}

// Checkout crea una orden por item del carrito. Cada item ordenado sale del
// carrito apenas el backend lo acepta; ante el primer error se corta y los
// items restantes quedan en el carrito. Si todo sale bien el carrito se borra.
func (s *Service) Checkout(ctx context.Context, in Input) (Result, error) {
	method := in.DeliveryMethod
	if method == "" {
		method = DeliveryPickup
	}
	if method != DeliveryPickup && method != DeliveryDelivery {
		return Result{}, ErrInvalidDeliveryMethod
	}

	items := s.cart.GetCart(ctx)
	if len(items) == 0 {
		return Result{}, ErrEmptyCart
	}

	var pickup string
	if in.PickupDate != nil {
		pickup = in.PickupDate.Format("2006-01-02")
	}

	res := Result{Orders: make([]json.RawMessage, 0, len(items))}
	for _, it := range items {
		order, err := s.orders.CreateOrder(ctx, orderRequest{
			Pet:            petRef(it.ItemID),
			Quantity:       it.Quantity,
			DeliveryMethod: method,
			PickupDate:     pickup,
			RecipientName:  strings.TrimSpace(in.RecipientName),
		})
		if err != nil {
			s.log.Warn("checkout stopped", map[string]any{
				"item_id": it.ItemID,
				"placed":  len(res.Orders),
				"error":   err,
			})
			return res, fmt.Errorf("checkout: order for item %s: %w", it.ItemID, err)
		}
		res.Orders = append(res.Orders, order)

		if err := s.cart.RemoveFromCart(ctx, it.ItemID); err != nil {
			return res, err
		}
	}

	if err := s.cart.ClearCart(ctx); err != nil {
		return res, err
	}

	s.log.Info("checkout completed", map[string]any{"orders": len(res.Orders)})
	return res, nil
}

// petRef manda ids numéricos como número JSON (el backend usa PK enteras).
func petRef(id string) any {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return json.Number(id)
	}
	return id
}
