package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"petstore-client/internal/backend/catalog"
	"petstore-client/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotPending   = errors.New("order is not pending")
)

// ValidationError describe un error de un campo concreto del pedido.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// Stock es la parte del catálogo que usan las órdenes.
type Stock interface {
	GetPet(ctx context.Context, id int64) (catalog.Pet, error)
	ReserveStock(ctx context.Context, petID int64, qty int) (catalog.Pet, error)
	ReleaseStock(ctx context.Context, petID int64, qty int) error
}

// Actor es quien hace el request.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

type Service struct {
	repo  Repository
	stock Stock
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, stock Stock, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		repo:  repo,
		stock: stock,
		log:   log.With(map[string]any{"component": "orders"}),
		now:   time.Now,
	}
}

type CreateInput struct {
	PetID          int64
	Quantity       int
	DeliveryMethod DeliveryMethod
	PickupDate     *time.Time
	RecipientName  string
}

func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (Order, error) {
	if in.DeliveryMethod == "" {
		in.DeliveryMethod = DeliveryPickup
	}
	in.RecipientName = strings.TrimSpace(in.RecipientName)

	if err := validateCreate(in); err != nil {
		return Order{}, err
	}

	pet, err := s.stock.GetPet(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Order{}, invalid("pet", "pet does not exist")
		}
		return Order{}, err
	}
	if !pet.IsAvailable {
		return Order{}, invalid("pet", "pet is not for sale")
	}
	if pet.StockQuantity < in.Quantity {
		return Order{}, invalid("pet", fmt.Sprintf("insufficient stock, only %d left", pet.StockQuantity))
	}

	// El stock se descuenta antes de persistir la orden y se devuelve si falla.
	if _, err := s.stock.ReserveStock(ctx, pet.ID, in.Quantity); err != nil {
		if errors.Is(err, catalog.ErrInsufficientStock) || errors.Is(err, catalog.ErrNotForSale) {
			return Order{}, invalid("pet", err.Error())
		}
		return Order{}, err
	}

	now := s.now()
	o, err := s.repo.Create(ctx, Order{
		Number:         uuid.NewString(),
		UserID:         actor.UserID,
		PetID:          pet.ID,
		Quantity:       in.Quantity,
		TotalPrice:     pet.Price * float64(in.Quantity),
		Status:         StatusPending,
		DeliveryMethod: in.DeliveryMethod,
		PickupDate:     in.PickupDate,
		RecipientName:  in.RecipientName,
		OrderDate:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if rerr := s.stock.ReleaseStock(ctx, pet.ID, in.Quantity); rerr != nil {
			s.log.Error("release stock after failed create", map[string]any{
				"pet_id":   pet.ID,
				"quantity": in.Quantity,
				"error":    rerr,
			})
		}
		return Order{}, err
	}
	return o, nil
}

// validateCreate cubre las reglas que dependen de la combinación de campos.
// Tipos y rangos los valida el handler.
func validateCreate(in CreateInput) error {
	switch in.DeliveryMethod {
	case DeliveryPickup:
		if in.PickupDate == nil {
			return invalid("pickup_date", "pickup date is required for pickup orders")
		}
		if in.RecipientName == "" {
			return invalid("recipient_name", "recipient name is required")
		}
	case DeliveryDelivery:
		if in.RecipientName == "" {
			return invalid("recipient_name", "recipient name is required")
		}
	}
	return nil
}

// List: un admin ve todo, el resto sólo lo suyo.
func (s *Service) List(ctx context.Context, actor Actor) ([]Order, error) {
	if actor.IsAdmin {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUser(ctx, actor.UserID)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Cancel pasa una orden pending a cancelled y devuelve el stock.
// La transición es condicional en el repo: de dos cancels concurrentes
// sólo uno devuelve stock.
func (s *Service) Cancel(ctx context.Context, actor Actor, id int64) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != actor.UserID && !actor.IsAdmin {
		// Igual que un 404 para no filtrar órdenes ajenas.
		return Order{}, ErrNotFound
	}
	if !o.CanBeCancelled() {
		return Order{}, ErrNotPending
	}

	cancelled, err := s.repo.UpdateStatus(ctx, id, StatusPending, StatusCancelled, s.now())
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			return Order{}, ErrNotPending
		}
		return Order{}, err
	}

	if err := s.stock.ReleaseStock(ctx, o.PetID, o.Quantity); err != nil {
		if _, rerr := s.repo.UpdateStatus(ctx, id, StatusCancelled, StatusPending, s.now()); rerr != nil {
			s.log.Error("revert cancel failed", map[string]any{"order_id": id, "error": rerr})
		}
		return Order{}, fmt.Errorf("release stock: %w", err)
	}
	return cancelled, nil
}
