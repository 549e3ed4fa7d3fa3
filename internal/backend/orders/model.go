package orders

import "time"

// Status
// @Enum pending,completed,cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// DeliveryMethod
// @Enum pickup,delivery
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

type Order struct {
	ID     int64
	Number string // uuid, referencia para el cliente
	UserID int64
	PetID  int64

	Quantity   int
	TotalPrice float64
	Status     Status

	DeliveryMethod DeliveryMethod
	PickupDate     *time.Time // sólo fecha
	RecipientName  string

	OrderDate time.Time
	UpdatedAt time.Time
}

func (o Order) CanBeCancelled() bool {
	return o.Status == StatusPending
}
