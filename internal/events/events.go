package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a typed fact emitted after a successful state change and
// consumed by collaborators this core does not implement.
type Event interface {
	EventType() string
	OccurredAt() time.Time
}

const (
	TypeOrderCreated     = "order.created"
	TypeDriverAssigned   = "order.driver_assigned"
	TypePaymentCompleted = "payment.completed"
)

type OrderCreated struct {
	OrderID         uuid.UUID `json:"order_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	TotalPriceCents int64     `json:"total_price_cents"`
	At              time.Time `json:"occurred_at"`
}

func (e OrderCreated) EventType() string     { return TypeOrderCreated }
func (e OrderCreated) OccurredAt() time.Time { return e.At }

type DriverAssigned struct {
	OrderID    uuid.UUID `json:"order_id"`
	DriverID   uuid.UUID `json:"driver_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	At         time.Time `json:"occurred_at"`
}

func (e DriverAssigned) EventType() string     { return TypeDriverAssigned }
func (e DriverAssigned) OccurredAt() time.Time { return e.At }

type PaymentCompleted struct {
	PaymentID   uuid.UUID  `json:"payment_id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	At          time.Time  `json:"occurred_at"`
}

func (e PaymentCompleted) EventType() string     { return TypePaymentCompleted }
func (e PaymentCompleted) OccurredAt() time.Time { return e.At }
