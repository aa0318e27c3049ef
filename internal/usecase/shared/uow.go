package shared

import (
	"context"
	"time"

	"laundry-orders/internal/domain/driver"
	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/domain/timeslot"
	"laundry-orders/internal/events"

	"github.com/google/uuid"
)

// UnitOfWork runs command logic inside a database transaction. Within uses
// ReadCommitted, which is sufficient for single-order read-modify-write;
// WithinSerializable is reserved for the slot capacity reservation, where
// the count-then-insert must be serialized across instances even when the
// distributed lock is unavailable. Both retry serialization failures.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to command-side reads outside a transaction
	Reads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Applications() ApplicationRepository
	Outbox() OutboxRepository
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	// Get loads the order and its items with a row lock, serializing
	// concurrent commands on the same order.
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Update(ctx context.Context, o *order.Order) error
	// CountActive counts non-cancelled orders booked into a slot/date.
	CountActive(ctx context.Context, timeSlotID uuid.UUID, scheduledDate time.Time) (int, error)
	// CountActiveExcluding is CountActive minus one specific order, used
	// when rescheduling so the moved order never counts against itself.
	CountActiveExcluding(ctx context.Context, timeSlotID uuid.UUID, scheduledDate time.Time, excludeOrderID uuid.UUID) (int, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *driver.Application) error
	Get(ctx context.Context, id uuid.UUID) (*driver.Application, error)
	Update(ctx context.Context, a *driver.Application) error
	// ListAppliedByOrder returns the still-open applications for an order.
	ListAppliedByOrder(ctx context.Context, orderID uuid.UUID) ([]*driver.Application, error)
	HasAcceptedForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	ExistsForOrderAndDriver(ctx context.Context, orderID, driverID uuid.UUID) (bool, error)
}

// OutboxRepository records events in the same transaction as the mutation
// that produced them, so the drain job can deliver them at least once.
type OutboxRepository interface {
	Insert(ctx context.Context, event events.Event) error
}

type CommandReads interface {
	TimeSlotByID(ctx context.Context, id uuid.UUID) (*timeslot.TimeSlot, error)
	DriverByID(ctx context.Context, id uuid.UUID) (*driver.Driver, error)
}
