package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems              = errors.New("order must contain at least one item")
	ErrEmptyDriverID        = errors.New("driver id must not be empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidTransition    = errors.New("operation not allowed in current order status")
)

// Order is the booking aggregate. All state changes go through the
// transition methods below; fields are never mutated from outside the
// package, which keeps the status/driver invariant local to this file.
type Order struct {
	id            uuid.UUID
	customerID    uuid.UUID
	driverID      *uuid.UUID
	items         []Item
	totalPrice    Money
	timeSlotID    uuid.UUID
	scheduledDate time.Time
	status        Status
	paymentMethod PaymentMethod
	pickup        Location
	delivery      Location
	createdAt     time.Time
	updatedAt     time.Time
}

func NewOrder(
	customerID uuid.UUID,
	timeSlotID uuid.UUID,
	scheduledDate time.Time,
	paymentMethod PaymentMethod,
	pickup, delivery Location,
	items []Item,
	now time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if !paymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	o := &Order{
		id:            uuid.New(),
		customerID:    customerID,
		items:         append([]Item(nil), items...),
		timeSlotID:    timeSlotID,
		scheduledDate: truncateToDate(scheduledDate),
		status:        StatusRequested,
		paymentMethod: paymentMethod,
		pickup:        pickup,
		delivery:      delivery,
		createdAt:     now,
		updatedAt:     now,
	}
	o.recalculateTotal()
	return o, nil
}

func ReconstructOrder(
	id, customerID uuid.UUID,
	driverID *uuid.UUID,
	items []Item,
	totalPrice Money,
	timeSlotID uuid.UUID,
	scheduledDate time.Time,
	status Status,
	paymentMethod PaymentMethod,
	pickup, delivery Location,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		customerID:    customerID,
		driverID:      driverID,
		items:         items,
		totalPrice:    totalPrice,
		timeSlotID:    timeSlotID,
		scheduledDate: scheduledDate,
		status:        status,
		paymentMethod: paymentMethod,
		pickup:        pickup,
		delivery:      delivery,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// AddItem appends a line item. Only allowed while the order is still
// Requested; after confirmation the item list is fixed.
func (o *Order) AddItem(item Item, now time.Time) error {
	if o.status != StatusRequested {
		return ErrInvalidTransition
	}
	o.items = append(o.items, item)
	o.recalculateTotal()
	o.updatedAt = now
	return nil
}

// UpdateDetails reschedules the order. Only allowed while Requested and no
// driver has been assigned.
func (o *Order) UpdateDetails(timeSlotID uuid.UUID, scheduledDate time.Time, pickup, delivery Location, now time.Time) error {
	if o.status != StatusRequested || o.driverID != nil {
		return ErrInvalidTransition
	}
	o.timeSlotID = timeSlotID
	o.scheduledDate = truncateToDate(scheduledDate)
	o.pickup = pickup
	o.delivery = delivery
	o.updatedAt = now
	return nil
}

// Confirm moves the order out of Requested once payment has completed.
func (o *Order) Confirm(now time.Time) error {
	if o.status != StatusRequested {
		return ErrInvalidTransition
	}
	o.status = StatusConfirmed
	o.updatedAt = now
	return nil
}

// AssignDriver sets the driver and moves the order to DriverAssigned.
// Re-assignment while already DriverAssigned is permitted.
func (o *Order) AssignDriver(driverID uuid.UUID, now time.Time) error {
	if driverID == uuid.Nil {
		return ErrEmptyDriverID
	}
	if o.status != StatusConfirmed && o.status != StatusDriverAssigned {
		return ErrInvalidTransition
	}
	id := driverID
	o.driverID = &id
	o.status = StatusDriverAssigned
	o.updatedAt = now
	return nil
}

// AdvanceStatus performs a single forward fulfillment step. Backward and
// skipping transitions are rejected.
func (o *Order) AdvanceStatus(next Status, now time.Time) error {
	if !next.IsValid() || !o.status.CanAdvanceTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// Cancel is allowed from Requested or Confirmed only. Orders are never
// deleted; cancellation is the soft terminal state.
func (o *Order) Cancel(now time.Time) error {
	if !o.status.IsCancellable() {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

func (o *Order) recalculateTotal() {
	var total Money
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalPrice = total
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) CustomerID() uuid.UUID        { return o.customerID }
func (o *Order) DriverID() *uuid.UUID         { return o.driverID }
func (o *Order) Items() []Item                { return o.items }
func (o *Order) TotalPrice() Money            { return o.totalPrice }
func (o *Order) TimeSlotID() uuid.UUID        { return o.timeSlotID }
func (o *Order) ScheduledDate() time.Time     { return o.scheduledDate }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Pickup() Location             { return o.pickup }
func (o *Order) Delivery() Location           { return o.delivery }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
