package commands

import (
	"context"
	"errors"
	"time"

	"laundry-orders/internal/domain/identity"
	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/events"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/pkg/clock"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderItemParams struct {
	ServiceID   uuid.UUID
	ServiceName string
	PriceCents  int64
	Quantity    int
}

type CreateOrderParams struct {
	CustomerID    uuid.UUID
	TimeSlotID    uuid.UUID
	ScheduledDate time.Time
	PaymentMethod order.PaymentMethod
	Pickup        LocationParams
	Delivery      LocationParams
	Items         []OrderItemParams
}

type UpdateOrderDetailsParams struct {
	TimeSlotID    uuid.UUID
	ScheduledDate time.Time
	Pickup        LocationParams
	Delivery      LocationParams
}

type LocationParams struct {
	Latitude  float64
	Longitude float64
}

type OrderCommands interface {
	CreateOrder(ctx context.Context, p CreateOrderParams) (*order.Order, error)
	UpdateOrderDetails(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role, p UpdateOrderDetailsParams) error
	ConfirmOrder(ctx context.Context, orderID, paymentID uuid.UUID, amountCents int64) error
	AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) error
	AdvanceOrderStatus(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role, next order.Status) error
	CancelOrder(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role) error
}

type orderCommandsImpl struct {
	guard     *SlotCapacityGuard
	uow       shared.UnitOfWork
	publisher events.Publisher
	clock     clock.Clock
}

func NewOrderCommands(
	guard *SlotCapacityGuard,
	uow shared.UnitOfWork,
	publisher events.Publisher,
	clock clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		guard:     guard,
		uow:       uow,
		publisher: publisher,
		clock:     clock,
	}
}

// CreateOrder reserves slot capacity and persists the new order in one
// unit of work; the order starts at Requested.
func (c *orderCommandsImpl) CreateOrder(ctx context.Context, p CreateOrderParams) (*order.Order, error) {
	slot, err := c.uow.Reads().TimeSlotByID(ctx, p.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if err := slot.ValidateDate(p.ScheduledDate); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidArgument)
	}

	items, err := buildItems(p.Items)
	if err != nil {
		return nil, err
	}
	pickup, delivery, err := buildLocations(p.Pickup, p.Delivery)
	if err != nil {
		return nil, err
	}

	created, err := c.guard.Reserve(ctx, slot, p.ScheduledDate, func() (*order.Order, error) {
		o, factoryErr := order.NewOrder(
			p.CustomerID,
			slot.ID(),
			p.ScheduledDate,
			p.PaymentMethod,
			pickup, delivery,
			items,
			c.clock.Now(),
		)
		if factoryErr != nil {
			return nil, errs.Mark(factoryErr, errs.ErrInvalidArgument)
		}
		return o, nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, events.OrderCreated{
		OrderID:         created.ID(),
		CustomerID:      created.CustomerID(),
		TotalPriceCents: created.TotalPrice().Cents(),
		At:              created.CreatedAt(),
	})

	return created, nil
}

// UpdateOrderDetails reschedules a Requested order. The move goes through
// the capacity guard so the target slot/date is counted the same way a
// fresh booking is; the order's own booking never counts against the
// target, so staying on the same slot and date always succeeds.
func (c *orderCommandsImpl) UpdateOrderDetails(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role, p UpdateOrderDetailsParams) error {
	slot, err := c.uow.Reads().TimeSlotByID(ctx, p.TimeSlotID)
	if err != nil {
		return err
	}
	if err := slot.ValidateDate(p.ScheduledDate); err != nil {
		return errs.Mark(err, errs.ErrInvalidArgument)
	}
	pickup, delivery, err := buildLocations(p.Pickup, p.Delivery)
	if err != nil {
		return err
	}

	_, err = c.guard.Rebook(ctx, slot, p.ScheduledDate, orderID, func(o *order.Order) error {
		if ownErr := checkOrderActor(o, actorID, role); ownErr != nil {
			return ownErr
		}
		if updErr := o.UpdateDetails(slot.ID(), p.ScheduledDate, pickup, delivery, c.clock.Now()); updErr != nil {
			return markTransitionErr(updErr)
		}
		return nil
	})
	return err
}

// ConfirmOrder moves a paid order to Confirmed and records the payment
// completion event. The payment gateway interaction itself happens
// upstream; this is the command its webhook layer calls.
func (c *orderCommandsImpl) ConfirmOrder(ctx context.Context, orderID, paymentID uuid.UUID, amountCents int64) error {
	var completed events.PaymentCompleted
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, loadErr := tx.Orders().Get(ctx, orderID)
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		if confirmErr := o.Confirm(c.clock.Now()); confirmErr != nil {
			return markTransitionErr(confirmErr)
		}
		if updErr := tx.Orders().Update(ctx, o); updErr != nil {
			return updErr
		}

		oid := o.ID()
		completed = events.PaymentCompleted{
			PaymentID:   paymentID,
			CustomerID:  o.CustomerID(),
			OrderID:     &oid,
			AmountCents: amountCents,
			At:          c.clock.Now(),
		}
		return tx.Outbox().Insert(ctx, completed)
	})
	if err != nil {
		return err
	}

	c.publisher.Publish(ctx, completed)
	return nil
}

// AssignDriver is the direct administrator path. It bypasses the
// application workflow and must not be blocked by pending applications.
func (c *orderCommandsImpl) AssignDriver(ctx context.Context, orderID, driverID uuid.UUID) error {
	if driverID == uuid.Nil {
		return errs.Mark(order.ErrEmptyDriverID, errs.ErrInvalidArgument)
	}
	if _, err := c.uow.Reads().DriverByID(ctx, driverID); err != nil {
		return err
	}

	var assigned events.DriverAssigned
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, loadErr := tx.Orders().Get(ctx, orderID)
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		if assignErr := o.AssignDriver(driverID, c.clock.Now()); assignErr != nil {
			return markTransitionErr(assignErr)
		}
		if updErr := tx.Orders().Update(ctx, o); updErr != nil {
			return updErr
		}

		assigned = events.DriverAssigned{
			OrderID:    o.ID(),
			DriverID:   driverID,
			CustomerID: o.CustomerID(),
			At:         c.clock.Now(),
		}
		return tx.Outbox().Insert(ctx, assigned)
	})
	if err != nil {
		return err
	}

	c.publisher.Publish(ctx, assigned)
	return nil
}

func (c *orderCommandsImpl) AdvanceOrderStatus(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role, next order.Status) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, loadErr := tx.Orders().Get(ctx, orderID)
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		if ownErr := checkOrderActor(o, actorID, role); ownErr != nil {
			return ownErr
		}
		if advErr := o.AdvanceStatus(next, c.clock.Now()); advErr != nil {
			return markTransitionErr(advErr)
		}
		return tx.Orders().Update(ctx, o)
	})
}

func (c *orderCommandsImpl) CancelOrder(ctx context.Context, orderID, actorID uuid.UUID, role identity.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, loadErr := tx.Orders().Get(ctx, orderID)
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		if ownErr := checkOrderActor(o, actorID, role); ownErr != nil {
			return ownErr
		}
		if cancelErr := o.Cancel(c.clock.Now()); cancelErr != nil {
			return markTransitionErr(cancelErr)
		}
		return tx.Orders().Update(ctx, o)
	})
}

// checkOrderActor enforces that mutations on an existing order come from
// the customer who placed it or the driver currently assigned to it.
// Admins are exempt.
func checkOrderActor(o *order.Order, actorID uuid.UUID, role identity.Role) error {
	switch role {
	case identity.RoleAdmin:
		return nil
	case identity.RoleCustomer:
		if o.CustomerID() == actorID {
			return nil
		}
	case identity.RoleDriver:
		if d := o.DriverID(); d != nil && *d == actorID {
			return nil
		}
	}
	return errs.ErrOrderNotOwned
}

func buildItems(params []OrderItemParams) ([]order.Item, error) {
	items := make([]order.Item, 0, len(params))
	for _, p := range params {
		price, err := order.NewMoney(p.PriceCents)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidArgument)
		}
		item, err := order.NewItem(p.ServiceID, p.ServiceName, price, p.Quantity)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidArgument)
		}
		items = append(items, item)
	}
	return items, nil
}

func buildLocations(pickup, delivery LocationParams) (order.Location, order.Location, error) {
	p, err := order.NewLocation(pickup.Latitude, pickup.Longitude)
	if err != nil {
		return order.Location{}, order.Location{}, errs.Mark(err, errs.ErrInvalidArgument)
	}
	d, err := order.NewLocation(delivery.Latitude, delivery.Longitude)
	if err != nil {
		return order.Location{}, order.Location{}, errs.Mark(err, errs.ErrInvalidArgument)
	}
	return p, d, nil
}

func markOrderLoadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrOrderNotFound)
	}
	return err
}

func markTransitionErr(err error) error {
	switch {
	case errors.Is(err, order.ErrEmptyDriverID):
		return errs.Mark(err, errs.ErrInvalidArgument)
	case errors.Is(err, order.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrInvalidStateTransition)
	default:
		return err
	}
}
