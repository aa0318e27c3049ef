package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/domain/timeslot"
	"laundry-orders/internal/events"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/shared"
)

const slotDateFormat = "2006-01-02"

// SlotCapacityGuard reserves capacity in a (time slot, date) pair and
// persists the new order in one unit of work.
//
// The Redis lock is a contention-reducing fast path, not the correctness
// guarantee: the count-then-insert runs in a serializable transaction, so
// a lock-service outage can increase aborts but never over-book a slot.
type SlotCapacityGuard struct {
	lock        LockService
	uow         shared.UnitOfWork
	logger      *slog.Logger
	waitTimeout time.Duration
}

func NewSlotCapacityGuard(lock LockService, uow shared.UnitOfWork, logger *slog.Logger, waitTimeout time.Duration) *SlotCapacityGuard {
	if waitTimeout <= 0 {
		waitTimeout = 30 * time.Second
	}
	return &SlotCapacityGuard{
		lock:        lock,
		uow:         uow,
		logger:      logger,
		waitTimeout: waitTimeout,
	}
}

// Reserve counts the non-cancelled orders already booked into the slot on
// scheduledDate and, when below capacity, persists the order produced by
// orderFactory within the same transaction. Fails with ErrCapacityExceeded
// when the slot is full and ErrLockTimeout when the slot lock cannot be
// acquired in time; neither is retried internally.
func (g *SlotCapacityGuard) Reserve(
	ctx context.Context,
	slot *timeslot.TimeSlot,
	scheduledDate time.Time,
	orderFactory func() (*order.Order, error),
) (*order.Order, error) {
	key := slotLockKey(slot.ID().String(), scheduledDate)

	token, err := g.lock.Acquire(ctx, key, g.waitTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Release must run on every exit path, including when the request
		// context was cancelled mid-transaction; a stuck slot lock blocks
		// all bookings for that slot/date until the TTL expires.
		if releaseErr := g.lock.Release(context.WithoutCancel(ctx), key, token); releaseErr != nil {
			g.logger.Warn("failed to release slot lock", "key", key, "error", releaseErr.Error())
		}
	}()

	var reserved *order.Order
	err = g.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		count, countErr := tx.Orders().CountActive(ctx, slot.ID(), scheduledDate)
		if countErr != nil {
			return errs.Mark(countErr, errs.ErrDatabaseOperationFailed)
		}
		if count >= slot.MaxCapacity() {
			return errs.ErrCapacityExceeded
		}

		o, factoryErr := orderFactory()
		if factoryErr != nil {
			return factoryErr
		}

		if createErr := tx.Orders().Create(ctx, o); createErr != nil {
			return errs.Mark(createErr, errs.ErrDatabaseOperationFailed)
		}

		created := events.OrderCreated{
			OrderID:         o.ID(),
			CustomerID:      o.CustomerID(),
			TotalPriceCents: o.TotalPrice().Cents(),
			At:              o.CreatedAt(),
		}
		if outboxErr := tx.Outbox().Insert(ctx, created); outboxErr != nil {
			return errs.Mark(outboxErr, errs.ErrDatabaseOperationFailed)
		}

		reserved = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reserved, nil
}

// Rebook moves an existing order into the slot on scheduledDate, counting
// capacity on the target pair the same way Reserve does. The order's own row
// is excluded from the count so a reschedule within the same slot/date never
// competes with itself. mutate applies the actual change to the loaded order
// before it is written back.
func (g *SlotCapacityGuard) Rebook(
	ctx context.Context,
	slot *timeslot.TimeSlot,
	scheduledDate time.Time,
	orderID uuid.UUID,
	mutate func(o *order.Order) error,
) (*order.Order, error) {
	key := slotLockKey(slot.ID().String(), scheduledDate)

	token, err := g.lock.Acquire(ctx, key, g.waitTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := g.lock.Release(context.WithoutCancel(ctx), key, token); releaseErr != nil {
			g.logger.Warn("failed to release slot lock", "key", key, "error", releaseErr.Error())
		}
	}()

	var rebooked *order.Order
	err = g.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, getErr := tx.Orders().Get(ctx, orderID)
		if getErr != nil {
			return markOrderLoadErr(getErr)
		}

		count, countErr := tx.Orders().CountActiveExcluding(ctx, slot.ID(), scheduledDate, orderID)
		if countErr != nil {
			return errs.Mark(countErr, errs.ErrDatabaseOperationFailed)
		}
		if count >= slot.MaxCapacity() {
			return errs.ErrCapacityExceeded
		}

		if mutateErr := mutate(o); mutateErr != nil {
			return mutateErr
		}

		if updateErr := tx.Orders().Update(ctx, o); updateErr != nil {
			return errs.Mark(updateErr, errs.ErrDatabaseOperationFailed)
		}

		rebooked = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rebooked, nil
}

func slotLockKey(timeSlotID string, date time.Time) string {
	return fmt.Sprintf("slot:%s:%s", timeSlotID, date.Format(slotDateFormat))
}
