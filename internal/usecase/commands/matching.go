package commands

import (
	"context"

	"laundry-orders/internal/domain/driver"
	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/events"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/pkg/clock"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type MatchingCommands interface {
	Apply(ctx context.Context, driverID, orderID uuid.UUID) (uuid.UUID, error)
	Accept(ctx context.Context, applicationID uuid.UUID) error
	Reject(ctx context.Context, applicationID uuid.UUID) error
}

type matchingCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher events.Publisher
	clock     clock.Clock
}

func NewMatchingCommands(uow shared.UnitOfWork, publisher events.Publisher, clock clock.Clock) MatchingCommands {
	return &matchingCommandsImpl{
		uow:       uow,
		publisher: publisher,
		clock:     clock,
	}
}

// Apply records a driver's request to take an order. The order must be
// Confirmed with no accepted application or assigned driver, and the
// driver must be Available.
func (c *matchingCommandsImpl) Apply(ctx context.Context, driverID, orderID uuid.UUID) (uuid.UUID, error) {
	drv, err := c.uow.Reads().DriverByID(ctx, driverID)
	if err != nil {
		return uuid.Nil, err
	}
	if !drv.Status().CanApply() {
		return uuid.Nil, errs.ErrDriverUnavailable
	}

	var applicationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, loadErr := tx.Orders().Get(ctx, orderID)
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		if o.Status() != order.StatusConfirmed || o.DriverID() != nil {
			return errs.ErrOrderNotAvailable
		}

		accepted, checkErr := tx.Applications().HasAcceptedForOrder(ctx, orderID)
		if checkErr != nil {
			return checkErr
		}
		if accepted {
			return errs.ErrOrderNotAvailable
		}

		exists, checkErr := tx.Applications().ExistsForOrderAndDriver(ctx, orderID, driverID)
		if checkErr != nil {
			return checkErr
		}
		if exists {
			return errs.ErrOrderNotAvailable
		}

		app := driver.NewApplication(orderID, driverID, c.clock.Now())
		if createErr := tx.Applications().Create(ctx, app); createErr != nil {
			// The existence pre-check races with concurrent applies; the
			// unique (order_id, driver_id) index settles the loser here.
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return errs.Mark(createErr, errs.ErrOrderNotAvailable)
			}
			return createErr
		}
		applicationID = app.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return applicationID, nil
}

// Accept assigns the applicant to the order, marks the application
// Accepted and rejects every sibling Applied application in the same
// transaction, so there is no partial failure state. The first Accept to
// commit wins; any later Accept finds the order out of Confirmed (and the
// application already settled) and fails.
func (c *matchingCommandsImpl) Accept(ctx context.Context, applicationID uuid.UUID) error {
	var assigned events.DriverAssigned
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		app, loadErr := tx.Applications().Get(ctx, applicationID)
		if loadErr != nil {
			return markApplicationLoadErr(loadErr)
		}
		if app.IsSettled() {
			return errs.ErrInvalidStateTransition
		}

		o, loadErr := tx.Orders().Get(ctx, app.OrderID())
		if loadErr != nil {
			return markOrderLoadErr(loadErr)
		}
		// The application path only assigns out of Confirmed; re-assignment
		// of an already assigned order goes through the direct admin path.
		if o.Status() != order.StatusConfirmed {
			return errs.ErrInvalidStateTransition
		}
		if assignErr := o.AssignDriver(app.DriverID(), c.clock.Now()); assignErr != nil {
			return markTransitionErr(assignErr)
		}

		siblings, listErr := tx.Applications().ListAppliedByOrder(ctx, app.OrderID())
		if listErr != nil {
			return listErr
		}
		for _, sibling := range siblings {
			if sibling.ID() == app.ID() {
				continue
			}
			if rejectErr := sibling.Reject(); rejectErr != nil {
				return errs.Mark(rejectErr, errs.ErrInvalidStateTransition)
			}
			if updErr := tx.Applications().Update(ctx, sibling); updErr != nil {
				return updErr
			}
		}

		if acceptErr := app.Accept(); acceptErr != nil {
			return errs.Mark(acceptErr, errs.ErrInvalidStateTransition)
		}
		if updErr := tx.Applications().Update(ctx, app); updErr != nil {
			return updErr
		}
		if updErr := tx.Orders().Update(ctx, o); updErr != nil {
			return updErr
		}

		assigned = events.DriverAssigned{
			OrderID:    o.ID(),
			DriverID:   app.DriverID(),
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

func markApplicationLoadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrApplicationNotFound)
	}
	return err
}

// Reject settles a single application without touching the order.
func (c *matchingCommandsImpl) Reject(ctx context.Context, applicationID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		app, loadErr := tx.Applications().Get(ctx, applicationID)
		if loadErr != nil {
			return markApplicationLoadErr(loadErr)
		}
		if rejectErr := app.Reject(); rejectErr != nil {
			return errs.Mark(rejectErr, errs.ErrInvalidStateTransition)
		}
		return tx.Applications().Update(ctx, app)
	})
}
