package queries

import (
	"context"
	"time"

	"laundry-orders/internal/domain/identity"
	"laundry-orders/internal/pkg/errs"

	"github.com/google/uuid"
)

type OrderItemView struct {
	ID          uuid.UUID
	ServiceID   uuid.UUID
	ServiceName string
	PriceCents  int64
	Quantity    int
}

type OrderView struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	DriverID        *uuid.UUID
	TimeSlotID      uuid.UUID
	TimeSlotName    string
	ScheduledDate   time.Time
	Status          string
	TotalPriceCents int64
	PaymentMethod   string
	Items           []OrderItemView
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderListView struct {
	ID              uuid.UUID
	TimeSlotName    string
	ScheduledDate   time.Time
	Status          string
	TotalPriceCents int64
	CreatedAt       time.Time
}

type ApplicationView struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	DriverID  uuid.UUID
	Status    string
	AppliedAt time.Time
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*OrderListView, error)
	ListApplicationsByOrder(ctx context.Context, orderID uuid.UUID) ([]*ApplicationView, error)
}

type OrderQueries interface {
	GetOrder(ctx context.Context, id, actorID uuid.UUID, role identity.Role) (*OrderView, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*OrderListView, error)
	ListApplications(ctx context.Context, orderID uuid.UUID) ([]*ApplicationView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

// GetOrder scopes visibility by actor: customers see their own orders,
// drivers the orders assigned to them, admins everything. Out-of-scope
// reads report not-found rather than forbidden to avoid leaking ids.
func (q *orderQueriesImpl) GetOrder(ctx context.Context, id, actorID uuid.UUID, role identity.Role) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch role {
	case identity.RoleAdmin:
		return view, nil
	case identity.RoleCustomer:
		if view.CustomerID == actorID {
			return view, nil
		}
	case identity.RoleDriver:
		if view.DriverID != nil && *view.DriverID == actorID {
			return view, nil
		}
	}
	return nil, errs.ErrOrderNotFound
}

func (q *orderQueriesImpl) ListCustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*OrderListView, error) {
	return q.store.ListByCustomer(ctx, customerID)
}

func (q *orderQueriesImpl) ListApplications(ctx context.Context, orderID uuid.UUID) ([]*ApplicationView, error) {
	return q.store.ListApplicationsByOrder(ctx, orderID)
}
