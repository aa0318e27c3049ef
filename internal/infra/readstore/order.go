package readstore

import (
	"context"

	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/queries"

	"github.com/google/uuid"
)

// OrderReadStore serves the query side. It returns denormalized views and
// maps not-found onto the usecase sentinel directly, since no further
// command logic sits between here and the handler.
type OrderReadStore struct {
	dbtx db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{dbtx: dbtx}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const selectOrder = `
		SELECT o.id, o.customer_id, o.driver_id, o.time_slot_id, t.name,
		       o.scheduled_date, o.status, o.total_price_cents, o.payment_method,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN time_slots t ON t.id = o.time_slot_id
		WHERE o.id = $1`

	var view queries.OrderView
	err := s.dbtx.QueryRow(ctx, selectOrder, id).Scan(
		&view.ID, &view.CustomerID, &view.DriverID, &view.TimeSlotID, &view.TimeSlotName,
		&view.ScheduledDate, &view.Status, &view.TotalPriceCents, &view.PaymentMethod,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to find order", err)
		if infra.IsKind(wrapped, infra.KindNotFound) {
			return nil, errs.Mark(wrapped, errs.ErrOrderNotFound)
		}
		return nil, wrapped
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (s *OrderReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.OrderListView, error) {
	const selectOrders = `
		SELECT o.id, t.name, o.scheduled_date, o.status, o.total_price_cents, o.created_at
		FROM orders o
		JOIN time_slots t ON t.id = o.time_slot_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC`

	rows, err := s.dbtx.Query(ctx, selectOrders, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customer orders", err)
	}
	defer rows.Close()

	var views []*queries.OrderListView
	for rows.Next() {
		var v queries.OrderListView
		if err := rows.Scan(&v.ID, &v.TimeSlotName, &v.ScheduledDate, &v.Status, &v.TotalPriceCents, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("customer orders iteration failed", err)
	}
	return views, nil
}

func (s *OrderReadStore) ListApplicationsByOrder(ctx context.Context, orderID uuid.UUID) ([]*queries.ApplicationView, error) {
	const selectApplications = `
		SELECT id, order_id, driver_id, status, applied_at
		FROM order_driver_applications
		WHERE order_id = $1
		ORDER BY applied_at`

	rows, err := s.dbtx.Query(ctx, selectApplications, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list applications", err)
	}
	defer rows.Close()

	var views []*queries.ApplicationView
	for rows.Next() {
		var v queries.ApplicationView
		if err := rows.Scan(&v.ID, &v.OrderID, &v.DriverID, &v.Status, &v.AppliedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan application row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("applications iteration failed", err)
	}
	return views, nil
}

func (s *OrderReadStore) loadItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	const selectItems = `
		SELECT id, service_id, service_name, price_cents, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := s.dbtx.Query(ctx, selectItems, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(&item.ID, &item.ServiceID, &item.ServiceName, &item.PriceCents, &item.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("order items iteration failed", err)
	}
	return items, nil
}
