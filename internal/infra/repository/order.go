package repository

import (
	"context"
	"time"

	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct {
	dbtx db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{dbtx: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const insertOrder = `
		INSERT INTO orders (
			id, customer_id, driver_id, time_slot_id, scheduled_date, status,
			total_price_cents, payment_method,
			pickup_lat, pickup_lng, delivery_lat, delivery_lng,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.dbtx.Exec(ctx, insertOrder,
		o.ID(), o.CustomerID(), o.DriverID(), o.TimeSlotID(), o.ScheduledDate(),
		o.Status().String(), o.TotalPrice().Cents(), string(o.PaymentMethod()),
		o.Pickup().Latitude(), o.Pickup().Longitude(),
		o.Delivery().Latitude(), o.Delivery().Longitude(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	const insertItem = `
		INSERT INTO order_items (id, order_id, service_id, service_name, price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range o.Items() {
		_, err := r.dbtx.Exec(ctx, insertItem,
			item.ID(), o.ID(), item.ServiceID(), item.ServiceName(),
			item.Price().Cents(), item.Quantity(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return nil
}

// Get loads the order with FOR UPDATE, so concurrent commands on the same
// order serialize on its row.
func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const selectOrder = `
		SELECT id, customer_id, driver_id, time_slot_id, scheduled_date, status,
		       total_price_cents, payment_method,
		       pickup_lat, pickup_lng, delivery_lat, delivery_lng,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE`

	var (
		orderID, customerID, timeSlotID     uuid.UUID
		driverID                            *uuid.UUID
		scheduledDate, createdAt, updatedAt time.Time
		status, paymentMethod               string
		totalPriceCents                     int64
		pickupLat, pickupLng                float64
		deliveryLat, deliveryLng            float64
	)
	err := r.dbtx.QueryRow(ctx, selectOrder, id).Scan(
		&orderID, &customerID, &driverID, &timeSlotID, &scheduledDate, &status,
		&totalPriceCents, &paymentMethod,
		&pickupLat, &pickupLng, &deliveryLat, &deliveryLng,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order", err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totalPrice, _ := order.NewMoney(totalPriceCents)
	pickup, _ := order.NewLocation(pickupLat, pickupLng)
	delivery, _ := order.NewLocation(deliveryLat, deliveryLng)

	return order.ReconstructOrder(
		orderID, customerID, driverID, items, totalPrice, timeSlotID,
		scheduledDate, order.Status(status), order.PaymentMethod(paymentMethod),
		pickup, delivery, createdAt, updatedAt,
	), nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	const updateOrder = `
		UPDATE orders
		SET driver_id = $2, time_slot_id = $3, scheduled_date = $4, status = $5,
		    total_price_cents = $6,
		    pickup_lat = $7, pickup_lng = $8, delivery_lat = $9, delivery_lng = $10,
		    updated_at = $11
		WHERE id = $1`

	tag, err := r.dbtx.Exec(ctx, updateOrder,
		o.ID(), o.DriverID(), o.TimeSlotID(), o.ScheduledDate(), o.Status().String(),
		o.TotalPrice().Cents(),
		o.Pickup().Latitude(), o.Pickup().Longitude(),
		o.Delivery().Latitude(), o.Delivery().Longitude(),
		o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order disappeared during update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) CountActive(ctx context.Context, timeSlotID uuid.UUID, scheduledDate time.Time) (int, error) {
	const countActive = `
		SELECT COUNT(*)
		FROM orders
		WHERE time_slot_id = $1 AND scheduled_date = $2 AND status <> 'cancelled'`

	var count int
	err := r.dbtx.QueryRow(ctx, countActive, timeSlotID, scheduledDate).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count slot orders", err)
	}
	return count, nil
}

func (r *OrderRepository) CountActiveExcluding(ctx context.Context, timeSlotID uuid.UUID, scheduledDate time.Time, excludeOrderID uuid.UUID) (int, error) {
	const countActiveExcluding = `
		SELECT COUNT(*)
		FROM orders
		WHERE time_slot_id = $1 AND scheduled_date = $2 AND status <> 'cancelled' AND id <> $3`

	var count int
	err := r.dbtx.QueryRow(ctx, countActiveExcluding, timeSlotID, scheduledDate, excludeOrderID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count slot orders", err)
	}
	return count, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]order.Item, error) {
	const selectItems = `
		SELECT id, service_id, service_name, price_cents, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.dbtx.Query(ctx, selectItems, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var (
			itemID, serviceID uuid.UUID
			serviceName       string
			priceCents        int64
			quantity          int
		)
		if err := rows.Scan(&itemID, &serviceID, &serviceName, &priceCents, &quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		price, _ := order.NewMoney(priceCents)
		items = append(items, order.ReconstructItem(itemID, serviceID, serviceName, price, quantity))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("order items iteration failed", err)
	}

	return items, nil
}
