package request

import (
	"time"

	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/usecase/commands"

	"github.com/google/uuid"
)

type LocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type OrderItemRequest struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	ServiceName string    `json:"service_name" binding:"required"`
	PriceCents  int64     `json:"price_cents" binding:"min=0"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	TimeSlotID    uuid.UUID          `json:"time_slot_id" binding:"required"`
	ScheduledDate time.Time          `json:"scheduled_date" binding:"required"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	Pickup        LocationRequest    `json:"pickup" binding:"required"`
	Delivery      LocationRequest    `json:"delivery" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r CreateOrderRequest) ToParams(customerID uuid.UUID) commands.CreateOrderParams {
	items := make([]commands.OrderItemParams, len(r.Items))
	for i, item := range r.Items {
		items[i] = commands.OrderItemParams{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			PriceCents:  item.PriceCents,
			Quantity:    item.Quantity,
		}
	}
	return commands.CreateOrderParams{
		CustomerID:    customerID,
		TimeSlotID:    r.TimeSlotID,
		ScheduledDate: r.ScheduledDate,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		Pickup:        commands.LocationParams{Latitude: r.Pickup.Latitude, Longitude: r.Pickup.Longitude},
		Delivery:      commands.LocationParams{Latitude: r.Delivery.Latitude, Longitude: r.Delivery.Longitude},
		Items:         items,
	}
}

type UpdateOrderDetailsRequest struct {
	TimeSlotID    uuid.UUID       `json:"time_slot_id" binding:"required"`
	ScheduledDate time.Time       `json:"scheduled_date" binding:"required"`
	Pickup        LocationRequest `json:"pickup" binding:"required"`
	Delivery      LocationRequest `json:"delivery" binding:"required"`
}

func (r UpdateOrderDetailsRequest) ToParams() commands.UpdateOrderDetailsParams {
	return commands.UpdateOrderDetailsParams{
		TimeSlotID:    r.TimeSlotID,
		ScheduledDate: r.ScheduledDate,
		Pickup:        commands.LocationParams{Latitude: r.Pickup.Latitude, Longitude: r.Pickup.Longitude},
		Delivery:      commands.LocationParams{Latitude: r.Delivery.Latitude, Longitude: r.Delivery.Longitude},
	}
}

type ConfirmOrderRequest struct {
	PaymentID   uuid.UUID `json:"payment_id" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required,min=0"`
}

type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
