package response

import (
	"time"

	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	PriceCents  int64     `json:"priceCents"`
	Quantity    int       `json:"quantity"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customerId"`
	DriverID        *uuid.UUID          `json:"driverId,omitempty"`
	TimeSlotID      uuid.UUID           `json:"timeSlotId"`
	TimeSlotName    string              `json:"timeSlotName"`
	ScheduledDate   string              `json:"scheduledDate"`
	Status          string              `json:"status"`
	TotalPriceCents int64               `json:"totalPriceCents"`
	PaymentMethod   string              `json:"paymentMethod"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID              uuid.UUID `json:"id"`
	TimeSlotName    string    `json:"timeSlotName"`
	ScheduledDate   string    `json:"scheduledDate"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	DriverID  uuid.UUID `json:"driverId"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"appliedAt"`
}

const dateLayout = "2006-01-02"

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			PriceCents:  item.PriceCents,
			Quantity:    item.Quantity,
		}
	}
	return &OrderResponse{
		ID:              v.ID,
		CustomerID:      v.CustomerID,
		DriverID:        v.DriverID,
		TimeSlotID:      v.TimeSlotID,
		TimeSlotName:    v.TimeSlotName,
		ScheduledDate:   v.ScheduledDate.Format(dateLayout),
		Status:          v.Status,
		TotalPriceCents: v.TotalPriceCents,
		PaymentMethod:   v.PaymentMethod,
		Items:           items,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func FromOrderListView(v *queries.OrderListView) *OrderListResponse {
	return &OrderListResponse{
		ID:              v.ID,
		TimeSlotName:    v.TimeSlotName,
		ScheduledDate:   v.ScheduledDate.Format(dateLayout),
		Status:          v.Status,
		TotalPriceCents: v.TotalPriceCents,
		CreatedAt:       v.CreatedAt,
	}
}

func FromApplicationView(v *queries.ApplicationView) *ApplicationResponse {
	return &ApplicationResponse{
		ID:        v.ID,
		OrderID:   v.OrderID,
		DriverID:  v.DriverID,
		Status:    v.Status,
		AppliedAt: v.AppliedAt,
	}
}

// FromOrder builds the creation response straight from the aggregate,
// before any read-side view of it exists.
func FromOrder(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items()))
	for i, item := range o.Items() {
		items[i] = OrderItemResponse{
			ID:          item.ID(),
			ServiceID:   item.ServiceID(),
			ServiceName: item.ServiceName(),
			PriceCents:  item.Price().Cents(),
			Quantity:    item.Quantity(),
		}
	}
	return &OrderResponse{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		DriverID:        o.DriverID(),
		TimeSlotID:      o.TimeSlotID(),
		ScheduledDate:   o.ScheduledDate().Format(dateLayout),
		Status:          o.Status().String(),
		TotalPriceCents: o.TotalPrice().Cents(),
		PaymentMethod:   o.PaymentMethod().String(),
		Items:           items,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}
