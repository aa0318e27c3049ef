//go:build unit || e2e

package builder

import (
	"time"

	domorder "laundry-orders/internal/domain/order"
	"laundry-orders/internal/domain/timeslot"
	reqdto "laundry-orders/internal/handler/dto/request"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	CustomerID    uuid.UUID
	TimeSlotID    uuid.UUID
	ScheduledDate time.Time
	PaymentMethod domorder.PaymentMethod
	Pickup        domorder.Location
	Delivery      domorder.Location
	Items         []domorder.Item
	Now           time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC) // a Monday
	pickup, _ := domorder.NewLocation(35.6812, 139.7671)
	delivery, _ := domorder.NewLocation(35.6586, 139.7454)
	return &OrderBuilder{
		CustomerID:    uuid.New(),
		TimeSlotID:    uuid.New(),
		ScheduledDate: now.AddDate(0, 0, 7),
		PaymentMethod: domorder.PaymentCard,
		Pickup:        pickup,
		Delivery:      delivery,
		Items:         []domorder.Item{DefaultItem()},
		Now:           now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildDomain() (*domorder.Order, error) {
	return domorder.NewOrder(
		b.CustomerID,
		b.TimeSlotID,
		b.ScheduledDate,
		b.PaymentMethod,
		b.Pickup, b.Delivery,
		b.Items,
		b.Now,
	)
}

func (b *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	items := make([]reqdto.OrderItemRequest, len(b.Items))
	for i, item := range b.Items {
		items[i] = reqdto.OrderItemRequest{
			ServiceID:   item.ServiceID(),
			ServiceName: item.ServiceName(),
			PriceCents:  item.Price().Cents(),
			Quantity:    item.Quantity(),
		}
	}
	return reqdto.CreateOrderRequest{
		TimeSlotID:    b.TimeSlotID,
		ScheduledDate: b.ScheduledDate,
		PaymentMethod: b.PaymentMethod.String(),
		Pickup:        reqdto.LocationRequest{Latitude: b.Pickup.Latitude(), Longitude: b.Pickup.Longitude()},
		Delivery:      reqdto.LocationRequest{Latitude: b.Delivery.Latitude(), Longitude: b.Delivery.Longitude()},
		Items:         items,
	}
}

func DefaultItem() domorder.Item {
	price, _ := domorder.NewMoney(1500)
	item, _ := domorder.NewItem(uuid.New(), "Wash & Fold", price, 2)
	return item
}

func ItemWith(name string, priceCents int64, quantity int) domorder.Item {
	price, _ := domorder.NewMoney(priceCents)
	item, _ := domorder.NewItem(uuid.New(), name, price, quantity)
	return item
}

// DefaultTimeSlot covers every weekday so date validation stays out of
// the way unless a test asks for it.
func DefaultTimeSlot(capacity int) *timeslot.TimeSlot {
	slot, _ := timeslot.NewTimeSlot(
		"Morning",
		9*time.Hour, 12*time.Hour,
		capacity,
		[]time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	)
	return slot
}
