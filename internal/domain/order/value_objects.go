package order

import (
	"errors"

	"github.com/google/uuid"
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyBy(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

type Location struct {
	latitude  float64
	longitude float64
}

func NewLocation(latitude, longitude float64) (Location, error) {
	if latitude < -90 || latitude > 90 {
		return Location{}, errors.New("latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return Location{}, errors.New("longitude must be between -180 and 180")
	}
	return Location{latitude: latitude, longitude: longitude}, nil
}

func (l Location) Latitude() float64  { return l.latitude }
func (l Location) Longitude() float64 { return l.longitude }

func (l Location) Equals(other Location) bool {
	return l.latitude == other.latitude && l.longitude == other.longitude
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentWallet:
		return true
	default:
		return false
	}
}

// Item is a line item owned by an order. Items cannot exist without their
// order.
type Item struct {
	id          uuid.UUID
	serviceID   uuid.UUID
	serviceName string
	price       Money
	quantity    int
}

func NewItem(serviceID uuid.UUID, serviceName string, price Money, quantity int) (Item, error) {
	if serviceID == uuid.Nil {
		return Item{}, errors.New("service id must not be empty")
	}
	if quantity <= 0 {
		return Item{}, errors.New("quantity must be positive")
	}
	return Item{
		id:          uuid.New(),
		serviceID:   serviceID,
		serviceName: serviceName,
		price:       price,
		quantity:    quantity,
	}, nil
}

func ReconstructItem(id, serviceID uuid.UUID, serviceName string, price Money, quantity int) Item {
	return Item{
		id:          id,
		serviceID:   serviceID,
		serviceName: serviceName,
		price:       price,
		quantity:    quantity,
	}
}

func (i Item) ID() uuid.UUID        { return i.id }
func (i Item) ServiceID() uuid.UUID { return i.serviceID }
func (i Item) ServiceName() string  { return i.serviceName }
func (i Item) Price() Money         { return i.price }
func (i Item) Quantity() int        { return i.quantity }

func (i Item) Subtotal() Money {
	return i.price.MultiplyBy(i.quantity)
}
