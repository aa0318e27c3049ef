package order

// Status is the lifecycle state of an order.
//
// Requested -> Confirmed -> DriverAssigned -> PickedUp -> InCleaning
//   -> OutForDelivery -> Delivered
//
// Cancelled is reachable from Requested or Confirmed only. Delivered and
// Cancelled are terminal.
type Status string

const (
	StatusRequested      Status = "requested"
	StatusConfirmed      Status = "confirmed"
	StatusDriverAssigned Status = "driver_assigned"
	StatusPickedUp       Status = "picked_up"
	StatusInCleaning     Status = "in_cleaning"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusDriverAssigned, StatusPickedUp,
		StatusInCleaning, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsCancellable reports whether an order in this status may still be
// cancelled. Once fulfillment starts the order runs to completion.
func (s Status) IsCancellable() bool {
	return s == StatusRequested || s == StatusConfirmed
}

// RequiresDriver reports whether an order in this status must have a driver
// assigned.
func (s Status) RequiresDriver() bool {
	switch s {
	case StatusDriverAssigned, StatusPickedUp, StatusInCleaning,
		StatusOutForDelivery, StatusDelivered:
		return true
	default:
		return false
	}
}

// fulfillmentNext maps each fulfillment status to its single allowed
// successor. Backward and skipping transitions have no entry.
var fulfillmentNext = map[Status]Status{
	StatusDriverAssigned: StatusPickedUp,
	StatusPickedUp:       StatusInCleaning,
	StatusInCleaning:     StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// CanAdvanceTo reports whether next is the immediate forward fulfillment
// step from s.
func (s Status) CanAdvanceTo(next Status) bool {
	successor, ok := fulfillmentNext[s]
	return ok && successor == next
}
