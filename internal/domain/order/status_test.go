//go:build unit

package order_test

import (
	"testing"

	"laundry-orders/internal/domain/order"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanAdvanceTo(t *testing.T) {
	cases := []struct {
		name string
		from order.Status
		to   order.Status
		want bool
	}{
		{"driver_assigned to picked_up", order.StatusDriverAssigned, order.StatusPickedUp, true},
		{"picked_up to in_cleaning", order.StatusPickedUp, order.StatusInCleaning, true},
		{"in_cleaning to out_for_delivery", order.StatusInCleaning, order.StatusOutForDelivery, true},
		{"out_for_delivery to delivered", order.StatusOutForDelivery, order.StatusDelivered, true},
		{"skip a step", order.StatusDriverAssigned, order.StatusInCleaning, false},
		{"backward", order.StatusInCleaning, order.StatusPickedUp, false},
		{"requested cannot advance", order.StatusRequested, order.StatusPickedUp, false},
		{"confirmed cannot advance", order.StatusConfirmed, order.StatusPickedUp, false},
		{"delivered is terminal", order.StatusDelivered, order.StatusDelivered, false},
		{"cancelled is terminal", order.StatusCancelled, order.StatusPickedUp, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanAdvanceTo(tc.to))
		})
	}
}

func TestStatusIsCancellable(t *testing.T) {
	cancellable := map[order.Status]bool{
		order.StatusRequested:      true,
		order.StatusConfirmed:      true,
		order.StatusDriverAssigned: false,
		order.StatusPickedUp:       false,
		order.StatusInCleaning:     false,
		order.StatusOutForDelivery: false,
		order.StatusDelivered:      false,
		order.StatusCancelled:      false,
	}
	for status, want := range cancellable {
		assert.Equal(t, want, status.IsCancellable(), "status %s", status)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusRequested.IsTerminal())
	assert.False(t, order.StatusOutForDelivery.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, order.StatusRequested.IsValid())
	assert.False(t, order.Status("lost").IsValid())
	assert.False(t, order.Status("").IsValid())
}
