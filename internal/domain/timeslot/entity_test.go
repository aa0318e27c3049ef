//go:build unit

package timeslot_test

import (
	"testing"
	"time"

	"laundry-orders/internal/domain/timeslot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeSlot(t *testing.T) {
	weekdays := []time.Weekday{time.Monday, time.Wednesday, time.Friday}

	t.Run("basic success case", func(t *testing.T) {
		slot, err := timeslot.NewTimeSlot("Morning", 9*time.Hour, 12*time.Hour, 5, weekdays)
		require.NoError(t, err)
		assert.Equal(t, "Morning", slot.Name())
		assert.Equal(t, 5, slot.MaxCapacity())
		assert.ElementsMatch(t, weekdays, slot.Weekdays())
	})

	cases := []struct {
		name     string
		start    time.Duration
		end      time.Duration
		capacity int
		days     []time.Weekday
		errIs    error
	}{
		{"start after end", 12 * time.Hour, 9 * time.Hour, 5, weekdays, timeslot.ErrInvalidWindow},
		{"start equals end", 9 * time.Hour, 9 * time.Hour, 5, weekdays, timeslot.ErrInvalidWindow},
		{"zero capacity", 9 * time.Hour, 12 * time.Hour, 0, weekdays, timeslot.ErrInvalidCapacity},
		{"negative capacity", 9 * time.Hour, 12 * time.Hour, -1, weekdays, timeslot.ErrInvalidCapacity},
		{"no weekdays", 9 * time.Hour, 12 * time.Hour, 5, nil, timeslot.ErrNoValidWeekdays},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := timeslot.NewTimeSlot("Morning", tc.start, tc.end, tc.capacity, tc.days)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestTimeSlotValidateDate(t *testing.T) {
	slot, err := timeslot.NewTimeSlot("Morning", 9*time.Hour, 12*time.Hour, 5, []time.Weekday{time.Monday})
	require.NoError(t, err)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	assert.NoError(t, slot.ValidateDate(monday))
	assert.ErrorIs(t, slot.ValidateDate(monday.AddDate(0, 0, 1)), timeslot.ErrDateNotServed)
}
