//go:build unit

package driver_test

import (
	"testing"
	"time"

	"laundry-orders/internal/domain/driver"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationSettlement(t *testing.T) {
	now := time.Now()

	t.Run("starts as applied", func(t *testing.T) {
		app := driver.NewApplication(uuid.New(), uuid.New(), now)
		assert.Equal(t, driver.ApplicationApplied, app.Status())
		assert.False(t, app.IsSettled())
	})

	t.Run("accept settles once", func(t *testing.T) {
		app := driver.NewApplication(uuid.New(), uuid.New(), now)
		require.NoError(t, app.Accept())
		assert.Equal(t, driver.ApplicationAccepted, app.Status())
		assert.True(t, app.IsSettled())

		assert.ErrorIs(t, app.Accept(), driver.ErrApplicationSettled)
		assert.ErrorIs(t, app.Reject(), driver.ErrApplicationSettled)
	})

	t.Run("reject settles once", func(t *testing.T) {
		app := driver.NewApplication(uuid.New(), uuid.New(), now)
		require.NoError(t, app.Reject())
		assert.Equal(t, driver.ApplicationRejected, app.Status())

		assert.ErrorIs(t, app.Accept(), driver.ErrApplicationSettled)
	})
}

func TestDriverCanApply(t *testing.T) {
	cases := map[driver.Status]bool{
		driver.StatusAvailable: true,
		driver.StatusOffline:   false,
		driver.StatusBusy:      false,
		driver.StatusRevoked:   false,
	}
	for status, want := range cases {
		assert.Equal(t, want, status.CanApply(), "status %s", status)
	}
}
