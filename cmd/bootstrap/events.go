package bootstrap

import (
	"log/slog"

	"laundry-orders/internal/events"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewDispatcher,
	),
)

// NewDispatcher wires the in-process subscribers. Subscription happens
// once at construction; there is no runtime registration surface.
func NewDispatcher(logger *slog.Logger) events.Publisher {
	dispatcher := events.NewDispatcher(logger)
	dispatcher.Register(events.NewAnalyticsTracker(logger))
	dispatcher.Register(events.NewCustomerNotifier(logger))
	return dispatcher
}
