package events

import (
	"context"
	"log/slog"
)

// AnalyticsTracker records business events for offline analysis. The
// real pipeline sits behind an ingestion endpoint; this implementation
// emits structured log lines a collector can scrape.
type AnalyticsTracker struct {
	logger *slog.Logger
}

func NewAnalyticsTracker(logger *slog.Logger) *AnalyticsTracker {
	return &AnalyticsTracker{logger: logger}
}

func (t *AnalyticsTracker) Name() string { return "analytics_tracker" }

func (t *AnalyticsTracker) Handle(_ context.Context, event Event) error {
	switch e := event.(type) {
	case OrderCreated:
		t.logger.Info("track order created",
			"order_id", e.OrderID, "customer_id", e.CustomerID, "total_price_cents", e.TotalPriceCents)
	case DriverAssigned:
		t.logger.Info("track driver assigned",
			"order_id", e.OrderID, "driver_id", e.DriverID)
	case PaymentCompleted:
		t.logger.Info("track payment completed",
			"payment_id", e.PaymentID, "amount_cents", e.AmountCents)
	default:
		t.logger.Info("track event", "event_type", event.EventType())
	}
	return nil
}

// CustomerNotifier pushes order progress to customers. Transport is out
// of scope here, so it logs what would be sent.
type CustomerNotifier struct {
	logger *slog.Logger
}

func NewCustomerNotifier(logger *slog.Logger) *CustomerNotifier {
	return &CustomerNotifier{logger: logger}
}

func (n *CustomerNotifier) Name() string { return "customer_notifier" }

func (n *CustomerNotifier) Handle(_ context.Context, event Event) error {
	switch e := event.(type) {
	case OrderCreated:
		n.logger.Info("notify customer of new order", "customer_id", e.CustomerID, "order_id", e.OrderID)
	case DriverAssigned:
		n.logger.Info("notify customer of driver assignment", "customer_id", e.CustomerID, "order_id", e.OrderID)
	case PaymentCompleted:
		n.logger.Info("notify customer of payment", "customer_id", e.CustomerID, "payment_id", e.PaymentID)
	}
	return nil
}
