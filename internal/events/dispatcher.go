package events

import (
	"context"
	"log/slog"
	"sync"
)

// Subscriber receives domain events. Implementations are external
// collaborators (analytics tracker, real-time notifier).
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event Event) error
}

// Publisher is the dispatch contract the usecase layer depends on.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Dispatcher fans events out to registered subscribers synchronously and
// in-process. Delivery is best-effort: by the time an event is published
// the originating mutation has committed, so a subscriber failure is
// logged and swallowed, never propagated back to the command.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Register(sub Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, sub)
}

func (d *Dispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	subs := make([]Subscriber, len(d.subscribers))
	copy(subs, d.subscribers)
	d.mu.RUnlock()

	for _, sub := range subs {
		d.deliver(ctx, sub, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sub Subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event subscriber panicked",
				"subscriber", sub.Name(),
				"event_type", event.EventType(),
				"panic", r)
		}
	}()

	if err := sub.Handle(ctx, event); err != nil {
		d.logger.Error("event subscriber failed",
			"subscriber", sub.Name(),
			"event_type", event.EventType(),
			"error", err.Error())
	}
}
