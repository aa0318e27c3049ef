//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"laundry-orders/internal/domain/driver"
	"laundry-orders/internal/domain/order"
	"laundry-orders/internal/domain/timeslot"
	"laundry-orders/internal/events"
	"laundry-orders/internal/infra"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

// memStore is a mutex-guarded in-memory database. The unit of work holds
// the mutex for the whole callback, which gives each transaction the
// atomicity the serializable isolation level provides in production.
type memStore struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*order.Order
	apps    map[uuid.UUID]*driver.Application
	slots   map[uuid.UUID]*timeslot.TimeSlot
	drivers map[uuid.UUID]*driver.Driver
	outbox  []events.Event

	// blindApplicationChecks makes the application existence pre-checks
	// report nothing, simulating the window where a concurrent apply has
	// inserted a row the pre-check transaction cannot yet see. Create
	// still enforces the unique (order, driver) pair.
	blindApplicationChecks bool
}

func newMemStore() *memStore {
	return &memStore{
		orders:  make(map[uuid.UUID]*order.Order),
		apps:    make(map[uuid.UUID]*driver.Application),
		slots:   make(map[uuid.UUID]*timeslot.TimeSlot),
		drivers: make(map[uuid.UUID]*driver.Driver),
	}
}

func (s *memStore) putOrder(o *order.Order)              { s.orders[o.ID()] = o }
func (s *memStore) putSlot(slot *timeslot.TimeSlot)      { s.slots[slot.ID()] = slot }
func (s *memStore) putDriver(d *driver.Driver)           { s.drivers[d.ID()] = d }
func (s *memStore) putApplication(a *driver.Application) { s.apps[a.ID()] = a }
func (s *memStore) outboxEvents() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Event(nil), s.outbox...)
}

type memUoW struct {
	store *memStore
}

func newMemUoW(store *memStore) *memUoW {
	return &memUoW{store: store}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, &memTx{store: u.store})
}

func (u *memUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Within(ctx, fn)
}

func (u *memUoW) Reads() shared.CommandReads {
	return &memReads{store: u.store}
}

type memTx struct {
	store *memStore
}

func (t *memTx) Orders() shared.OrderRepository             { return &memOrders{store: t.store} }
func (t *memTx) Applications() shared.ApplicationRepository { return &memApplications{store: t.store} }
func (t *memTx) Outbox() shared.OutboxRepository            { return &memOutbox{store: t.store} }

type memOrders struct {
	store *memStore
}

func (r *memOrders) Create(_ context.Context, o *order.Order) error {
	r.store.putOrder(o)
	return nil
}

func (r *memOrders) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *memOrders) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.store.orders[o.ID()]; !ok {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	r.store.putOrder(o)
	return nil
}

func (r *memOrders) CountActive(_ context.Context, timeSlotID uuid.UUID, scheduledDate time.Time) (int, error) {
	count := 0
	day := scheduledDate.Format("2006-01-02")
	for _, o := range r.store.orders {
		if o.TimeSlotID() == timeSlotID &&
			o.ScheduledDate().Format("2006-01-02") == day &&
			o.Status() != order.StatusCancelled {
			count++
		}
	}
	return count, nil
}

func (r *memOrders) CountActiveExcluding(ctx context.Context, timeSlotID uuid.UUID, scheduledDate time.Time, excludeOrderID uuid.UUID) (int, error) {
	count, err := r.CountActive(ctx, timeSlotID, scheduledDate)
	if err != nil {
		return 0, err
	}
	if o, ok := r.store.orders[excludeOrderID]; ok &&
		o.TimeSlotID() == timeSlotID &&
		o.ScheduledDate().Format("2006-01-02") == scheduledDate.Format("2006-01-02") &&
		o.Status() != order.StatusCancelled {
		count--
	}
	return count, nil
}

type memApplications struct {
	store *memStore
}

func (r *memApplications) Create(_ context.Context, a *driver.Application) error {
	for _, existing := range r.store.apps {
		if existing.OrderID() == a.OrderID() && existing.DriverID() == a.DriverID() {
			return infra.WrapRepoErr("application already exists", nil, infra.KindDuplicateKey)
		}
	}
	r.store.putApplication(a)
	return nil
}

func (r *memApplications) Get(_ context.Context, id uuid.UUID) (*driver.Application, error) {
	a, ok := r.store.apps[id]
	if !ok {
		return nil, infra.WrapRepoErr("application not found", nil, infra.KindNotFound)
	}
	return a, nil
}

func (r *memApplications) Update(_ context.Context, a *driver.Application) error {
	r.store.putApplication(a)
	return nil
}

func (r *memApplications) ListAppliedByOrder(_ context.Context, orderID uuid.UUID) ([]*driver.Application, error) {
	var out []*driver.Application
	for _, a := range r.store.apps {
		if a.OrderID() == orderID && a.Status() == driver.ApplicationApplied {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApplications) HasAcceptedForOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	if r.store.blindApplicationChecks {
		return false, nil
	}
	for _, a := range r.store.apps {
		if a.OrderID() == orderID && a.Status() == driver.ApplicationAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memApplications) ExistsForOrderAndDriver(_ context.Context, orderID, driverID uuid.UUID) (bool, error) {
	if r.store.blindApplicationChecks {
		return false, nil
	}
	for _, a := range r.store.apps {
		if a.OrderID() == orderID && a.DriverID() == driverID {
			return true, nil
		}
	}
	return false, nil
}

type memOutbox struct {
	store *memStore
}

func (r *memOutbox) Insert(_ context.Context, event events.Event) error {
	r.store.outbox = append(r.store.outbox, event)
	return nil
}

type memReads struct {
	store *memStore
}

func (r *memReads) TimeSlotByID(_ context.Context, id uuid.UUID) (*timeslot.TimeSlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	slot, ok := r.store.slots[id]
	if !ok {
		return nil, errs.ErrTimeSlotNotFound
	}
	return slot, nil
}

func (r *memReads) DriverByID(_ context.Context, id uuid.UUID) (*driver.Driver, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d, ok := r.store.drivers[id]
	if !ok {
		return nil, errs.ErrDriverNotFound
	}
	return d, nil
}

// noopLock grants immediately; lock behavior is covered by the redis
// lock tests.
type noopLock struct{}

func (noopLock) Acquire(context.Context, string, time.Duration) (string, error) {
	return "token", nil
}

func (noopLock) Release(context.Context, string, string) error { return nil }

// recordingPublisher captures events published after commit.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}
