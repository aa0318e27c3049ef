package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"laundry-orders/internal/infra/repository"
	"laundry-orders/internal/pkg/clock"
	"laundry-orders/internal/pkg/config"
	"laundry-orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// OutboxSink is the delivery target for drained outbox rows: a message
// broker, webhook fan-out, or in development a structured log.
type OutboxSink interface {
	Deliver(ctx context.Context, eventType string, payload json.RawMessage) error
}

// OutboxStore is the pending-row source, satisfied by
// repository.OutboxRepository.
type OutboxStore interface {
	ListPending(ctx context.Context, limit int) ([]repository.OutboxRow, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}

// LogSink writes drained events to the structured log. It stands in for
// a broker publisher in environments that have none configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(_ context.Context, eventType string, payload json.RawMessage) error {
	s.logger.Info("outbox event delivered", "event_type", eventType, "payload", string(payload))
	return nil
}

// OutboxDrainJob periodically pushes pending outbox rows to the sink.
// Rows are marked sent only after the sink accepts them, so delivery is
// at-least-once and sinks must tolerate duplicates.
type OutboxDrainJob struct {
	outbox    OutboxStore
	sink      OutboxSink
	clock     clock.Clock
	logger    *slog.Logger
	spec      string
	batchSize int

	cron *cron.Cron
	mu   sync.Mutex
}

func NewOutboxDrainJob(
	outbox OutboxStore,
	sink OutboxSink,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.OutboxConfig,
) *OutboxDrainJob {
	return &OutboxDrainJob{
		outbox:    outbox,
		sink:      sink,
		clock:     clk,
		logger:    logger,
		spec:      cfg.DrainSpec,
		batchSize: cfg.BatchSize,
	}
}

func (j *OutboxDrainJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron != nil {
		return nil
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(j.spec, j.runOnce); err != nil {
		return errs.Wrap(err, "failed to schedule outbox drain")
	}
	c.Start()
	j.cron = c
	j.logger.Info("outbox drain started", "spec", j.spec, "batch_size", j.batchSize)
	return nil
}

// Stop halts scheduling and waits for an in-flight drain to finish.
func (j *OutboxDrainJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.cron = nil
	j.logger.Info("outbox drain stopped")
}

func (j *OutboxDrainJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.Drain(ctx); err != nil {
		j.logger.Error("outbox drain failed", "error", err.Error())
	}
}

// Drain delivers one batch of pending rows. A sink failure stops the
// batch; the remaining rows stay pending for the next tick.
func (j *OutboxDrainJob) Drain(ctx context.Context) error {
	pending, err := j.outbox.ListPending(ctx, j.batchSize)
	if err != nil {
		return err
	}

	for _, row := range pending {
		if err := j.sink.Deliver(ctx, row.EventType, row.Payload); err != nil {
			return errs.Wrapf(err, "sink rejected event %s", row.ID)
		}
		if err := j.outbox.MarkSent(ctx, row.ID, j.clock.Now()); err != nil {
			return err
		}
	}

	if len(pending) > 0 {
		j.logger.Info("outbox batch drained", "count", len(pending))
	}
	return nil
}
