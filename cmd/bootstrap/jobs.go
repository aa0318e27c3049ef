package bootstrap

import (
	"context"

	"laundry-orders/internal/infra/repository"
	"laundry-orders/internal/jobs"
	"laundry-orders/internal/pkg/config"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		func(cfg config.Config) config.OutboxConfig { return cfg.Outbox },
		fx.Annotate(
			jobs.NewLogSink,
			fx.As(new(jobs.OutboxSink)),
		),
		func(outbox *repository.OutboxRepository) jobs.OutboxStore { return outbox },
		jobs.NewOutboxDrainJob,
	),
	fx.Invoke(StartOutboxDrain),
)

func StartOutboxDrain(lc fx.Lifecycle, job *jobs.OutboxDrainJob) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return job.Start()
		},
		OnStop: func(_ context.Context) error {
			job.Stop()
			return nil
		},
	})
}
