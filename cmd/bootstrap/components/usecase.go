package components

import (
	"log/slog"

	"laundry-orders/internal/infra/lock"
	"laundry-orders/internal/pkg/clock"
	"laundry-orders/internal/pkg/config"
	"laundry-orders/internal/usecase/commands"
	"laundry-orders/internal/usecase/queries"
	"laundry-orders/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewLockService,
		NewSlotCapacityGuard,
	),
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderCommands,
		commands.NewMatchingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

func NewLockService(client redis.UniversalClient, logger *slog.Logger, cfg config.Config) commands.LockService {
	return lock.NewRedisLockService(client, logger, cfg.Lock.TTL, cfg.Lock.RetryInterval)
}

func NewSlotCapacityGuard(
	lockService commands.LockService,
	uow shared.UnitOfWork,
	logger *slog.Logger,
	cfg config.Config,
) *commands.SlotCapacityGuard {
	return commands.NewSlotCapacityGuard(lockService, uow, logger, cfg.Lock.WaitTimeout)
}
