package components

import (
	"laundry-orders/internal/infra/db"
	"laundry-orders/internal/infra/readstore"
	"laundry-orders/internal/infra/repository"
	"laundry-orders/internal/infra/uow"
	"laundry-orders/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		repository.NewOutboxRepository,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
