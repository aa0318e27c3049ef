package components

import (
	"laundry-orders/internal/handler"
	"laundry-orders/internal/handler/api"
	"laundry-orders/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewMatchingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
