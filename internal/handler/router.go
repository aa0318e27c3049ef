package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laundry-orders/internal/domain/identity"
	"laundry-orders/internal/handler/api"
	"laundry-orders/internal/handler/middleware"
	"laundry-orders/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	orderHandler *api.OrderHandler,
	matchingHandler *api.MatchingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, orderHandler, matchingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	orderHandler *api.OrderHandler,
	matchingHandler *api.MatchingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		orders := apiGroup.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.CreateOrder,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleCustomer)}},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.ListCustomerOrders,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleCustomer)}},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
				{Method: http.MethodPatch, Path: "/:id", Handler: orderHandler.UpdateOrderDetails,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleCustomer)}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: orderHandler.ConfirmOrder,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: orderHandler.CancelOrder,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleCustomer, identity.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/assign-driver", Handler: orderHandler.AssignDriver,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/:id/status", Handler: orderHandler.AdvanceOrderStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleDriver)}},
				{Method: http.MethodPost, Path: "/:id/applications", Handler: matchingHandler.ApplyForOrder,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleDriver)}},
				{Method: http.MethodGet, Path: "/:id/applications", Handler: matchingHandler.ListApplications,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(identity.RoleAdmin)}},
			})
		}

		applications := apiGroup.Group("/applications")
		applications.Use(authMiddleware.RequireRole(identity.RoleAdmin))
		{
			addRoutes(applications, []route{
				{Method: http.MethodPost, Path: "/:id/accept", Handler: matchingHandler.AcceptApplication},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: matchingHandler.RejectApplication},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
