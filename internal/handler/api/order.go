package api

import (
	"errors"
	"net/http"

	"laundry-orders/internal/domain/identity"
	"laundry-orders/internal/domain/order"
	reqdto "laundry-orders/internal/handler/dto/request"
	resdto "laundry-orders/internal/handler/dto/response"
	"laundry-orders/internal/handler/middleware"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/commands"
	"laundry-orders/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customerID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	created, err := h.orderCommands.CreateOrder(c.Request.Context(), req.ToParams(customerID))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTimeSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Time slot not found",
			})
		case errors.Is(err, errs.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Time slot is fully booked",
			})
		case errors.Is(err, errs.ErrLockTimeout):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Slot reservation is busy, try again",
			})
		case errors.Is(err, errs.ErrInvalidArgument):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Order validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromOrder(created))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, actorOK := middleware.GetActorID(c)
	role, roleOK := middleware.GetActorRole(c)
	if !actorOK || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), id, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	customerID, ok := middleware.GetActorID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.orderQueries.ListCustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.OrderListResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromOrderListView(v)
	}

	c.JSON(http.StatusOK, response)
}

func (h *OrderHandler) UpdateOrderDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req reqdto.UpdateOrderDetailsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.orderCommands.UpdateOrderDetails(c.Request.Context(), id, actorID, role, req.ToParams()); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.ConfirmOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.orderCommands.ConfirmOrder(c.Request.Context(), id, req.PaymentID, req.AmountCents); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) AssignDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.AssignDriverRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.orderCommands.AssignDriver(c.Request.Context(), id, req.DriverID); err != nil {
		switch {
		case errors.Is(err, errs.ErrDriverNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Driver not found",
			})
		default:
			h.writeCommandError(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) AdvanceOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reqdto.AdvanceStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	next := order.Status(req.Status)
	if !next.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown order status",
		})
		return
	}

	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.orderCommands.AdvanceOrderStatus(c.Request.Context(), id, actorID, role, next); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return
	}

	if err := h.orderCommands.CancelOrder(c.Request.Context(), id, actorID, role); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, errs.ErrTimeSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Time slot not found",
		})
	case errors.Is(err, errs.ErrOrderNotOwned):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	case errors.Is(err, errs.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Order state does not allow this operation",
		})
	case errors.Is(err, errs.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Time slot is fully booked",
		})
	case errors.Is(err, errs.ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Slot reservation is busy, try again",
		})
	case errors.Is(err, errs.ErrInvalidArgument):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Order validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func actorFromContext(c *gin.Context) (uuid.UUID, identity.Role, bool) {
	actorID, idOK := middleware.GetActorID(c)
	role, roleOK := middleware.GetActorRole(c)
	if !idOK || !roleOK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", false
	}
	return actorID, role, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
