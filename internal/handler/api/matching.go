package api

import (
	"errors"
	"net/http"

	resdto "laundry-orders/internal/handler/dto/response"
	"laundry-orders/internal/handler/middleware"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/commands"
	"laundry-orders/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	matchingCommands commands.MatchingCommands
	orderQueries     queries.OrderQueries
}

func NewMatchingHandler(matchingCommands commands.MatchingCommands, orderQueries queries.OrderQueries) *MatchingHandler {
	return &MatchingHandler{
		matchingCommands: matchingCommands,
		orderQueries:     orderQueries,
	}
}

func (h *MatchingHandler) ApplyForOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	driverID, actorOK := middleware.GetActorID(c)
	if !actorOK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	applicationID, err := h.matchingCommands.Apply(c.Request.Context(), driverID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, errs.ErrDriverNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Driver not found",
			})
		case errors.Is(err, errs.ErrDriverUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Driver is not available",
			})
		case errors.Is(err, errs.ErrOrderNotAvailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Order is not open for applications",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application_id": applicationID})
}

func (h *MatchingHandler) ListApplications(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.orderQueries.ListApplications(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ApplicationResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromApplicationView(v)
	}

	c.JSON(http.StatusOK, response)
}

func (h *MatchingHandler) AcceptApplication(c *gin.Context) {
	applicationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.matchingCommands.Accept(c.Request.Context(), applicationID); err != nil {
		h.writeSettleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MatchingHandler) RejectApplication(c *gin.Context) {
	applicationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.matchingCommands.Reject(c.Request.Context(), applicationID); err != nil {
		h.writeSettleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MatchingHandler) writeSettleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Application not found",
		})
	case errors.Is(err, errs.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, errs.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Application is already settled or order is not assignable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
