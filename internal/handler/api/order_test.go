//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"laundry-orders/internal/domain/identity"
	"laundry-orders/internal/handler/api"
	resdto "laundry-orders/internal/handler/dto/response"
	"laundry-orders/internal/pkg/errs"
	"laundry-orders/internal/usecase/queries"
	"laundry-orders/tests/common/builder"
	"laundry-orders/tests/common/httptest"
	commandsmock "laundry-orders/tests/mock/commands"
	queriesmock "laundry-orders/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	actorID      uuid.UUID
	actorRole    identity.Role
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = identity.RoleCustomer

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("actor_id", s.actorID)
		c.Set("actor_role", s.actorRole)
		c.Next()
	}

	s.router.POST("/orders", authMiddleware, s.handler.CreateOrder)
	s.router.GET("/orders", authMiddleware, s.handler.ListCustomerOrders)
	s.router.GET("/orders/:id", authMiddleware, s.handler.GetOrder)
	s.router.PATCH("/orders/:id", authMiddleware, s.handler.UpdateOrderDetails)
	s.router.POST("/orders/:id/confirm", authMiddleware, s.handler.ConfirmOrder)
	s.router.POST("/orders/:id/assign-driver", authMiddleware, s.handler.AssignDriver)
	s.router.POST("/orders/:id/status", authMiddleware, s.handler.AdvanceOrderStatus)
	s.router.POST("/orders/:id/cancel", authMiddleware, s.handler.CancelOrder)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestCreateOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestCreateOrder() {
	url := "/orders"
	reqBody := builder.NewOrderBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the new order", func() {
		created, err := builder.NewOrderBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(created.ID(), response.ID)
		s.Equal("requested", response.Status)
		s.Equal(int64(3000), response.TotalPriceCents)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		body := map[string]any{"time_slot_id": "not-a-uuid"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "time slot not found",
				commandsError:  errs.ErrTimeSlotNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Time slot not found",
			},
			{
				name:           "slot fully booked",
				commandsError:  errs.ErrCapacityExceeded,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "fully booked",
			},
			{
				name:           "lock contention",
				commandsError:  errs.ErrLockTimeout,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "try again",
			},
			{
				name:           "domain validation failed",
				commandsError:  errs.ErrInvalidArgument,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Order validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()

	view := &queries.OrderView{
		ID:              orderID,
		CustomerID:      uuid.New(),
		TimeSlotID:      uuid.New(),
		TimeSlotName:    "Morning",
		ScheduledDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Status:          "confirmed",
		TotalPriceCents: 3000,
		PaymentMethod:   "card",
	}

	s.Run("success: returns 200 OK with OrderResponse", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.ID)
		s.Equal("Morning", response.TimeSlotName)
		s.Equal("2026-09-14", response.ScheduledDate)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: 404 Not Found for missing order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(nil, errs.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListCustomerOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestListCustomerOrders() {
	url := "/orders"

	views := []*queries.OrderListView{
		{ID: uuid.New(), TimeSlotName: "Morning", Status: "requested", TotalPriceCents: 3000},
		{ID: uuid.New(), TimeSlotName: "Evening", Status: "delivered", TotalPriceCents: 4500},
	}

	s.Run("success: returns the customer's orders", func() {
		s.mockQueries.EXPECT().ListCustomerOrders(gomock.Any(), s.actorID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(views[0].ID, response[0].ID)
		s.Equal("delivered", response[1].Status)
	})

	s.Run("success: empty list", func() {
		s.mockQueries.EXPECT().ListCustomerOrders(gomock.Any(), s.actorID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})
}

// ================================================================================
// TestUpdateOrderDetails
// ================================================================================

func (s *OrderHandlerTestSuite) TestUpdateOrderDetails() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String()
	reqBody := map[string]any{
		"time_slot_id":   uuid.New().String(),
		"scheduled_date": "2026-09-21T00:00:00Z",
		"pickup":         map[string]any{"latitude": 35.6812, "longitude": 139.7671},
		"delivery":       map[string]any{"latitude": 35.6586, "longitude": 139.7454},
	}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateOrderDetails(gomock.Any(), orderID, s.actorID, s.actorRole, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		body := map[string]any{"time_slot_id": "not-a-uuid"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  errs.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "someone else's order",
				commandsError:  errs.ErrOrderNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "target slot fully booked",
				commandsError:  errs.ErrCapacityExceeded,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "fully booked",
			},
			{
				name:           "order already past requested",
				commandsError:  errs.ErrInvalidStateTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "state does not allow",
			},
			{
				name:           "lock contention",
				commandsError:  errs.ErrLockTimeout,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "try again",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateOrderDetails(gomock.Any(), orderID, s.actorID, s.actorRole, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestConfirmOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestConfirmOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/confirm"
	paymentID := uuid.New()
	reqBody := map[string]any{"payment_id": paymentID.String(), "amount_cents": 3000}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().ConfirmOrder(gomock.Any(), orderID, paymentID, int64(3000)).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  errs.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "already confirmed",
				commandsError:  errs.ErrInvalidStateTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "state does not allow",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ConfirmOrder(gomock.Any(), orderID, paymentID, int64(3000)).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestAssignDriver
// ================================================================================

func (s *OrderHandlerTestSuite) TestAssignDriver() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/assign-driver"
	driverID := uuid.New()
	reqBody := map[string]any{"driver_id": driverID.String()}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().AssignDriver(gomock.Any(), orderID, driverID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown driver", func() {
		s.mockCommands.EXPECT().AssignDriver(gomock.Any(), orderID, driverID).
			Return(errs.ErrDriverNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Driver not found")
	})

	s.Run("error: 409 Conflict when order is not confirmed", func() {
		s.mockCommands.EXPECT().AssignDriver(gomock.Any(), orderID, driverID).
			Return(errs.ErrInvalidStateTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "state does not allow")
	})
}

// ================================================================================
// TestAdvanceOrderStatus
// ================================================================================

func (s *OrderHandlerTestSuite) TestAdvanceOrderStatus() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/status"
	s.actorRole = identity.RoleDriver

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().AdvanceOrderStatus(gomock.Any(), orderID, s.actorID, identity.RoleDriver, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "picked_up"}, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "teleported"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown order status")
	})

	s.Run("error: 403 Forbidden for a driver not on the order", func() {
		s.mockCommands.EXPECT().AdvanceOrderStatus(gomock.Any(), orderID, s.actorID, identity.RoleDriver, gomock.Any()).
			Return(errs.ErrOrderNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "picked_up"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 409 Conflict on skipped step", func() {
		s.mockCommands.EXPECT().AdvanceOrderStatus(gomock.Any(), orderID, s.actorID, identity.RoleDriver, gomock.Any()).
			Return(errs.ErrInvalidStateTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"status": "delivered"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "state does not allow")
	})
}

// ================================================================================
// TestCancelOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestCancelOrder() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden for someone else's order", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(errs.ErrOrderNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 409 Conflict once a driver is on the way", func() {
		s.mockCommands.EXPECT().CancelOrder(gomock.Any(), orderID, s.actorID, s.actorRole).
			Return(errs.ErrInvalidStateTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "state does not allow")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/orders/invalid-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}
