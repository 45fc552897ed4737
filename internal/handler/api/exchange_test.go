//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"bookswap/internal/handler/api"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"
	"bookswap/tests/common/builder"
	"bookswap/tests/common/httptest"
	"bookswap/tests/common/testutil"
	commandsmock "bookswap/tests/mock/commands"
	queriesmock "bookswap/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ExchangeHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockExchangeCommands
	mockQueries  *queriesmock.MockExchangeQueries
	handler      *api.ExchangeHandler
}

func (s *ExchangeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockExchangeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockExchangeQueries(s.mockCtrl)
	s.handler = api.NewExchangeHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", uuid.New())
		c.Next()
	}

	s.router.GET("/exchanges/received", authMiddleware, s.handler.ListReceived)
	s.router.GET("/exchanges/sent", authMiddleware, s.handler.ListSent)
	s.router.POST("/exchanges", authMiddleware, s.handler.CreateExchange)
	s.router.POST("/exchanges/:id/respond", authMiddleware, s.handler.Respond)
}

func (s *ExchangeHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestExchangeHandlerSuite(t *testing.T) {
	suite.Run(t, new(ExchangeHandlerTestSuite))
}

// ================================================================================
// TestListReceived / TestListSent
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestListReceived() {
	url := "/exchanges/received"

	view := builder.NewExchangeBuilder().BuildView()

	s.Run("success: returns 200 OK with received requests", func() {
		s.mockQueries.EXPECT().ListReceived(gomock.Any(), gomock.Any()).
			Return([]*queries.ExchangeView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.ExchangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(view.ID, response[0].ID)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListReceived(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

func (s *ExchangeHandlerTestSuite) TestListSent() {
	url := "/exchanges/sent"

	view := builder.NewExchangeBuilder().BuildView()

	s.Run("success: returns 200 OK with sent requests", func() {
		s.mockQueries.EXPECT().ListSent(gomock.Any(), gomock.Any()).
			Return([]*queries.ExchangeView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.ExchangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestCreateExchange
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestCreateExchange() {
	url := "/exchanges"

	reqBody := builder.NewExchangeBuilder().BuildCreateRequestDTO()
	returnView := builder.NewExchangeBuilder().BuildView()

	s.Run("success: returns 201 Created with Location header", func() {
		s.mockCommands.EXPECT().CreateExchange(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ExchangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/exchanges/" + returnView.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: requestedBookId (required)", mutate: testutil.Field("requestedBookId", nil)},
			{name: "missing field: offeredBookId (required)", mutate: testutil.Field("offeredBookId", nil)},
			{name: "malformed requestedBookId", mutate: testutil.Field("requestedBookId", "not-a-uuid")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
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
				name:           "book not found",
				commandsError:  commands.ErrBookNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "same book on both sides",
				commandsError:  commands.ErrSameBookExchange,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Requested and offered books must differ",
			},
			{
				name:           "message too long",
				commandsError:  commands.ErrMessageTooLong,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Message too long",
			},
			{
				name:           "requesting own book",
				commandsError:  commands.ErrSelfExchange,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cannot request own book",
			},
			{
				name:           "offered book not owned",
				commandsError:  commands.ErrOfferedBookNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "book not available",
				commandsError:  commands.ErrBookNotAvailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Book no longer available",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateExchange(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestRespond
// ================================================================================

func (s *ExchangeHandlerTestSuite) TestRespond() {
	exchangeID := uuid.New()
	url := "/exchanges/" + exchangeID.String() + "/respond"

	returnView := builder.NewExchangeBuilder().BuildView()

	s.Run("success: returns 200 OK with the resolved request", func() {
		s.mockCommands.EXPECT().Respond(gomock.Any(), exchangeID, gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{"action": "accept"}, "bearer-token")

		var response resdto.ExchangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("success: action is normalized before dispatch", func() {
		s.mockCommands.EXPECT().Respond(gomock.Any(), exchangeID, gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{"action": "  ACCEPT  "}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/exchanges/invalid-uuid/respond", gin.H{"action": "accept"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 400 Bad Request for missing action", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{"action": "accept"}, "")
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
				name:           "invalid action",
				commandsError:  commands.ErrInvalidAction,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Action must be accept or decline",
			},
			{
				name:           "exchange not found",
				commandsError:  commands.ErrExchangeNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "responder is not the owner",
				commandsError:  commands.ErrNotRequestOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Forbidden",
			},
			{
				name:           "request already resolved",
				commandsError:  commands.ErrExchangeNotPending,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Request already resolved",
			},
			{
				name:           "book consumed by a competing exchange",
				commandsError:  commands.ErrBookNotAvailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Book no longer available",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Respond(gomock.Any(), exchangeID, gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, gin.H{"action": "accept"}, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
