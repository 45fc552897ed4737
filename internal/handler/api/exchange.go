package api

import (
	"log/slog"
	"net/http"

	"bookswap/internal/domain/exchange"
	reqdto "bookswap/internal/handler/dto/request"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/httperr"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExchangeHandler struct {
	exchangeCommands commands.ExchangeCommands
	exchangeQueries  queries.ExchangeQueries
}

func NewExchangeHandler(exchangeCommands commands.ExchangeCommands, exchangeQueries queries.ExchangeQueries) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeCommands: exchangeCommands,
		exchangeQueries:  exchangeQueries,
	}
}

// @Summary List received exchange requests
// @Description List exchange requests targeting the current user's books
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ExchangeResponse
// @Failure 401 {object} httperr.Response
// @Router /exchanges/received [get]
func (h *ExchangeHandler) ListReceived(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	views, err := h.exchangeQueries.ListReceived(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list received exchanges failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeViews(views))
}

// @Summary List sent exchange requests
// @Description List exchange requests created by the current user
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ExchangeResponse
// @Failure 401 {object} httperr.Response
// @Router /exchanges/sent [get]
func (h *ExchangeHandler) ListSent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	views, err := h.exchangeQueries.ListSent(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list sent exchanges failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeViews(views))
}

// @Summary Create exchange request
// @Description Propose trading one of your books for another user's book
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateExchangeRequest true "Exchange proposal"
// @Success 201 {object} resdto.ExchangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges [post]
func (h *ExchangeHandler) CreateExchange(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateExchangeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.exchangeCommands.CreateExchange(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errs.Is(err, commands.ErrSameBookExchange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Requested and offered books must differ", nil)
		case errs.Is(err, commands.ErrMessageTooLong):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Message too long", nil)
		case errs.Is(err, commands.ErrSelfExchange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cannot request own book", nil)
		case errs.Is(err, commands.ErrOfferedBookNotOwned):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errs.Is(err, commands.ErrBookNotAvailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book no longer available", nil)
		default:
			slog.Error("create exchange failed", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Header("Location", "/api/exchanges/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromExchangeView(view))
}

// @Summary Respond to exchange request
// @Description Accept or decline an exchange request targeting one of your books
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exchange request ID"
// @Param request body reqdto.RespondExchangeRequest true "Response action"
// @Success 200 {object} resdto.ExchangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /exchanges/{id}/respond [post]
func (h *ExchangeHandler) Respond(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.RespondExchangeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.exchangeCommands.Respond(c.Request.Context(), id, userID, exchange.Action(req.NormalizedAction()))
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidAction):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Action must be accept or decline", nil)
		case errs.Is(err, commands.ErrExchangeNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errs.Is(err, commands.ErrNotRequestOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errs.Is(err, commands.ErrExchangeNotPending):
			httperr.AbortWithError(c, http.StatusConflict, err, "Request already resolved", nil)
		case errs.Is(err, commands.ErrBookNotAvailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book no longer available", nil)
		default:
			slog.Error("respond to exchange failed", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromExchangeView(view))
}
