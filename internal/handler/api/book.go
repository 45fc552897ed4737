package api

import (
	"log/slog"
	"net/http"

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

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// @Summary List books
// @Description List all books in the catalogue, optionally filtered
// @Tags books
// @Produce json
// @Param genre query string false "Filter by genre"
// @Param condition query string false "Filter by condition"
// @Param q query string false "Free-text search over title and author"
// @Success 200 {array} resdto.BookResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	filter := queries.BookFilter{
		Genre:     c.Query("genre"),
		Condition: c.Query("condition"),
		Text:      c.Query("q"),
	}

	views, err := h.bookQueries.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("list books failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookViews(views))
}

// @Summary List own books
// @Description List the books owned by the current user
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookResponse
// @Failure 401 {object} httperr.Response
// @Router /books/mine [get]
func (h *BookHandler) ListMyBooks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	views, err := h.bookQueries.ListOwnedBy(c.Request.Context(), userID)
	if err != nil {
		slog.Error("list own books failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookViews(views))
}

// @Summary Get book
// @Description Get a single book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		slog.Error("get book failed", "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	if view == nil {
		httperr.AbortWithError(c, http.StatusNotFound, nil, "Not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary Create book
// @Description Add a book to the current user's shelf
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Book to add"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateBookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.bookCommands.CreateBook(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book attributes", nil)
		default:
			slog.Error("create book failed", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Header("Location", "/api/books/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromBookView(view))
}

// @Summary Delete book
// @Description Remove a book from the current user's shelf
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
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

	if err := h.bookCommands.DeleteBook(c.Request.Context(), id, userID); err != nil {
		switch {
		case errs.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errs.Is(err, commands.ErrBookNotOwned):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errs.Is(err, commands.ErrBookHasPendingRequests):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book has pending requests", nil)
		default:
			slog.Error("delete book failed", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
