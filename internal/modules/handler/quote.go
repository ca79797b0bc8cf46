package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type QuoteHandler struct {
	svc service.QuoteService
}

func NewQuoteHandler(s service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: s}
}

// ListQuotes godoc
//
//	@Summary	List the caller's quote requests
//	@Tags		quote
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.QuoteRequest}
//	@Router		/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	quotes, err := h.svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: quotes})
}

// CreateQuote godoc
//
//	@Summary		Request a quote for the caller's current package
//	@Description	Snapshots the package's destination list into a pending quote request. Fails when the package is empty.
//	@Tags			quote
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.QuoteRequest}
//	@Failure		400	{object}	serializer.Response
//	@Router			/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	quote, err := h.svc.Request(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPackage) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("add destinations to your package before requesting a quote", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: quote})
}
