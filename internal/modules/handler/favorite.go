package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(s service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	favorites, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: favorites})
}

// ToggleFavorite flips the favorite state for a destination and returns the
// resulting state.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destination_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid destination id", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	favorited, err := h.svc.Toggle(c.Request.Context(), user.ID, destinationID)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"favorited": favorited}})
}
