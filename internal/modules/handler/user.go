package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type UserHandler struct {
	svc    service.UserService
	admins service.AdminService
}

func NewUserHandler(s service.UserService, admins service.AdminService) *UserHandler {
	return &UserHandler{svc: s, admins: admins}
}

// MeResponse is the caller's profile plus the derived admin flag.
type MeResponse struct {
	model.User
	IsAdmin bool `json:"is_admin"`
}

// Me godoc
//
//	@Summary	Get the caller's profile
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=MeResponse}
//	@Router		/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	isAdmin, err := h.admins.IsAdmin(c.Request.Context(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: MeResponse{User: *user, IsAdmin: isAdmin}})
}

type UpdateMeReq struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=200"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url"`
}

// UpdateMe patches the caller's profile; omitted fields stay unchanged.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	req := UpdateMeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	updated, err := h.svc.UpdateProfile(c.Request.Context(), user.ID, service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: updated})
}
