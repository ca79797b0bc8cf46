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

type PackageHandler struct {
	svc service.PackageService
}

func NewPackageHandler(s service.PackageService) *PackageHandler {
	return &PackageHandler{svc: s}
}

// ListPackages godoc
//
//	@Summary	List the caller's saved destinations
//	@Tags		package
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.PackageMembership}
//	@Router		/packages [get]
func (h *PackageHandler) ListPackages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	memberships, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: memberships})
}

type AddPackageReq struct {
	DestinationID string `json:"destination_id" binding:"required,uuid"`
	GroupID       string `json:"group_id" binding:"omitempty,uuid"`
	Label         string `json:"label" binding:"omitempty,max=200"`
}

// AddPackage godoc
//
//	@Summary		Save a destination into the caller's package
//	@Description	Adding a destination already present is a no-op; the response message says so and no duplicate is created.
//	@Tags			package
//	@Accept			json
//	@Produce		json
//	@Param			body	body	AddPackageReq	true	"Destination to save"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.AddToPackageOutput}
//	@Router			/packages [post]
func (h *PackageHandler) AddPackage(c *gin.Context) {
	req := AddPackageReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	destinationID, _ := uuid.Parse(req.DestinationID)
	groupID := uuid.Nil
	if req.GroupID != "" {
		groupID, _ = uuid.Parse(req.GroupID)
	}

	out, err := h.svc.Add(c.Request.Context(), service.AddToPackageInput{
		UserID:        user.ID,
		DestinationID: destinationID,
		GroupID:       groupID,
		Label:         req.Label,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("package group not found"))
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr("not your package group"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	resp := serializer.Response{Data: out}
	if out.AlreadyPresent {
		resp.Msg = "destination is already in your package"
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePackage removes a destination from the caller's package. Removing an
// absent destination succeeds.
func (h *PackageHandler) DeletePackage(c *gin.Context) {
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

	if err := h.svc.Remove(c.Request.Context(), user.ID, destinationID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// ListGroups godoc
//
//	@Summary	List the caller's package groups
//	@Tags		package
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.PackageGroup}
//	@Router		/packages/groups [get]
func (h *PackageHandler) ListGroups(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	groups, err := h.svc.ListGroups(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: groups})
}

type CreateGroupReq struct {
	Name string `json:"name" binding:"required,max=200"`
}

// CreateGroup godoc
//
//	@Summary	Create a package group
//	@Tags		package
//	@Accept		json
//	@Produce	json
//	@Param		body	body	CreateGroupReq	true	"Group name"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.PackageGroup}
//	@Router		/packages/groups [post]
func (h *PackageHandler) CreateGroup(c *gin.Context) {
	req := CreateGroupReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	group, err := h.svc.CreateGroup(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: group})
}
