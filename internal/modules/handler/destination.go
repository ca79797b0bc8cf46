package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/repo"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type DestinationHandler struct {
	svc service.DestinationService
}

func NewDestinationHandler(s service.DestinationService) *DestinationHandler {
	return &DestinationHandler{svc: s}
}

type ListDestinationsReq struct {
	Location string  `form:"location" binding:"omitempty,max=200"`
	MinPrice float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice float64 `form:"max_price" binding:"omitempty,min=0"`
}

// ListDestinations godoc
//
//	@Summary	Browse the destination catalog
//	@Tags		destination
//	@Produce	json
//	@Param		location	query	string	false	"Filter by location substring"
//	@Param		min_price	query	number	false	"Minimum price"
//	@Param		max_price	query	number	false	"Maximum price"
//	@Success	200	{object}	serializer.Response{data=[]model.Destination}
//	@Router		/destinations [get]
func (h *DestinationHandler) ListDestinations(c *gin.Context) {
	req := ListDestinationsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	destinations, err := h.svc.List(c.Request.Context(), repo.DestinationFilter{
		Location: req.Location,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: destinations})
}

func (h *DestinationHandler) GetDestination(c *gin.Context) {
	id, err := uuid.Parse(c.Param("destination_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid destination id", err))
		return
	}

	destination, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: destination})
}

type CreateDestinationReq struct {
	Name        string               `json:"name" binding:"required,max=200"`
	Location    string               `json:"location" binding:"required,max=200"`
	Description string               `json:"description" binding:"omitempty,max=10000"`
	ImageURL    string               `json:"image_url" binding:"omitempty,url"`
	VideoURL    string               `json:"video_url" binding:"omitempty,url"`
	PanoramaURL string               `json:"panorama_url" binding:"omitempty,url"`
	Price       float64              `json:"price" binding:"required,gt=0"`
	Duration    string               `json:"duration" binding:"omitempty,max=100"`
	Itinerary   []model.ItineraryDay `json:"itinerary" binding:"omitempty,dive"`
	Inclusions  []string             `json:"inclusions" binding:"omitempty,dive,max=500"`
}

// CreateDestination is admin-scoped.
func (h *DestinationHandler) CreateDestination(c *gin.Context) {
	req := CreateDestinationReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	destination, err := h.svc.Create(c.Request.Context(), service.CreateDestinationInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoURL:    req.VideoURL,
		PanoramaURL: req.PanoramaURL,
		Price:       req.Price,
		Duration:    req.Duration,
		Itinerary:   req.Itinerary,
		Inclusions:  req.Inclusions,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: destination})
}

// UpdateDestination is admin-scoped; only provided fields change.
func (h *DestinationHandler) UpdateDestination(c *gin.Context) {
	id, err := uuid.Parse(c.Param("destination_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid destination id", err))
		return
	}

	in := service.UpdateDestinationInput{}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	destination, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: destination})
}

// DeleteDestination is admin-scoped. Package memberships and reviews cascade.
func (h *DestinationHandler) DeleteDestination(c *gin.Context) {
	id, err := uuid.Parse(c.Param("destination_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid destination id", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type PresignMediaReq struct {
	Filename    string `json:"filename" binding:"required,max=300"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// PresignMedia issues a presigned upload URL for destination media.
// Admin-scoped.
func (h *DestinationHandler) PresignMedia(c *gin.Context) {
	req := PresignMediaReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.PresignMedia(c.Request.Context(), service.PresignMediaInput{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
