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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: s}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	destinationID, err := uuid.Parse(c.Param("destination_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid destination id", err))
		return
	}

	reviews, err := h.svc.ListByDestination(c.Request.Context(), destinationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: reviews})
}

type CreateReviewReq struct {
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"omitempty,max=5000"`
	Experience string `json:"experience" binding:"required,oneof=vr real_life"`
}

// CreateReview godoc
//
//	@Summary	Review a destination
//	@Tags		review
//	@Accept		json
//	@Produce	json
//	@Param		destination_id	path	string			true	"Destination ID"	format(uuid)
//	@Param		body	body	CreateReviewReq	true	"Review"
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.Review}
//	@Router		/destinations/{destination_id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	req := CreateReviewReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

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

	review, err := h.svc.Create(c.Request.Context(), service.CreateReviewInput{
		UserID:        user.ID,
		DestinationID: destinationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Experience:    req.Experience,
	})
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("destination not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: review})
}
