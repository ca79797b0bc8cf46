package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(s service.BookingService) *BookingHandler {
	return &BookingHandler{svc: s}
}

// ListBookings godoc
//
//	@Summary	List the caller's VR bookings
//	@Tags		booking
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=[]model.VRBooking}
//	@Router		/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	bookings, err := h.svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: bookings})
}

type CreateBookingReq struct {
	Date     string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	TimeSlot string `json:"time_slot" binding:"required,timeslot" example:"9:00 AM - 11:00 AM"`
	Address  string `json:"address" binding:"required" example:"123 Main St"`
	Notes    string `json:"notes" binding:"omitempty,max=2000"`
}

// CreateBooking godoc
//
//	@Summary		Book an in-home VR demo session
//	@Description	Creates a confirmed booking. Rejected while the caller already holds a pending or confirmed booking.
//	@Tags			booking
//	@Accept			json
//	@Produce		json
//	@Param			body	body	CreateBookingReq	true	"Booking details"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.VRBooking}
//	@Failure		409	{object}	serializer.Response
//	@Router			/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	req := CreateBookingReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid date", err))
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), service.CreateBookingInput{
		UserID:   user.ID,
		Date:     date,
		TimeSlot: req.TimeSlot,
		Address:  req.Address,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActiveBookingExists):
			c.JSON(http.StatusConflict, serializer.ConflictErr("you already have an active booking"))
		case errors.Is(err, service.ErrBookingInProgress):
			c.JSON(http.StatusConflict, serializer.ConflictErr("a booking request is already being processed"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: booking})
}

// CancelBooking godoc
//
//	@Summary	Cancel one of the caller's bookings
//	@Tags		booking
//	@Produce	json
//	@Param		booking_id	path	string	true	"Booking ID"	format(uuid)
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=model.VRBooking}
//	@Failure	403	{object}	serializer.Response
//	@Failure	404	{object}	serializer.Response
//	@Router		/bookings/cancel/{booking_id} [put]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid booking id", err))
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	booking, err := h.svc.Cancel(c.Request.Context(), user.ID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("booking not found"))
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr("not your booking"))
		default:
			c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		}
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: booking})
}

// GetActiveBooking reports whether the caller holds a non-terminal booking.
func (h *BookingHandler) GetActiveBooking(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	hasActive, err := h.svc.HasActive(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"has_active": hasActive}})
}
