package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
	"github.com/voyagevr/api/internal/pkg/paging"
)

// AdminHandler exposes the operator surface: cross-user listings,
// status transitions and allow-list management.
type AdminHandler struct {
	bookings service.BookingService
	quotes   service.QuoteService
	users    service.UserService
	admins   service.AdminService
}

func NewAdminHandler(
	bookings service.BookingService,
	quotes service.QuoteService,
	users service.UserService,
	admins service.AdminService,
) *AdminHandler {
	return &AdminHandler{bookings: bookings, quotes: quotes, users: users, admins: admins}
}

type adminListQuery struct {
	Limit    int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Cursor   string `form:"cursor"`
	TimeDesc bool   `form:"time_desc,default=true"`
}

// ListAllBookings godoc
//
//	@Summary	List bookings across all users
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit		query		int		false	"page size"
//	@Param		cursor		query		string	false	"opaque cursor from a previous page"
//	@Success	200			{object}	serializer.Response{data=service.ListBookingsOutput}
//	@Router		/admin/bookings [get]
func (h *AdminHandler) ListAllBookings(c *gin.Context) {
	q := adminListQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.bookings.ListAll(c.Request.Context(), service.ListBookingsInput{
		Limit:    q.Limit,
		Cursor:   q.Cursor,
		TimeDesc: q.TimeDesc,
	})
	if err != nil {
		if errors.Is(err, paging.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid cursor", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateBookingStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// UpdateBookingStatus moves a booking to the given status on behalf of an operator.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid booking id", err))
		return
	}
	req := UpdateBookingStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), bookingID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("booking not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: booking})
}

// ListAllQuotes godoc
//
//	@Summary	List quote requests across all users
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	serializer.Response{data=service.ListQuotesOutput}
//	@Router		/admin/quotes [get]
func (h *AdminHandler) ListAllQuotes(c *gin.Context) {
	q := adminListQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.quotes.ListAll(c.Request.Context(), service.ListQuotesInput{
		Limit:    q.Limit,
		Cursor:   q.Cursor,
		TimeDesc: q.TimeDesc,
	})
	if err != nil {
		if errors.Is(err, paging.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid cursor", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

type UpdateQuoteStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending contacted completed cancelled"`
}

func (h *AdminHandler) UpdateQuoteStatus(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("quote_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid quote id", err))
		return
	}
	req := UpdateQuoteStatusReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	quote, err := h.quotes.UpdateStatus(c.Request.Context(), quoteID, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("quote not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: quote})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	q := adminListQuery{}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.users.List(c.Request.Context(), service.ListUsersInput{
		Limit:    q.Limit,
		Cursor:   q.Cursor,
		TimeDesc: q.TimeDesc,
	})
	if err != nil {
		if errors.Is(err, paging.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid cursor", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: admins})
}

type GrantAdminReq struct {
	Email string `json:"email" binding:"required,email"`
}

// GrantAdmin adds an email to the allow-list. Granting an email that is
// already listed succeeds without change.
func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	req := GrantAdminReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	entry, err := h.admins.Grant(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: entry})
}

type RevokeAdminReq struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AdminHandler) RevokeAdmin(c *gin.Context) {
	req := RevokeAdminReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.admins.Revoke(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrProtectedAdmin) {
			c.JSON(http.StatusForbidden, serializer.ForbiddenErr("the bootstrap admin cannot be revoked"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "revoked"})
}
