package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/voyagevr/api/internal/middleware"
	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, in service.CreateBookingInput) (*model.VRBooking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VRBooking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*model.VRBooking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VRBooking), args.Error(1)
}

func (m *MockBookingService) HasActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.VRBooking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VRBooking), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) (*model.VRBooking, error) {
	args := m.Called(ctx, bookingID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VRBooking), args.Error(1)
}

func (m *MockBookingService) ListAll(ctx context.Context, in service.ListBookingsInput) (*service.ListBookingsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListBookingsOutput), args.Error(1)
}

// testUserMiddleware stands in for the auth middleware in handler tests.
func testUserMiddleware(u *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, u)
		c.Next()
	}
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())
	RegisterValidators()

	user := &model.User{ID: uuid.New(), Email: "traveller@example.com"}

	tests := []struct {
		name           string
		body           string
		setup          func(*MockBookingService)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"date":"2026-09-12","time_slot":"10:00 AM - 12:00 PM","address":"12 Harbour St, Sydney"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateBookingInput) bool {
					return in.UserID == user.ID &&
						in.Date.Equal(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)) &&
						in.TimeSlot == "10:00 AM - 12:00 PM"
				})).Return(&model.VRBooking{
					ID:     uuid.New(),
					UserID: user.ID,
					Status: model.BookingStatusConfirmed,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "conflict - active booking exists",
			body: `{"date":"2026-09-12","time_slot":"10:00 AM - 12:00 PM","address":"12 Harbour St"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrActiveBookingExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "conflict - concurrent request in flight",
			body: `{"date":"2026-09-12","time_slot":"10:00 AM - 12:00 PM","address":"12 Harbour St"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrBookingInProgress)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad request - malformed time slot",
			body:           `{"date":"2026-09-12","time_slot":"10am to noon","address":"12 Harbour St"}`,
			setup:          func(svc *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing address",
			body:           `{"date":"2026-09-12","time_slot":"10:00 AM - 12:00 PM"}`,
			setup:          func(svc *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - malformed date",
			body:           `{"date":"12/09/2026","time_slot":"10:00 AM - 12:00 PM","address":"12 Harbour St"}`,
			setup:          func(svc *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			tt.setup(svc)
			h := NewBookingHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.POST("/bookings", testUserMiddleware(user), h.CreateBooking)

			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	user := &model.User{ID: uuid.New()}
	bookingID := uuid.New()

	tests := []struct {
		name           string
		bookingParam   string
		setup          func(*MockBookingService)
		expectedStatus int
	}{
		{
			name:         "success",
			bookingParam: bookingID.String(),
			setup: func(svc *MockBookingService) {
				svc.On("Cancel", mock.Anything, user.ID, bookingID).
					Return(&model.VRBooking{ID: bookingID, UserID: user.ID, Status: model.BookingStatusCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:         "not found",
			bookingParam: bookingID.String(),
			setup: func(svc *MockBookingService) {
				svc.On("Cancel", mock.Anything, user.ID, bookingID).Return(nil, service.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:         "forbidden - not the owner",
			bookingParam: bookingID.String(),
			setup: func(svc *MockBookingService) {
				svc.On("Cancel", mock.Anything, user.ID, bookingID).Return(nil, service.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "bad request - malformed id",
			bookingParam:   "not-a-uuid",
			setup:          func(svc *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			tt.setup(svc)
			h := NewBookingHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.PUT("/bookings/cancel/:booking_id", testUserMiddleware(user), h.CancelBooking)

			req := httptest.NewRequest(http.MethodPut, "/bookings/cancel/"+tt.bookingParam, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_GetActiveBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	user := &model.User{ID: uuid.New()}

	svc := &MockBookingService{}
	svc.On("HasActive", mock.Anything, user.ID).Return(true, nil)
	h := NewBookingHandler(svc)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.GET("/bookings/active", testUserMiddleware(user), h.GetActiveBooking)

	req := httptest.NewRequest(http.MethodGet, "/bookings/active", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp serializer.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.True(t, data["has_active"].(bool))

	svc.AssertExpectations(t)
}
