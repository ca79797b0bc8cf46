package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/voyagevr/api/internal/modules/model"
	"github.com/voyagevr/api/internal/modules/serializer"
	"github.com/voyagevr/api/internal/modules/service"
)

type MockPackageService struct {
	mock.Mock
}

func (m *MockPackageService) EnsureDefaultGroup(ctx context.Context, userID uuid.UUID) (*model.PackageGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PackageGroup), args.Error(1)
}

func (m *MockPackageService) CreateGroup(ctx context.Context, userID uuid.UUID, name string) (*model.PackageGroup, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PackageGroup), args.Error(1)
}

func (m *MockPackageService) ListGroups(ctx context.Context, userID uuid.UUID) ([]model.PackageGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackageGroup), args.Error(1)
}

func (m *MockPackageService) Add(ctx context.Context, in service.AddToPackageInput) (*service.AddToPackageOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AddToPackageOutput), args.Error(1)
}

func (m *MockPackageService) Remove(ctx context.Context, userID, destinationID uuid.UUID) error {
	args := m.Called(ctx, userID, destinationID)
	return args.Error(0)
}

func (m *MockPackageService) Contains(ctx context.Context, userID, destinationID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, destinationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPackageService) List(ctx context.Context, userID uuid.UUID) ([]model.PackageMembership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackageMembership), args.Error(1)
}

func (m *MockPackageService) ListDestinationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func TestPackageHandler_AddPackage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	user := &model.User{ID: uuid.New()}
	destID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setup          func(*MockPackageService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			body: `{"destination_id":"` + destID.String() + `"}`,
			setup: func(svc *MockPackageService) {
				svc.On("Add", mock.Anything, mock.MatchedBy(func(in service.AddToPackageInput) bool {
					return in.UserID == user.ID && in.DestinationID == destID && in.GroupID == uuid.Nil
				})).Return(&service.AddToPackageOutput{
					Membership: &model.PackageMembership{UserID: user.ID, DestinationID: destID},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate add reports already present",
			body: `{"destination_id":"` + destID.String() + `"}`,
			setup: func(svc *MockPackageService) {
				svc.On("Add", mock.Anything, mock.Anything).Return(&service.AddToPackageOutput{
					Membership:     &model.PackageMembership{UserID: user.ID, DestinationID: destID},
					AlreadyPresent: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp serializer.Response
				assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "destination is already in your package", resp.Msg)
			},
		},
		{
			name: "destination does not exist",
			body: `{"destination_id":"` + destID.String() + `"}`,
			setup: func(svc *MockPackageService) {
				svc.On("Add", mock.Anything, mock.Anything).Return(nil, service.ErrDestinationNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "group belongs to another user",
			body: `{"destination_id":"` + destID.String() + `","group_id":"` + uuid.NewString() + `"}`,
			setup: func(svc *MockPackageService) {
				svc.On("Add", mock.Anything, mock.Anything).Return(nil, service.ErrNotOwner)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "bad request - malformed destination id",
			body:           `{"destination_id":"not-a-uuid"}`,
			setup:          func(svc *MockPackageService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPackageService{}
			tt.setup(svc)
			h := NewPackageHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.POST("/packages", testUserMiddleware(user), h.AddPackage)

			req := httptest.NewRequest(http.MethodPost, "/packages", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPackageHandler_DeletePackage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	user := &model.User{ID: uuid.New()}
	destID := uuid.New()

	svc := &MockPackageService{}
	svc.On("Remove", mock.Anything, user.ID, destID).Return(nil)
	h := NewPackageHandler(svc)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.DELETE("/packages/:destination_id", testUserMiddleware(user), h.DeletePackage)

	req := httptest.NewRequest(http.MethodDelete, "/packages/"+destID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPackageHandler_CreateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())

	user := &model.User{ID: uuid.New()}

	tests := []struct {
		name           string
		body           string
		setup          func(*MockPackageService)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"name":"Honeymoon"}`,
			setup: func(svc *MockPackageService) {
				svc.On("CreateGroup", mock.Anything, user.ID, "Honeymoon").
					Return(&model.PackageGroup{ID: uuid.New(), UserID: user.ID, Name: "Honeymoon"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - empty name",
			body:           `{"name":""}`,
			setup:          func(svc *MockPackageService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPackageService{}
			tt.setup(svc)
			h := NewPackageHandler(svc)

			w := httptest.NewRecorder()
			_, r := gin.CreateTestContext(w)
			r.POST("/packages/groups", testUserMiddleware(user), h.CreateGroup)

			req := httptest.NewRequest(http.MethodPost, "/packages/groups", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
