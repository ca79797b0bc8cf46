package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/voyagevr/api/internal/identity"
	"github.com/voyagevr/api/internal/modules/model"
)

// MockUserRepo is a mock implementation of UserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetOrCreate(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*model.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.User, error) {
	args := m.Called(ctx, afterCreatedAt, afterID, limit, timeDesc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func TestUserService_Provision(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.New()

	t.Run("creates the user on first sight", func(t *testing.T) {
		r := &MockUserRepo{}
		r.On("GetOrCreate", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == principalID && u.Email == "traveller@example.com"
		})).Return(&model.User{ID: principalID, Email: "traveller@example.com"}, nil)

		svc := NewUserService(r, NewAdminService(&MockAdminRepo{}))
		u, err := svc.Provision(ctx, &identity.Principal{
			ID:          principalID,
			Email:       "traveller@example.com",
			DisplayName: "Sam",
		})
		assert.NoError(t, err)
		assert.Equal(t, principalID, u.ID)
		r.AssertExpectations(t)
	})

	t.Run("empty principal is rejected", func(t *testing.T) {
		svc := NewUserService(&MockUserRepo{}, NewAdminService(&MockAdminRepo{}))
		_, err := svc.Provision(ctx, nil)
		assert.Error(t, err)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	name := "Sam T"

	t.Run("patches only the supplied fields", func(t *testing.T) {
		r := &MockUserRepo{}
		r.On("UpdateProfile", mock.Anything, userID, map[string]interface{}{"display_name": name}).
			Return(&model.User{ID: userID, DisplayName: name}, nil)

		svc := NewUserService(r, NewAdminService(&MockAdminRepo{}))
		u, err := svc.UpdateProfile(ctx, userID, UpdateProfileInput{DisplayName: &name})
		assert.NoError(t, err)
		assert.Equal(t, name, u.DisplayName)
		r.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		r := &MockUserRepo{}
		r.On("UpdateProfile", mock.Anything, userID, mock.Anything).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(r, NewAdminService(&MockAdminRepo{}))
		_, err := svc.UpdateProfile(ctx, userID, UpdateProfileInput{DisplayName: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
		r.AssertExpectations(t)
	})
}

func TestUserService_List_DecoratesAdminFlag(t *testing.T) {
	ctx := context.Background()

	users := []*model.User{
		{ID: uuid.New(), Email: "ops@voyagevr.io", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: uuid.New(), Email: "traveller@example.com", CreatedAt: time.Now().Add(-2 * time.Hour)},
	}

	r := &MockUserRepo{}
	r.On("List", mock.Anything, mock.Anything, mock.Anything, 21, true).Return(users, nil)
	adminRepo := &MockAdminRepo{}
	adminRepo.On("List", mock.Anything).Return([]model.AdminEmail{{Email: "ops@voyagevr.io"}}, nil)

	svc := NewUserService(r, NewAdminService(adminRepo))

	out, err := svc.List(ctx, ListUsersInput{Limit: 20, TimeDesc: true})
	assert.NoError(t, err)
	assert.False(t, out.HasMore)
	assert.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].IsAdmin)
	assert.False(t, out.Items[1].IsAdmin)

	r.AssertExpectations(t)
	adminRepo.AssertExpectations(t)
}
