package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/voyagevr/api/internal/modules/model"
)

// MockAdminRepo is a mock implementation of AdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminEmail, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminEmail), args.Error(1)
}

func (m *MockAdminRepo) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepo) Create(ctx context.Context, entry *model.AdminEmail) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAdminRepo) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAdminRepo) List(ctx context.Context) ([]model.AdminEmail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AdminEmail), args.Error(1)
}

func TestAdminService_IsAdmin(t *testing.T) {
	ctx := context.Background()

	r := &MockAdminRepo{}
	r.On("Exists", mock.Anything, "ops@voyagevr.io").Return(true, nil)
	svc := NewAdminService(r)

	ok, err := svc.IsAdmin(ctx, "ops@voyagevr.io")
	assert.NoError(t, err)
	assert.True(t, ok)

	// an empty email never hits the store
	ok, err = svc.IsAdmin(ctx, "")
	assert.NoError(t, err)
	assert.False(t, ok)

	r.AssertExpectations(t)
}

func TestAdminService_Grant(t *testing.T) {
	ctx := context.Background()
	email := "new-admin@voyagevr.io"

	tests := []struct {
		name  string
		setup func(*MockAdminRepo)
	}{
		{
			name: "grants a new admin",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, email).Return(nil, gorm.ErrRecordNotFound)
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminEmail")).Return(nil)
			},
		},
		{
			name: "granting an existing admin is idempotent",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, email).Return(&model.AdminEmail{Email: email}, nil)
			},
		},
		{
			name: "concurrent grant collapses on the unique index",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, email).Return(nil, gorm.ErrRecordNotFound).Once()
				r.On("Create", mock.Anything, mock.AnythingOfType("*model.AdminEmail")).Return(gorm.ErrDuplicatedKey)
				r.On("GetByEmail", mock.Anything, email).Return(&model.AdminEmail{Email: email}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &MockAdminRepo{}
			tt.setup(r)
			svc := NewAdminService(r)

			entry, err := svc.Grant(ctx, email)
			assert.NoError(t, err)
			assert.Equal(t, email, entry.Email)
			r.AssertExpectations(t)
		})
	}
}

func TestAdminService_Revoke(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		setup   func(*MockAdminRepo)
		wantErr error
	}{
		{
			name:  "revokes an admin",
			email: "ops@voyagevr.io",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, "ops@voyagevr.io").
					Return(&model.AdminEmail{Email: "ops@voyagevr.io"}, nil)
				r.On("DeleteByEmail", mock.Anything, "ops@voyagevr.io").Return(nil)
			},
		},
		{
			name:  "the protected bootstrap entry cannot be revoked",
			email: "root@voyagevr.io",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, "root@voyagevr.io").
					Return(&model.AdminEmail{Email: "root@voyagevr.io", Protected: true}, nil)
			},
			wantErr: ErrProtectedAdmin,
		},
		{
			name:  "revoking an absent entry succeeds",
			email: "gone@voyagevr.io",
			setup: func(r *MockAdminRepo) {
				r.On("GetByEmail", mock.Anything, "gone@voyagevr.io").Return(nil, gorm.ErrRecordNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &MockAdminRepo{}
			tt.setup(r)
			svc := NewAdminService(r)

			err := svc.Revoke(ctx, tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			r.AssertExpectations(t)
		})
	}
}
