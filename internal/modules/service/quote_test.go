package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voyagevr/api/internal/config"
	"github.com/voyagevr/api/internal/modules/model"
)

// MockQuoteRepo is a mock implementation of QuoteRepo
type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(ctx context.Context, q *model.QuoteRequest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRequest), args.Error(1)
}

func (m *MockQuoteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.QuoteRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuoteRequest), args.Error(1)
}

func (m *MockQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.QuoteRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuoteRequest), args.Error(1)
}

func (m *MockQuoteRepo) List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.QuoteRequest, error) {
	args := m.Called(ctx, afterCreatedAt, afterID, limit, timeDesc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuoteRequest), args.Error(1)
}

func TestQuoteService_Request(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	destA := uuid.New()
	destB := uuid.New()

	tests := []struct {
		name    string
		setup   func(*MockQuoteRepo, *MockPackageRepo)
		wantErr error
		wantIDs []uuid.UUID
	}{
		{
			name: "snapshots the current package",
			setup: func(q *MockQuoteRepo, p *MockPackageRepo) {
				p.On("ListDestinationIDs", mock.Anything, userID).Return([]uuid.UUID{destA, destB}, nil)
				q.On("Create", mock.Anything, mock.AnythingOfType("*model.QuoteRequest")).Return(nil)
			},
			wantIDs: []uuid.UUID{destA, destB},
		},
		{
			name: "empty package is rejected",
			setup: func(q *MockQuoteRepo, p *MockPackageRepo) {
				p.On("ListDestinationIDs", mock.Anything, userID).Return([]uuid.UUID{}, nil)
			},
			wantErr: ErrEmptyPackage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &MockQuoteRepo{}
			p := &MockPackageRepo{}
			tt.setup(q, p)

			packages := NewPackageService(p, &MockDestinationRepo{})
			svc := NewQuoteService(q, packages, nil, &config.Config{}, zap.NewNop())

			quote, err := svc.Request(ctx, userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, quote)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.QuoteStatusPending, quote.Status)
				assert.Equal(t, tt.wantIDs, []uuid.UUID(quote.DestinationIDs))
			}

			q.AssertExpectations(t)
			p.AssertExpectations(t)
		})
	}
}

func TestQuoteService_Request_SnapshotSurvivesPackageEdits(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	destA := uuid.New()

	q := &MockQuoteRepo{}
	p := &MockPackageRepo{}
	p.On("ListDestinationIDs", mock.Anything, userID).Return([]uuid.UUID{destA}, nil)
	q.On("Create", mock.Anything, mock.AnythingOfType("*model.QuoteRequest")).Return(nil)
	p.On("DeleteMembership", mock.Anything, userID, destA).Return(nil)

	packages := NewPackageService(p, &MockDestinationRepo{})
	svc := NewQuoteService(q, packages, nil, &config.Config{}, zap.NewNop())

	quote, err := svc.Request(ctx, userID)
	assert.NoError(t, err)

	// clearing the package afterwards does not touch the stored snapshot
	assert.NoError(t, packages.Remove(ctx, userID, destA))
	assert.Equal(t, []uuid.UUID{destA}, []uuid.UUID(quote.DestinationIDs))

	q.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestQuoteService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	quoteID := uuid.New()

	tests := []struct {
		name    string
		setup   func(*MockQuoteRepo)
		wantErr error
	}{
		{
			name: "operator marks the quote contacted",
			setup: func(q *MockQuoteRepo) {
				q.On("UpdateStatus", mock.Anything, quoteID, model.QuoteStatusContacted).
					Return(&model.QuoteRequest{ID: quoteID, Status: model.QuoteStatusContacted}, nil)
			},
		},
		{
			name: "unknown quote",
			setup: func(q *MockQuoteRepo) {
				q.On("UpdateStatus", mock.Anything, quoteID, model.QuoteStatusContacted).
					Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: ErrQuoteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &MockQuoteRepo{}
			tt.setup(q)

			packages := NewPackageService(&MockPackageRepo{}, &MockDestinationRepo{})
			svc := NewQuoteService(q, packages, nil, &config.Config{}, zap.NewNop())

			quote, err := svc.UpdateStatus(ctx, quoteID, model.QuoteStatusContacted)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.QuoteStatusContacted, quote.Status)
			}

			q.AssertExpectations(t)
		})
	}
}
