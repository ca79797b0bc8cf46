package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type QuoteRepo interface {
	Create(ctx context.Context, q *model.QuoteRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.QuoteRequest, error)
	List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.QuoteRequest, error)
}

type quoteRepo struct{ db *gorm.DB }

func NewQuoteRepo(db *gorm.DB) QuoteRepo {
	return &quoteRepo{db: db}
}

func (r *quoteRepo) Create(ctx context.Context, q *model.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	var q model.QuoteRequest
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.QuoteRequest, error) {
	var quotes []model.QuoteRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.QuoteRequest, error) {
	var q model.QuoteRequest
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&q).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quoteRepo) List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.QuoteRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.QuoteRequest{})

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		comparisonOp := ">"
		if timeDesc {
			comparisonOp = "<"
		}
		q = q.Where(
			"(created_at "+comparisonOp+" ?) OR (created_at = ? AND id "+comparisonOp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "created_at ASC, id ASC"
	if timeDesc {
		orderBy = "created_at DESC, id DESC"
	}

	var quotes []model.QuoteRequest
	query := q.Order(orderBy)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return quotes, query.Find(&quotes).Error
}
