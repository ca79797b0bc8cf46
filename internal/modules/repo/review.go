package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]model.Review, error)
	AverageRating(ctx context.Context, destinationID uuid.UUID) (float64, error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) AverageRating(ctx context.Context, destinationID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("destination_id = ?", destinationID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
