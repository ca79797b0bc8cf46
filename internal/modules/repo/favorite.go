package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type FavoriteRepo interface {
	Get(ctx context.Context, userID, destinationID uuid.UUID) (*model.Favorite, error)
	Create(ctx context.Context, f *model.Favorite) error
	Delete(ctx context.Context, userID, destinationID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
}

type favoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) FavoriteRepo {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Get(ctx context.Context, userID, destinationID uuid.UUID) (*model.Favorite, error) {
	var f model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *favoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, destinationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}
