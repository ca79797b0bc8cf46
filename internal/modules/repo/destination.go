package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

// DestinationFilter narrows the catalog listing. Zero values mean "no
// constraint".
type DestinationFilter struct {
	Location string
	MinPrice float64
	MaxPrice float64
}

type DestinationRepo interface {
	Create(ctx context.Context, d *model.Destination) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Destination, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*model.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter DestinationFilter) ([]model.Destination, error)
	SetRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type destinationRepo struct{ db *gorm.DB }

func NewDestinationRepo(db *gorm.DB) DestinationRepo {
	return &destinationRepo{db: db}
}

func (r *destinationRepo) Create(ctx context.Context, d *model.Destination) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *destinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Destination, error) {
	var d model.Destination
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*model.Destination, error) {
	var d model.Destination
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return &d, nil
	}
	if err := r.db.WithContext(ctx).Model(&d).Updates(patch).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *destinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Destination{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *destinationRepo) List(ctx context.Context, filter DestinationFilter) ([]model.Destination, error) {
	q := r.db.WithContext(ctx).Model(&model.Destination{})

	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var destinations []model.Destination
	return destinations, q.Order("created_at DESC").Find(&destinations).Error
}

func (r *destinationRepo) SetRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Destination{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}
