package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type PackageRepo interface {
	ListGroups(ctx context.Context, userID uuid.UUID) ([]model.PackageGroup, error)
	FirstGroup(ctx context.Context, userID uuid.UUID) (*model.PackageGroup, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*model.PackageGroup, error)
	CreateGroup(ctx context.Context, g *model.PackageGroup) error

	CreateMembership(ctx context.Context, m *model.PackageMembership) error
	GetMembership(ctx context.Context, userID, destinationID uuid.UUID) (*model.PackageMembership, error)
	DeleteMembership(ctx context.Context, userID, destinationID uuid.UUID) error
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.PackageMembership, error)
	ListDestinationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type packageRepo struct{ db *gorm.DB }

func NewPackageRepo(db *gorm.DB) PackageRepo {
	return &packageRepo{db: db}
}

func (r *packageRepo) ListGroups(ctx context.Context, userID uuid.UUID) ([]model.PackageGroup, error) {
	var groups []model.PackageGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&groups).Error
	return groups, err
}

func (r *packageRepo) FirstGroup(ctx context.Context, userID uuid.UUID) (*model.PackageGroup, error) {
	var g model.PackageGroup
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *packageRepo) GetGroup(ctx context.Context, id uuid.UUID) (*model.PackageGroup, error) {
	var g model.PackageGroup
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *packageRepo) CreateGroup(ctx context.Context, g *model.PackageGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *packageRepo) CreateMembership(ctx context.Context, m *model.PackageMembership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *packageRepo) GetMembership(ctx context.Context, userID, destinationID uuid.UUID) (*model.PackageMembership, error) {
	var m model.PackageMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMembership removes the association only, never the destination.
// Deleting an absent membership is not an error.
func (r *packageRepo) DeleteMembership(ctx context.Context, userID, destinationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND destination_id = ?", userID, destinationID).
		Delete(&model.PackageMembership{}).Error
}

func (r *packageRepo) ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.PackageMembership, error) {
	var memberships []model.PackageMembership
	err := r.db.WithContext(ctx).
		Preload("Destination").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *packageRepo) ListDestinationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.PackageMembership{}).
		Where("user_id = ?", userID).
		Pluck("destination_id", &ids).Error
	return ids, err
}
