package repo

import (
	"context"
	"strings"

	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type AdminRepo interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminEmail, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, entry *model.AdminEmail) error
	DeleteByEmail(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.AdminEmail, error)
}

type adminRepo struct{ db *gorm.DB }

func NewAdminRepo(db *gorm.DB) AdminRepo {
	return &adminRepo{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminEmail, error) {
	var entry model.AdminEmail
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *adminRepo) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminEmail{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *adminRepo) Create(ctx context.Context, entry *model.AdminEmail) error {
	entry.Email = normalizeEmail(entry.Email)
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *adminRepo) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Delete(&model.AdminEmail{}).Error
}

func (r *adminRepo) List(ctx context.Context) ([]model.AdminEmail, error) {
	var entries []model.AdminEmail
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
