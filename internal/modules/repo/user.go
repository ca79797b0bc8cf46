package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetOrCreate(ctx context.Context, u *model.User) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*model.User, error)
	List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreate provisions the local row for an identity-provider principal on
// first sight. Display name and photo are filled from the provider only when
// the local value is still empty, so profile edits survive later logins.
func (r *userRepo) GetOrCreate(ctx context.Context, u *model.User) (*model.User, error) {
	var existing model.User
	err := r.db.WithContext(ctx).First(&existing, "id = ?", u.ID).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// concurrent first requests may race on the insert
		if getErr := r.db.WithContext(ctx).First(&existing, "id = ?", u.ID).Error; getErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch map[string]interface{}) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return &u, nil
	}
	if err := r.db.WithContext(ctx).Model(&u).Updates(patch).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})

	if !afterCreatedAt.IsZero() && afterID != uuid.Nil {
		comparisonOp := ">"
		if timeDesc {
			comparisonOp = "<"
		}
		q = q.Where(
			"(users.created_at "+comparisonOp+" ?) OR (users.created_at = ? AND users.id "+comparisonOp+" ?)",
			afterCreatedAt, afterCreatedAt, afterID,
		)
	}

	orderBy := "users.created_at ASC, users.id ASC"
	if timeDesc {
		orderBy = "users.created_at DESC, users.id DESC"
	}

	var users []*model.User
	query := q.Order(orderBy)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return users, query.Find(&users).Error
}
