package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voyagevr/api/internal/modules/model"
	"gorm.io/gorm"
)

type BookingRepo interface {
	Create(ctx context.Context, b *model.VRBooking) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.VRBooking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.VRBooking, error)
	CountActive(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.VRBooking, error)
	List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.VRBooking, error)
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) BookingRepo {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, b *model.VRBooking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.VRBooking, error) {
	var b model.VRBooking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.VRBooking, error) {
	var bookings []model.VRBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// CountActive counts the user's bookings in a non-terminal status.
func (r *bookingRepo) CountActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.VRBooking{}).
		Where("user_id = ? AND status IN ?", userID, model.ActiveBookingStatuses).
		Count(&count).Error
	return count, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.VRBooking, error) {
	var b model.VRBooking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&b).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) List(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]model.VRBooking, error) {
	q := r.db.WithContext(ctx).Model(&model.VRBooking{})

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

	var bookings []model.VRBooking
	query := q.Order(orderBy)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return bookings, query.Find(&bookings).Error
}
