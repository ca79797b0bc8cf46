package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ActiveBookingStatuses are the non-terminal statuses. A user may hold at
// most one booking in these statuses at any time; the partial unique index
// uq_vr_bookings_active_user (created alongside AutoMigrate) backs that
// invariant at the store level.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// VRBooking is an in-home VR demo session reservation.
type VRBooking struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:ix_vr_bookings_user_id" json:"user_id"`

	Date     time.Time `gorm:"type:date;not null" json:"date"`
	TimeSlot string    `gorm:"type:text;not null" json:"time_slot"`
	Address  string    `gorm:"type:text;not null" json:"address"`
	Notes    string    `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	Status   string    `gorm:"type:text;not null;default:'pending';check:status IN ('pending','confirmed','completed','cancelled')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// VRBooking <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

// Terminal reports whether the booking can no longer transition.
func (b *VRBooking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

func (VRBooking) TableName() string { return "vr_bookings" }
