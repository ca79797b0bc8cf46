package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the identity provider's subject. The ID is the provider's
// stable user id, so rows are created with the provider-issued UUID instead
// of a database default.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	DisplayName string    `gorm:"type:text;not null;default:''" json:"display_name"`
	PhotoURL    string    `gorm:"type:text;not null;default:''" json:"photo_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// User <-> VRBooking
	Bookings []VRBooking `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// User <-> PackageGroup
	PackageGroups []PackageGroup `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// User <-> QuoteRequest
	QuoteRequests []QuoteRequest `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// User <-> Favorite
	Favorites []Favorite `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
