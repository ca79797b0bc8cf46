package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExperienceVR       = "vr"
	ExperienceRealLife = "real_life"
)

// Review is an append-only per-destination rating. Reviews are never edited
// or deleted through the API.
type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:ix_reviews_user_id" json:"user_id"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index:ix_reviews_destination_id" json:"destination_id"`

	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string `gorm:"type:text;not null;default:''" json:"comment"`
	Experience string `gorm:"type:text;not null;default:'vr';check:experience IN ('vr','real_life')" json:"experience"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Review <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Review <-> Destination
	Destination *Destination `gorm:"foreignKey:DestinationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Review) TableName() string { return "reviews" }
