package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a destination a user has starred. One row per
// (user, destination).
type Favorite struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_dest,priority:1" json:"user_id"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_favorites_user_dest,priority:2" json:"destination_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Favorite <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Favorite <-> Destination
	Destination *Destination `gorm:"foreignKey:DestinationID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Favorite) TableName() string { return "favorites" }
