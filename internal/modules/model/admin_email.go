package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminEmail is one entry of the persisted admin allow-list. The allow-list
// is the source of truth for admin privileges; the protected bootstrap entry
// cannot be revoked so the list can never empty out.
type AdminEmail struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:uq_admin_emails_email" json:"email"`
	Protected bool      `gorm:"not null;default:false" json:"protected"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AdminEmail) TableName() string { return "admin_emails" }
