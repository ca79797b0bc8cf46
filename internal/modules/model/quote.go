package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuoteStatusPending   = "pending"
	QuoteStatusContacted = "contacted"
	QuoteStatusCompleted = "completed"
	QuoteStatusCancelled = "cancelled"
)

// QuoteRequest captures a snapshot of the user's package contents at request
// time. The destination list is immutable after creation; only the status
// moves.
type QuoteRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:ix_quote_requests_user_id" json:"user_id"`

	DestinationIDs datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;not null" json:"destination_ids"`
	Status         string                         `gorm:"type:text;not null;default:'pending';check:status IN ('pending','contacted','completed','cancelled')" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// QuoteRequest <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (QuoteRequest) TableName() string { return "quote_requests" }
