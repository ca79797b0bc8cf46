package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Destination struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Location    string    `gorm:"type:text;not null;index:ix_destinations_location" json:"location"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`

	ImageURL    string `gorm:"type:text;not null;default:''" json:"image_url"`
	VideoURL    string `gorm:"type:text;not null;default:''" json:"video_url,omitempty"`
	PanoramaURL string `gorm:"type:text;not null;default:''" json:"panorama_url,omitempty"`

	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Rating   float64 `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`
	Duration string  `gorm:"type:text;not null;default:''" json:"duration"`

	Itinerary  Itinerary                   `gorm:"type:jsonb" json:"itinerary,omitempty"`
	Inclusions datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"inclusions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Destination <-> Review
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

// ItineraryDay is one entry of a destination's day-by-day plan.
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Itinerary []ItineraryDay

// Scan implements the sql.Scanner interface for Itinerary
func (it *Itinerary) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, it)
}

// Value implements the driver.Valuer interface for Itinerary
func (it Itinerary) Value() (driver.Value, error) {
	if it == nil {
		return nil, nil
	}
	return json.Marshal(it)
}

func (Destination) TableName() string { return "destinations" }
