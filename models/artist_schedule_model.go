package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArtistSchedule is one weekly working-hours row: the artist works
// [StartTime, EndTime) every DayOfWeek, sliced into SlotDuration-minute slots.
type ArtistSchedule struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ArtistID     uuid.UUID `gorm:"not null;index" json:"artist_id"`
	DayOfWeek    int       `gorm:"not null" json:"day_of_week"` // 0-6 (Sunday-Saturday)
	StartTime    string    `gorm:"size:5;not null" json:"start_time"` // "09:00"
	EndTime      string    `gorm:"size:5;not null" json:"end_time"`   // "17:00"
	SlotDuration int       `gorm:"not null;default:60" json:"slot_duration"` // minutes
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *ArtistSchedule) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
