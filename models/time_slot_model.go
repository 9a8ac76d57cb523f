package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotStatus string

const (
	SlotAvailable          SlotStatus = "available"
	SlotPendingAppointment SlotStatus = "pending_appointment"
	SlotBooked             SlotStatus = "booked"
	SlotBlocked            SlotStatus = "blocked"
)

type TimeSlot struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ArtistID  uuid.UUID  `gorm:"not null;index" json:"artist_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   time.Time  `gorm:"not null" json:"end_time"`
	Status    SlotStatus `gorm:"size:20;not null;default:'available'" json:"status"`

	BlockReason      *string    `gorm:"size:255" json:"block_reason,omitempty"`
	BlockedByAdminID *uuid.UUID `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (t *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
