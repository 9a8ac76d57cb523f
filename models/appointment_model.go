package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentPaid      AppointmentStatus = "paid"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID  `gorm:"not null;index" json:"client_id"`
	ArtistID *uuid.UUID `gorm:"index" json:"artist_id"`
	DesignID *uuid.UUID `json:"design_id"`
	// At most one non-cancelled appointment may reference a slot. Cancelled
	// appointments keep their slot_id for history, so the uniqueness lives in
	// a partial index created during migration, not in a column constraint.
	SlotID *uuid.UUID `gorm:"index" json:"slot_id"`

	// Copied from the slot's start time when the slot is bound; never diverges.
	AppointmentDateTime time.Time         `json:"appointment_date_time"`
	Status              AppointmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	CancellationReason *string `gorm:"size:255" json:"cancellation_reason,omitempty"`
	ClientNote         *string `gorm:"type:text" json:"client_note,omitempty"`

	Client User     `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Slot   TimeSlot `gorm:"foreignkey:SlotID" json:"slot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
