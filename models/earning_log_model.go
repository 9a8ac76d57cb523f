package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
)

// EarningLog is the immutable settlement record for one completed payment.
// Only the payout linkage fields (PayoutStatus, PayoutAt, PayoutID) are ever
// updated, and exactly once, when the entry is swept into an ArtistPayout.
type EarningLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ArtistID      uuid.UUID `gorm:"not null;index" json:"artist_id"`
	AdminID       uuid.UUID `gorm:"not null" json:"admin_id"`
	AppointmentID uuid.UUID `gorm:"not null" json:"appointment_id"`
	PaymentID     uuid.UUID `gorm:"not null" json:"payment_id"`

	TotalAmount  float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	ArtistShare  float64 `gorm:"type:numeric(10,2);not null" json:"artist_share"`
	AdminShare   float64 `gorm:"type:numeric(10,2);not null" json:"admin_share"`
	PremiumBonus float64 `gorm:"type:numeric(10,2);not null;default:0" json:"premium_bonus"`

	PayoutStatus PayoutStatus `gorm:"size:20;not null;default:'pending'" json:"payout_status"`
	CalculatedAt time.Time    `gorm:"not null" json:"calculated_at"`
	PayoutAt     *time.Time   `json:"payout_at,omitempty"`
	PayoutID     *uuid.UUID   `gorm:"index" json:"payout_id,omitempty"`
}

func (e *EarningLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
