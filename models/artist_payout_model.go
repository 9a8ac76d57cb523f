package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArtistPayoutStatus string

const (
	ArtistPayoutCompleted ArtistPayoutStatus = "completed"
)

type ArtistPayout struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ArtistID uuid.UUID `gorm:"not null;index" json:"artist_id"`
	AdminID  uuid.UUID `gorm:"not null" json:"admin_id"`
	Amount   float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Notes    *string   `gorm:"type:text" json:"notes,omitempty"`

	PayoutStatus ArtistPayoutStatus `gorm:"size:20;not null;default:'completed'" json:"payout_status"`
	PayoutDate   time.Time          `gorm:"not null" json:"payout_date"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *ArtistPayout) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
