package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Design struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ArtistID    uuid.UUID `gorm:"not null" json:"artist_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	Artist Artist `gorm:"foreignkey:ArtistID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Design) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
