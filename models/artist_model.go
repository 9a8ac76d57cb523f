package models

import (
	"time"

	"github.com/google/uuid"
)

type Artist struct {
	UserID      uuid.UUID `gorm:"primary_key" json:"user_id"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Specialty   *string   `gorm:"size:100" json:"specialty"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	PremiumTier bool      `gorm:"default:false" json:"premium_tier"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
