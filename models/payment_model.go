package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID     `gorm:"not null;unique" json:"appointment_id"`
	ClientID      uuid.UUID     `gorm:"not null" json:"client_id"`
	Amount        float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method        string        `gorm:"size:50;not null" json:"method"`
	TransactionID string        `gorm:"size:64;not null;unique" json:"transaction_id"`
	Status        PaymentStatus `gorm:"size:20;not null" json:"status"`
	PaymentDate   time.Time     `json:"payment_date"`

	Appointment Appointment `gorm:"foreignkey:AppointmentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
