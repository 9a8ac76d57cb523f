package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppointmentEngine drives the appointment state machine:
//
//	PENDING   --confirm-->          CONFIRMED
//	PENDING   --cancel-->           CANCELLED (slot released)
//	CONFIRMED --payment success-->  PAID
//	CONFIRMED --cancel-->           CANCELLED (slot released)
//	PAID      --service rendered--> COMPLETED
//
// Every transition re-reads the stored status under a row lock inside the same
// transaction as the mutation, so competing writers on one appointment are
// serialized by the database.
type AppointmentEngine struct {
	db *gorm.DB
}

func NewAppointmentEngine(db *gorm.DB) *AppointmentEngine {
	return &AppointmentEngine{db: db}
}

type BookRequest struct {
	ClientID uuid.UUID
	ArtistID uuid.UUID
	DesignID *uuid.UUID
	SlotID   uuid.UUID
	Note     *string
}

// Book reserves the slot and creates a PENDING appointment in one transaction.
// Losing a reservation race surfaces as ErrSlotUnavailable with nothing
// persisted.
func (e *AppointmentEngine) Book(req BookRequest) (*models.Appointment, error) {
	var appointment models.Appointment
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var client models.User
		if err := tx.First(&client, "id = ?", req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: client %s", ErrNotFound, req.ClientID)
			}
			return err
		}

		var slot models.TimeSlot
		if err := tx.First(&slot, "id = ?", req.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: slot %s", ErrNotFound, req.SlotID)
			}
			return err
		}
		if slot.ArtistID != req.ArtistID {
			return fmt.Errorf("%w: slot belongs to a different artist", ErrOwnershipMismatch)
		}

		if req.DesignID != nil {
			var design models.Design
			if err := tx.First(&design, "id = ?", *req.DesignID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: design %s", ErrNotFound, *req.DesignID)
				}
				return err
			}
			if design.ArtistID != req.ArtistID {
				return fmt.Errorf("%w: design belongs to a different artist", ErrOwnershipMismatch)
			}
		}

		if err := reserveSlot(tx, req.SlotID); err != nil {
			return err
		}

		artistID := req.ArtistID
		slotID := req.SlotID
		appointment = models.Appointment{
			ClientID:            req.ClientID,
			ArtistID:            &artistID,
			DesignID:            req.DesignID,
			SlotID:              &slotID,
			AppointmentDateTime: slot.StartTime,
			Status:              models.AppointmentPending,
			ClientNote:          req.Note,
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Confirm moves PENDING -> CONFIRMED and books the slot.
func (e *AppointmentEngine) Confirm(appointmentID uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.Status != models.AppointmentPending {
			return invalidTransition("appointment", string(appointment.Status), string(models.AppointmentConfirmed))
		}
		if appointment.SlotID != nil {
			if err := confirmSlot(tx, *appointment.SlotID); err != nil {
				return err
			}
		}
		return tx.Model(appointment).Update("status", models.AppointmentConfirmed).Error
	})
}

// Cancel is valid from PENDING or CONFIRMED, and from PAID only when
// adminOverride is set (post-payment cancellation is otherwise out of scope).
// The bound slot is released unconditionally.
func (e *AppointmentEngine) Cancel(appointmentID uuid.UUID, reason string, adminOverride bool) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, appointmentID)
		if err != nil {
			return err
		}
		switch appointment.Status {
		case models.AppointmentPending, models.AppointmentConfirmed:
		case models.AppointmentPaid:
			if !adminOverride {
				return invalidTransition("appointment", string(appointment.Status), string(models.AppointmentCancelled))
			}
		default:
			return invalidTransition("appointment", string(appointment.Status), string(models.AppointmentCancelled))
		}

		if appointment.SlotID != nil {
			if err := releaseSlot(tx, *appointment.SlotID); err != nil {
				return err
			}
		}
		return tx.Model(appointment).Updates(map[string]interface{}{
			"status":              models.AppointmentCancelled,
			"cancellation_reason": reason,
		}).Error
	})
}

// MarkCompleted moves PAID -> COMPLETED once the service has been rendered.
func (e *AppointmentEngine) MarkCompleted(appointmentID uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.Status != models.AppointmentPaid {
			return invalidTransition("appointment", string(appointment.Status), string(models.AppointmentCompleted))
		}
		return tx.Model(appointment).Update("status", models.AppointmentCompleted).Error
	})
}

// AssignSlot is the administrative path binding a slot to an appointment that
// lacks one. The slot must be AVAILABLE; it is reserved, and booked immediately
// when the appointment is already CONFIRMED.
func (e *AppointmentEngine) AssignSlot(appointmentID, slotID uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.Status == models.AppointmentCancelled || appointment.Status == models.AppointmentCompleted {
			return validationErr("cannot assign a slot to a %s appointment", appointment.Status)
		}
		if appointment.SlotID != nil {
			return validationErr("appointment already has a slot assigned")
		}

		var slot models.TimeSlot
		if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
			}
			return err
		}
		if appointment.ArtistID != nil && slot.ArtistID != *appointment.ArtistID {
			return fmt.Errorf("%w: slot belongs to a different artist", ErrOwnershipMismatch)
		}

		if err := reserveSlot(tx, slotID); err != nil {
			return err
		}
		if appointment.Status == models.AppointmentConfirmed {
			if err := confirmSlot(tx, slotID); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"slot_id":               slotID,
			"appointment_date_time": slot.StartTime,
		}
		if appointment.ArtistID == nil {
			updates["artist_id"] = slot.ArtistID
		}
		return tx.Model(appointment).Updates(updates).Error
	})
}

func lockAppointment(tx *gorm.DB, appointmentID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
		}
		return nil, err
	}
	return &appointment, nil
}
