package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"github.com/nthwave/ink_studio/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentProcessor records payments against confirmed appointments. The
// gateway is simulated: a payment is created directly in COMPLETED with a
// locally generated transaction reference. Settlement runs in the same
// transaction, so a payment is never observable without its ledger entry.
type PaymentProcessor struct {
	db          *gorm.DB
	ledger      *SettlementLedger
	systemAdmin uuid.UUID
}

// NewPaymentProcessor takes the admin identity recorded as the system actor on
// ledger entries written by this processor.
func NewPaymentProcessor(db *gorm.DB, ledger *SettlementLedger, systemAdmin uuid.UUID) *PaymentProcessor {
	return &PaymentProcessor{db: db, ledger: ledger, systemAdmin: systemAdmin}
}

// Pay charges clientID for a CONFIRMED appointment, settles earnings, and
// flips the appointment to PAID — all atomically.
func (p *PaymentProcessor) Pay(clientID, appointmentID uuid.UUID, amount float64, method string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, validationErr("payment amount must be positive")
	}
	if method == "" {
		return nil, validationErr("payment method is required")
	}

	var payment models.Payment
	err := p.db.Transaction(func(tx *gorm.DB) error {
		appointment, err := lockAppointment(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment.ClientID != clientID {
			return fmt.Errorf("%w: appointment belongs to a different client", ErrOwnershipMismatch)
		}
		var existing models.Payment
		err = tx.Where("appointment_id = ?", appointmentID).First(&existing).Error
		if err == nil {
			return ErrDuplicatePayment
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if appointment.Status != models.AppointmentConfirmed {
			return invalidTransition("appointment", string(appointment.Status), string(models.AppointmentPaid))
		}

		txnRef, err := utils.GenerateTransactionRef(tx)
		if err != nil {
			return err
		}

		payment = models.Payment{
			AppointmentID: appointmentID,
			ClientID:      clientID,
			Amount:        amount,
			Method:        method,
			TransactionID: txnRef,
			Status:        models.PaymentCompleted,
			PaymentDate:   time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if _, err := p.ledger.RecordEarnings(tx, payment.ID, p.systemAdmin); err != nil {
			return err
		}

		return tx.Model(appointment).Update("status", models.AppointmentPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// MarkStatus is the administrative correction path. Earnings are recorded only
// on a genuine PENDING/FAILED -> COMPLETED transition, keyed on the previous
// status, so repeating the call cannot double-settle. Downgrading a COMPLETED
// payment is rejected: its ledger entry already exists and refunds are out of
// scope.
func (p *PaymentProcessor) MarkStatus(paymentID uuid.UUID, status models.PaymentStatus, actorAdminID uuid.UUID) error {
	switch status {
	case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
	default:
		return validationErr("unknown payment status %q", status)
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
			}
			return err
		}

		previous := payment.Status
		if previous == status {
			return nil
		}
		if previous == models.PaymentCompleted {
			return invalidTransition("payment", string(previous), string(status))
		}

		if err := tx.Model(&payment).Update("status", status).Error; err != nil {
			return err
		}

		if status == models.PaymentCompleted {
			if _, err := p.ledger.RecordEarnings(tx, payment.ID, actorAdminID); err != nil {
				return err
			}

			appointment, err := lockAppointment(tx, payment.AppointmentID)
			if err != nil {
				return err
			}
			if appointment.Status == models.AppointmentConfirmed {
				if err := tx.Model(appointment).Update("status", models.AppointmentPaid).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
