package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
)

const (
	artistShareRate  = 0.60
	premiumBonusRate = 0.05
)

// SettlementLedger writes one immutable EarningLog per completed payment and
// answers pending-earnings queries. It does not deduplicate by payment:
// callers own the once-only guarantee (the payment processor keys it on the
// payment's previous status).
type SettlementLedger struct {
	db *gorm.DB
}

func NewSettlementLedger(db *gorm.DB) *SettlementLedger {
	return &SettlementLedger{db: db}
}

// splitAmount divides a payment in integer cents. The artist share is rounded
// to the cent and the admin share is the remainder, never computed
// independently, so the two always sum to the total exactly.
func splitAmount(total float64) (artistShare, adminShare float64) {
	totalCents := int64(math.Round(total * 100))
	artistCents := int64(math.Round(float64(totalCents) * artistShareRate))
	return float64(artistCents) / 100, float64(totalCents-artistCents) / 100
}

func premiumBonus(total float64) float64 {
	return float64(int64(math.Round(math.Round(total*100)*premiumBonusRate))) / 100
}

// RecordEarnings computes the commission split for paymentID and writes a
// PENDING EarningLog attributed to adminID (the system actor). It must run
// inside the caller's transaction so a failed settlement rolls the payment
// back with it.
func (l *SettlementLedger) RecordEarnings(tx *gorm.DB, paymentID, adminID uuid.UUID) (*models.EarningLog, error) {
	var payment models.Payment
	if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
		}
		return nil, err
	}

	var appointment models.Appointment
	if err := tx.First(&appointment, "id = ?", payment.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, payment.AppointmentID)
		}
		return nil, err
	}
	if appointment.ArtistID == nil {
		return nil, ErrMissingArtist
	}

	artistShare, adminShare := splitAmount(payment.Amount)

	bonus := 0.0
	var artist models.Artist
	err := tx.First(&artist, "user_id = ?", *appointment.ArtistID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && artist.PremiumTier {
		bonus = premiumBonus(payment.Amount)
	}

	entry := models.EarningLog{
		ArtistID:      *appointment.ArtistID,
		AdminID:       adminID,
		AppointmentID: appointment.ID,
		PaymentID:     payment.ID,
		TotalAmount:   payment.Amount,
		ArtistShare:   artistShare,
		AdminShare:    adminShare,
		PremiumBonus:  bonus,
		PayoutStatus:  models.PayoutPending,
		CalculatedAt:  time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// PendingTotalForArtist sums the artist share over PENDING ledger entries.
// Zero-value bounds widen the query to all time on that side.
func (l *SettlementLedger) PendingTotalForArtist(artistID uuid.UUID, from, to time.Time) (float64, error) {
	query := l.db.Model(&models.EarningLog{}).
		Where("artist_id = ? AND payout_status = ?", artistID, models.PayoutPending)
	if !from.IsZero() {
		query = query.Where("calculated_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("calculated_at < ?", to)
	}

	var total float64
	if err := query.Select("COALESCE(SUM(artist_share), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
