package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutBatcher sweeps an artist's PENDING ledger entries into one
// ArtistPayout. The payout creation and every entry flip happen in a single
// transaction: either the payout exists with all matched entries PAID and
// linked to it, or nothing changed.
type PayoutBatcher struct {
	db *gorm.DB
}

func NewPayoutBatcher(db *gorm.DB) *PayoutBatcher {
	return &PayoutBatcher{db: db}
}

// Payout creates an ArtistPayout with the admin-supplied amount and marks
// every PENDING EarningLog for the artist in [from, to) as PAID, oldest first.
// The amount is a manual-override capability, but it is validated against the
// ledger: it must be positive and must not exceed the pending artist-share sum
// for the period.
func (b *PayoutBatcher) Payout(artistID uuid.UUID, from, to time.Time, amount float64, notes *string, adminID uuid.UUID) (*models.ArtistPayout, error) {
	if amount <= 0 {
		return nil, validationErr("payout amount must be positive")
	}
	if !to.After(from) {
		return nil, validationErr("payout period end must be after period start")
	}

	var payout models.ArtistPayout
	err := b.db.Transaction(func(tx *gorm.DB) error {
		var entries []models.EarningLog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("artist_id = ? AND payout_status = ? AND calculated_at >= ? AND calculated_at < ?",
				artistID, models.PayoutPending, from, to).
			Order("calculated_at asc").
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return validationErr("no pending earnings for artist in the given period")
		}

		var pendingSum float64
		for _, entry := range entries {
			pendingSum += entry.ArtistShare
		}
		// Half-cent tolerance against float accumulation.
		if amount > pendingSum+0.005 {
			return validationErr("payout amount %.2f exceeds pending earnings %.2f", amount, pendingSum)
		}

		now := time.Now()
		payout = models.ArtistPayout{
			ArtistID:     artistID,
			AdminID:      adminID,
			Amount:       amount,
			Notes:        notes,
			PayoutStatus: models.ArtistPayoutCompleted,
			PayoutDate:   now,
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}

		for i := range entries {
			if err := tx.Model(&entries[i]).Updates(map[string]interface{}{
				"payout_status": models.PayoutPaid,
				"payout_at":     now,
				"payout_id":     payout.ID,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payout, nil
}
