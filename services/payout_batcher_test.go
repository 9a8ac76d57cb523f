package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
)

func seedPendingEntries(t *testing.T, db *gorm.DB, artistID, adminID uuid.UUID, base time.Time, totals []float64) {
	t.Helper()
	for i, total := range totals {
		artistShare, adminShare := splitAmount(total)
		entry := models.EarningLog{
			ArtistID:      artistID,
			AdminID:       adminID,
			AppointmentID: uuid.New(),
			PaymentID:     uuid.New(),
			TotalAmount:   total,
			ArtistShare:   artistShare,
			AdminShare:    adminShare,
			PayoutStatus:  models.PayoutPending,
			CalculatedAt:  base.AddDate(0, 0, i),
		}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("failed to create earning log: %v", err)
		}
	}
}

func TestPayout_MarksAllEntriesPaid(t *testing.T) {
	db := setupTestDB(t)
	batcher := NewPayoutBatcher(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)

	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	seedPendingEntries(t, db, artist.UserID, admin.ID, base, []float64{100, 200, 300, 400, 500})

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	payout, err := batcher.Payout(artist.UserID, from, to, 900.00, nil, admin.ID)
	if err != nil {
		t.Fatalf("payout failed: %v", err)
	}
	if payout.PayoutStatus != models.ArtistPayoutCompleted {
		t.Fatalf("expected completed payout, got %s", payout.PayoutStatus)
	}

	var entries []models.EarningLog
	db.Where("artist_id = ?", artist.UserID).Order("calculated_at asc").Find(&entries)
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.PayoutStatus != models.PayoutPaid {
			t.Fatalf("entry %s left %s; payout batch must flip all entries", entry.ID, entry.PayoutStatus)
		}
		if entry.PayoutID == nil || *entry.PayoutID != payout.ID {
			t.Fatalf("entry %s not linked to payout", entry.ID)
		}
		if entry.PayoutAt == nil {
			t.Fatalf("entry %s missing payout timestamp", entry.ID)
		}
	}
}

func TestPayout_AmountAboveLedgerSumRejected(t *testing.T) {
	db := setupTestDB(t)
	batcher := NewPayoutBatcher(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)

	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	seedPendingEntries(t, db, artist.UserID, admin.ID, base, []float64{100, 200, 300, 400, 500})
	// Pending artist share is 900.00.

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := batcher.Payout(artist.UserID, from, to, 1000.00, nil, admin.ID)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var payouts int64
	db.Model(&models.ArtistPayout{}).Count(&payouts)
	if payouts != 0 {
		t.Fatalf("rejected payout must not persist, found %d", payouts)
	}
	var pending int64
	db.Model(&models.EarningLog{}).Where("payout_status = ?", models.PayoutPending).Count(&pending)
	if pending != 5 {
		t.Fatalf("all 5 entries must stay pending after rollback, got %d", pending)
	}
}

func TestPayout_RejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	batcher := NewPayoutBatcher(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := batcher.Payout(artist.UserID, from, to, 0, nil, admin.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero amount, got %v", err)
	}
}

func TestPayout_EmptyPeriodRejected(t *testing.T) {
	db := setupTestDB(t)
	batcher := NewPayoutBatcher(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)

	base := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	seedPendingEntries(t, db, artist.UserID, admin.ID, base, []float64{100})

	// January period; the only entry sits in March.
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := batcher.Payout(artist.UserID, from, to, 60.00, nil, admin.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty period, got %v", err)
	}

	var payouts int64
	db.Model(&models.ArtistPayout{}).Count(&payouts)
	if payouts != 0 {
		t.Fatalf("no payout may exist without linked entries, found %d", payouts)
	}
}

func TestPayout_OnlyTargetArtistAffected(t *testing.T) {
	db := setupTestDB(t)
	batcher := NewPayoutBatcher(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)
	other := createArtist(t, db, false)

	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	seedPendingEntries(t, db, artist.UserID, admin.ID, base, []float64{100})
	seedPendingEntries(t, db, other.UserID, admin.ID, base, []float64{100})

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := batcher.Payout(artist.UserID, from, to, 60.00, nil, admin.ID); err != nil {
		t.Fatalf("payout failed: %v", err)
	}

	var otherPending int64
	db.Model(&models.EarningLog{}).
		Where("artist_id = ? AND payout_status = ?", other.UserID, models.PayoutPending).
		Count(&otherPending)
	if otherPending != 1 {
		t.Fatalf("other artist's entries must be untouched, got %d pending", otherPending)
	}
}
