package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
)

func TestSplitAmount_SumInvariant(t *testing.T) {
	cases := []struct {
		total  float64
		artist float64
		admin  float64
	}{
		{1500.00, 900.00, 600.00},
		{100.01, 60.01, 40.00},
		{0.01, 0.01, 0.00},
		{99.99, 59.99, 40.00},
		{33.33, 20.00, 13.33},
		{0.03, 0.02, 0.01},
	}
	for _, c := range cases {
		artist, admin := splitAmount(c.total)
		if artist != c.artist || admin != c.admin {
			t.Fatalf("split(%.2f): expected %.2f/%.2f, got %.2f/%.2f", c.total, c.artist, c.admin, artist, admin)
		}
		if cents(artist)+cents(admin) != cents(c.total) {
			t.Fatalf("split(%.2f): shares %.2f + %.2f do not sum to total", c.total, artist, admin)
		}
	}
}

func TestRecordEarnings_PremiumBonus(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewSettlementLedger(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, true)
	artistID := artist.UserID
	client, appointment := confirmedAppointment(t, db, &artistID)

	payment := models.Payment{
		AppointmentID: appointment.ID,
		ClientID:      client.ID,
		Amount:        200.00,
		Method:        "card",
		TransactionID: "TXN-PREMIUM001",
		Status:        models.PaymentCompleted,
		PaymentDate:   time.Now(),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	var entry *models.EarningLog
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = ledger.RecordEarnings(tx, payment.ID, admin.ID)
		return err
	})
	if err != nil {
		t.Fatalf("recordEarnings failed: %v", err)
	}
	if entry.ArtistShare != 120.00 || entry.AdminShare != 80.00 {
		t.Fatalf("expected 120/80 split, got %.2f/%.2f", entry.ArtistShare, entry.AdminShare)
	}
	if entry.PremiumBonus != 10.00 {
		t.Fatalf("expected 10.00 premium bonus, got %.2f", entry.PremiumBonus)
	}
}

func TestPendingTotalForArtist(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewSettlementLedger(db)
	admin := createUser(t, db, "admin")
	artist := createArtist(t, db, false)

	base := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	amounts := []float64{100.00, 250.50, 49.50}
	for i, total := range amounts {
		artistShare, adminShare := splitAmount(total)
		entry := models.EarningLog{
			ArtistID:      artist.UserID,
			AdminID:       admin.ID,
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

	// One already-paid entry must not count.
	paidArtistShare, paidAdminShare := splitAmount(500.00)
	paid := models.EarningLog{
		ArtistID:      artist.UserID,
		AdminID:       admin.ID,
		AppointmentID: uuid.New(),
		PaymentID:     uuid.New(),
		TotalAmount:   500.00,
		ArtistShare:   paidArtistShare,
		AdminShare:    paidAdminShare,
		PayoutStatus:  models.PayoutPaid,
		CalculatedAt:  base,
	}
	if err := db.Create(&paid).Error; err != nil {
		t.Fatalf("failed to create paid entry: %v", err)
	}

	total, err := ledger.PendingTotalForArtist(artist.UserID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("pending total failed: %v", err)
	}
	if cents(total) != 24000 {
		t.Fatalf("expected pending total 240.00, got %.2f", total)
	}

	// Range excluding the last entry.
	total, err = ledger.PendingTotalForArtist(artist.UserID, base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ranged pending total failed: %v", err)
	}
	if cents(total) != 21030 {
		t.Fatalf("expected ranged total 210.30, got %.2f", total)
	}
}

func TestPendingTotalForArtist_ZeroWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewSettlementLedger(db)

	total, err := ledger.PendingTotalForArtist(uuid.New(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("pending total failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected zero for artist with no entries, got %.2f", total)
	}
}
