package services

import (
	"testing"
	"time"

	"github.com/nthwave/ink_studio/models"
)

// Full booking-to-payout walkthrough: book a slot, confirm, pay 1500.00,
// then run the January payout for the artist.
func TestBookingToPayoutScenario(t *testing.T) {
	db := setupTestDB(t)
	engine := NewAppointmentEngine(db)
	ledger := NewSettlementLedger(db)
	admin := createUser(t, db, "admin")
	processor := NewPaymentProcessor(db, ledger, admin.ID)
	batcher := NewPayoutBatcher(db)

	artist := createArtist(t, db, false)
	client := createUser(t, db, "client")
	slot := createSlot(t, db, artist.UserID, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), models.SlotAvailable)

	appointment, err := engine.Book(BookRequest{ClientID: client.ID, ArtistID: artist.UserID, SlotID: slot.ID})
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if got := slotStatus(t, db, slot.ID); got != models.SlotPendingAppointment {
		t.Fatalf("expected slot pending_appointment, got %s", got)
	}

	if err := engine.Confirm(appointment.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if got := slotStatus(t, db, slot.ID); got != models.SlotBooked {
		t.Fatalf("expected slot booked, got %s", got)
	}

	payment, err := processor.Pay(client.ID, appointment.ID, 1500.00, "card")
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if got := appointmentStatus(t, db, appointment.ID); got != models.AppointmentPaid {
		t.Fatalf("expected paid appointment, got %s", got)
	}

	var entry models.EarningLog
	if err := db.First(&entry, "payment_id = ?", payment.ID).Error; err != nil {
		t.Fatalf("expected an earning log: %v", err)
	}
	if entry.ArtistShare != 900.00 || entry.AdminShare != 600.00 {
		t.Fatalf("expected 900/600 split, got %.2f/%.2f", entry.ArtistShare, entry.AdminShare)
	}

	pending, err := ledger.PendingTotalForArtist(artist.UserID, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("pending total failed: %v", err)
	}
	if cents(pending) != 90000 {
		t.Fatalf("expected 900.00 pending, got %.2f", pending)
	}

	// Settlement stamps calculated_at with the current time, so the payout
	// period brackets now rather than the slot's calendar date.
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	payout, err := batcher.Payout(artist.UserID, from, to, 900.00, nil, admin.ID)
	if err != nil {
		t.Fatalf("payout failed: %v", err)
	}

	if err := db.First(&entry, "payment_id = ?", payment.ID).Error; err != nil {
		t.Fatalf("failed to reload earning log: %v", err)
	}
	if entry.PayoutStatus != models.PayoutPaid {
		t.Fatalf("expected paid entry, got %s", entry.PayoutStatus)
	}
	if entry.PayoutID == nil || *entry.PayoutID != payout.ID {
		t.Fatalf("entry must link to the payout")
	}

	if err := engine.MarkCompleted(appointment.ID); err != nil {
		t.Fatalf("markCompleted failed: %v", err)
	}
	if got := appointmentStatus(t, db, appointment.ID); got != models.AppointmentCompleted {
		t.Fatalf("expected completed appointment, got %s", got)
	}
}
