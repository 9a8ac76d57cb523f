package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database capped at one connection so
// concurrent engine calls serialize the way Postgres row locks would.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Design{},
		&models.ArtistSchedule{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.Payment{},
		&models.EarningLog{},
		&models.ArtistPayout{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Same partial index production migration creates: slot uniqueness only
	// applies to non-cancelled appointments.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (slot_id) WHERE status <> 'cancelled'`).Error; err != nil {
		t.Fatalf("failed to create active-slot index: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		FullName: role + " user",
		Email:    uuid.NewString() + "@example.com",
		Password: "secret",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create %s user: %v", role, err)
	}
	return user
}

func createArtist(t *testing.T, db *gorm.DB, premium bool) models.Artist {
	t.Helper()
	user := createUser(t, db, "artist")
	artist := models.Artist{
		UserID:      user.ID,
		Status:      "active",
		PremiumTier: premium,
	}
	if err := db.Create(&artist).Error; err != nil {
		t.Fatalf("failed to create artist: %v", err)
	}
	return artist
}

func createSlot(t *testing.T, db *gorm.DB, artistID uuid.UUID, start time.Time, status models.SlotStatus) models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{
		ArtistID:  artistID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("failed to create slot: %v", err)
	}
	return slot
}

func slotStatus(t *testing.T, db *gorm.DB, slotID uuid.UUID) models.SlotStatus {
	t.Helper()
	var slot models.TimeSlot
	if err := db.First(&slot, "id = ?", slotID).Error; err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	return slot.Status
}

func cents(amount float64) int64 {
	if amount < 0 {
		return -cents(-amount)
	}
	return int64(amount*100 + 0.5)
}

func appointmentStatus(t *testing.T, db *gorm.DB, appointmentID uuid.UUID) models.AppointmentStatus {
	t.Helper()
	var appointment models.Appointment
	if err := db.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	return appointment.Status
}
