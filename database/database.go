package database

import (
	"fmt"
	"log"

	config "github.com/nthwave/ink_studio/configs"
	"github.com/nthwave/ink_studio/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Design{},
		&models.ArtistSchedule{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.Payment{},
		&models.EarningLog{},
		&models.ArtistPayout{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// Cancelled appointments keep their slot_id for history, so slot
	// uniqueness only applies to live rows. GORM tags cannot express a
	// partial index.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (slot_id) WHERE status <> 'cancelled'`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create active-slot index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}

// SeedAdmin ensures the studio admin user exists and returns it. The admin's
// identity is the system actor recorded on settlement ledger entries.
func SeedAdmin() models.User {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var admin models.User
	err := DB.Where("email = ? AND role = ?", adminEmail, "admin").First(&admin).Error
	if err == nil {
		log.Println("Admin user already exists.")
		return admin
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	admin = models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
	return admin
}
