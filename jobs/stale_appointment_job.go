package jobs

import (
	"log"
	"time"

	"github.com/nthwave/ink_studio/database"
	"github.com/nthwave/ink_studio/models"
	"github.com/nthwave/ink_studio/services"
)

const staleGracePeriod = 30 * time.Minute

// CancelStaleAppointments sweeps CONFIRMED-but-unpaid appointments whose slot
// has already ended, cancelling them through the engine so slots are released.
// The sweep is idempotent: already-cancelled appointments simply stop matching.
func CancelStaleAppointments() {
	log.Println("Running job: CancelStaleAppointments...")

	cutoff := time.Now().Add(-staleGracePeriod)

	var stale []models.Appointment
	err := database.DB.
		Joins("JOIN time_slots on appointments.slot_id = time_slots.id").
		Where("appointments.status = ? AND time_slots.end_time < ?", models.AppointmentConfirmed, cutoff).
		Find(&stale).Error
	if err != nil {
		log.Printf("Error checking for stale appointments: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	engine := services.NewAppointmentEngine(database.DB)
	cancelled := 0
	for _, appointment := range stale {
		if err := engine.Cancel(appointment.ID, "auto-cancelled: unpaid past slot time", false); err != nil {
			log.Printf("Failed to auto-cancel appointment %s: %v", appointment.ID, err)
			continue
		}
		cancelled++
	}

	log.Printf("Auto-cancelled %d stale appointment(s).", cancelled)
}
