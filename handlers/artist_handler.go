package handlers

import (
	"time"

	"github.com/nthwave/ink_studio/database"
	"github.com/nthwave/ink_studio/models"
	"github.com/nthwave/ink_studio/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetArtistAppointments(c *fiber.Ctx) error {
	artistID := claimedUserID(c)

	var appointments []models.Appointment
	database.DB.
		Preload("Client").
		Preload("Slot").
		Where("artist_id = ?", artistID).
		Order("appointment_date_time desc").
		Find(&appointments)

	return c.JSON(appointments)
}

func ConfirmAppointment(c *fiber.Ctx) error {
	artistID := claimedUserID(c)
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var appointment models.Appointment
	if err := database.DB.Preload("Client").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if appointment.ArtistID == nil || *appointment.ArtistID != artistID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the artist for this appointment"})
	}

	if err := engine.Confirm(appointmentID); err != nil {
		return domainError(c, err)
	}

	go notifications.SendEmail(appointment.Client.FullName, appointment.Client.Email, "Appointment Confirmed",
		"<h1>Appointment Confirmed</h1><p>Your artist has confirmed the appointment. You can now proceed with payment.</p>")

	return c.JSON(fiber.Map{"message": "Appointment confirmed."})
}

func CompleteAppointment(c *fiber.Ctx) error {
	artistID := claimedUserID(c)
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if appointment.ArtistID == nil || *appointment.ArtistID != artistID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the artist for this appointment"})
	}

	if err := engine.MarkCompleted(appointmentID); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Appointment marked as completed."})
}

func GetPendingEarnings(c *fiber.Ctx) error {
	artistID := claimedUserID(c)

	from, to, err := parsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	total, err := ledger.PendingTotalForArtist(artistID, from, to)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"artist_id": artistID, "pending_total": total})
}

// parsePeriod turns optional RFC3339 query bounds into a half-open interval;
// missing bounds stay zero and widen the query.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromStr != "" {
		from, err = time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "invalid 'from' timestamp")
		}
	}
	if toStr != "" {
		to, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			return from, to, fiber.NewError(fiber.StatusBadRequest, "invalid 'to' timestamp")
		}
	}
	return from, to, nil
}

func GetMySchedule(c *fiber.Ctx) error {
	artistID := claimedUserID(c)

	var schedules []models.ArtistSchedule
	database.DB.Where("artist_id = ?", artistID).Order("day_of_week asc").Find(&schedules)

	return c.JSON(schedules)
}

type ScheduleEntryRequest struct {
	DayOfWeek    int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime    string `json:"start_time" validate:"required,len=5"`
	EndTime      string `json:"end_time" validate:"required,len=5"`
	SlotDuration int    `json:"slot_duration" validate:"required,min=15,max=480"`
}

type UpdateScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" validate:"required,dive"`
}

// UpdateMySchedule replaces the artist's weekly schedule. Already generated
// slots are untouched; the next slot generation run picks up the new hours.
func UpdateMySchedule(c *fiber.Ctx) error {
	artistID := claimedUserID(c)

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries := make([]models.ArtistSchedule, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, models.ArtistSchedule{
			ArtistID:     artistID,
			DayOfWeek:    entry.DayOfWeek,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
			SlotDuration: entry.SlotDuration,
			IsActive:     true,
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", artistID).Delete(&models.ArtistSchedule{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update schedule"})
	}

	return c.JSON(entries)
}

// ListArtistSlots is the public availability view.
func ListArtistSlots(c *fiber.Ctx) error {
	artistID, err := uuid.Parse(c.Params("artistId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid artist ID"})
	}

	var slots []models.TimeSlot
	database.DB.
		Where("artist_id = ? AND status = ? AND start_time > ?", artistID, models.SlotAvailable, time.Now()).
		Order("start_time asc").
		Find(&slots)

	return c.JSON(slots)
}
