package handlers

import (
	"fmt"
	"time"

	"github.com/nthwave/ink_studio/database"
	"github.com/nthwave/ink_studio/models"
	"github.com/nthwave/ink_studio/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GenerateSlotsRequest struct {
	ArtistID string `json:"artist_id" validate:"required,uuid"`
	From     string `json:"from" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	To       string `json:"to" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func GenerateSlots(c *fiber.Ctx) error {
	var req GenerateSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artistID, _ := uuid.Parse(req.ArtistID)
	from, _ := time.Parse(time.RFC3339, req.From)
	to, _ := time.Parse(time.RFC3339, req.To)

	var artist models.Artist
	if err := database.DB.First(&artist, "user_id = ?", artistID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Artist not found"})
	}

	created, err := slotStore.GenerateForRange(artistID, from, to)
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Slots generated", "created": created})
}

type BlockSlotRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func BlockSlot(c *fiber.Ctx) error {
	adminID := claimedUserID(c)
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID"})
	}

	var req BlockSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := slotStore.Block(slotID, adminID, req.Reason); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Slot blocked."})
}

func UnblockSlot(c *fiber.Ctx) error {
	adminID := claimedUserID(c)
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID"})
	}

	if err := slotStore.Unblock(slotID, adminID); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Slot unblocked."})
}

type AssignSlotRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid"`
}

func AssignSlot(c *fiber.Ctx) error {
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req AssignSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slotID, _ := uuid.Parse(req.SlotID)
	if err := engine.AssignSlot(appointmentID, slotID); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Slot assigned to appointment."})
}

type AdminCancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// AdminCancelAppointment is the manual override: unlike the client path it may
// cancel PAID appointments.
func AdminCancelAppointment(c *fiber.Ctx) error {
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req AdminCancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := engine.Cancel(appointmentID, req.Reason, true); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Appointment cancelled by administrator."})
}

type MarkPaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed"`
}

func MarkPaymentStatus(c *fiber.Ctx) error {
	adminID := claimedUserID(c)
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var req MarkPaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := processor.MarkStatus(paymentID, models.PaymentStatus(req.Status), adminID); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment status updated."})
}

type CreatePayoutRequest struct {
	ArtistID string  `json:"artist_id" validate:"required,uuid"`
	From     string  `json:"from" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	To       string  `json:"to" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Notes    *string `json:"notes,omitempty"`
}

func CreatePayout(c *fiber.Ctx) error {
	adminID := claimedUserID(c)

	var req CreatePayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artistID, _ := uuid.Parse(req.ArtistID)
	from, _ := time.Parse(time.RFC3339, req.From)
	to, _ := time.Parse(time.RFC3339, req.To)

	payout, err := payouts.Payout(artistID, from, to, req.Amount, req.Notes, adminID)
	if err != nil {
		return domainError(c, err)
	}

	go func() {
		var artist models.Artist
		if err := database.DB.Preload("User").First(&artist, "user_id = ?", artistID).Error; err == nil {
			notifications.SendEmail(artist.User.FullName, artist.User.Email, "Your Payout Has Been Processed",
				fmt.Sprintf("<h1>Payout Processed</h1><p>Hello %s,</p><p>A payout of $%.2f has been processed and sent by our team.</p>", artist.User.FullName, payout.Amount))
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(payout)
}

func ListPayouts(c *fiber.Ctx) error {
	var list []models.ArtistPayout
	query := database.DB.Order("payout_date desc")
	if artistIDStr := c.Query("artist_id"); artistIDStr != "" {
		artistID, err := uuid.Parse(artistIDStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid artist ID"})
		}
		query = query.Where("artist_id = ?", artistID)
	}
	query.Find(&list)

	return c.JSON(list)
}

func AdminGetAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment
	query := database.DB.Preload("Client").Preload("Slot").Order("appointment_date_time desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&appointments)

	return c.JSON(appointments)
}

func AdminGetPayments(c *fiber.Ctx) error {
	var paymentsList []models.Payment
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&paymentsList)

	return c.JSON(paymentsList)
}
