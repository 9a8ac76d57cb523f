package handlers

import (
	"github.com/nthwave/ink_studio/database"
	"github.com/nthwave/ink_studio/models"
	"github.com/nthwave/ink_studio/notifications"
	"github.com/nthwave/ink_studio/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func claimedUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

type CreateAppointmentRequest struct {
	ArtistID   string  `json:"artist_id" validate:"required,uuid"`
	SlotID     string  `json:"slot_id" validate:"required,uuid"`
	DesignID   *string `json:"design_id,omitempty" validate:"omitempty,uuid"`
	ClientNote *string `json:"client_note,omitempty"`
}

func CreateAppointment(c *fiber.Ctx) error {
	clientID := claimedUserID(c)

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artistID, _ := uuid.Parse(req.ArtistID)
	slotID, _ := uuid.Parse(req.SlotID)
	var designID *uuid.UUID
	if req.DesignID != nil {
		parsed, _ := uuid.Parse(*req.DesignID)
		designID = &parsed
	}

	appointment, err := engine.Book(services.BookRequest{
		ClientID: clientID,
		ArtistID: artistID,
		DesignID: designID,
		SlotID:   slotID,
		Note:     req.ClientNote,
	})
	if err != nil {
		return domainError(c, err)
	}

	go func() {
		var client models.User
		if err := database.DB.First(&client, "id = ?", clientID).Error; err == nil {
			notifications.SendEmail(client.FullName, client.Email, "Booking Received",
				"<h1>Booking Received</h1><p>Your appointment request has been placed and is awaiting the artist's confirmation.</p>")
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func GetMyAppointments(c *fiber.Ctx) error {
	clientID := claimedUserID(c)

	var appointments []models.Appointment
	database.DB.
		Preload("Slot").
		Where("client_id = ?", clientID).
		Order("appointment_date_time desc").
		Find(&appointments)

	return c.JSON(appointments)
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func CancelAppointment(c *fiber.Ctx) error {
	clientID := claimedUserID(c)
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req CancelAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var appointment models.Appointment
	if err := database.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if appointment.ClientID != clientID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your appointment"})
	}

	if err := engine.Cancel(appointmentID, req.Reason, false); err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Appointment cancelled and the slot has been released."})
}

type PayRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=card cash transfer"`
}

func PayForAppointment(c *fiber.Ctx) error {
	clientID := claimedUserID(c)
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payment, err := processor.Pay(clientID, appointmentID, req.Amount, req.Method)
	if err != nil {
		return domainError(c, err)
	}

	go func() {
		var client models.User
		if err := database.DB.First(&client, "id = ?", clientID).Error; err == nil {
			notifications.SendEmail(client.FullName, client.Email, "Payment Received",
				"<h1>Payment Received</h1><p>Your payment was recorded and your appointment is confirmed as paid. See you at the studio!</p>")
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(payment)
}
