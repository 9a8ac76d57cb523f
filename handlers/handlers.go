package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/services"
	"gorm.io/gorm"
)

var validate = validator.New()

var (
	slotStore *services.SlotStore
	engine    *services.AppointmentEngine
	ledger    *services.SettlementLedger
	processor *services.PaymentProcessor
	payouts   *services.PayoutBatcher
)

// Init wires the engine components. systemAdminID is the seeded admin recorded
// as the system actor on settlement entries.
func Init(db *gorm.DB, systemAdminID uuid.UUID) {
	slotStore = services.NewSlotStore(db)
	engine = services.NewAppointmentEngine(db)
	ledger = services.NewSettlementLedger(db)
	processor = services.NewPaymentProcessor(db, ledger, systemAdminID)
	payouts = services.NewPayoutBatcher(db)
}

// domainError maps engine error kinds to HTTP responses. Anything
// unclassified bubbles up to the Fiber error handler as a 500.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrSlotUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicatePayment):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOwnershipMismatch):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrMissingArtist):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return err
	}
}
