package routes

import (
	"github.com/nthwave/ink_studio/handlers"
	"github.com/nthwave/ink_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Post("/slots/generate", handlers.GenerateSlots)
	admin.Post("/slots/:slotId/block", handlers.BlockSlot)
	admin.Post("/slots/:slotId/unblock", handlers.UnblockSlot)

	admin.Get("/appointments", handlers.AdminGetAppointments)
	admin.Post("/appointments/:appointmentId/assign-slot", handlers.AssignSlot)
	admin.Post("/appointments/:appointmentId/cancel", handlers.AdminCancelAppointment)

	admin.Get("/payments", handlers.AdminGetPayments)
	admin.Post("/payments/:paymentId/status", handlers.MarkPaymentStatus)

	admin.Get("/payouts", handlers.ListPayouts)
	admin.Post("/payouts", handlers.CreatePayout)
}
