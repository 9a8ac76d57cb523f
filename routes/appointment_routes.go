package routes

import (
	"github.com/nthwave/ink_studio/handlers"
	"github.com/nthwave/ink_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Get("/me", handlers.GetMyAppointments)
	appointments.Post("", handlers.CreateAppointment)
	appointments.Post("/:appointmentId/cancel", handlers.CancelAppointment)
	appointments.Post("/:appointmentId/pay", handlers.PayForAppointment)
}
