package routes

import (
	"github.com/nthwave/ink_studio/handlers"
	"github.com/nthwave/ink_studio/middleware"
	"github.com/gofiber/fiber/v2"
)

func ArtistRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	artist := api.Group("/artist", middleware.Protected(), middleware.ArtistRequired())
	artist.Get("/appointments", handlers.GetArtistAppointments)
	artist.Post("/appointments/:appointmentId/confirm", handlers.ConfirmAppointment)
	artist.Post("/appointments/:appointmentId/complete", handlers.CompleteAppointment)
	artist.Get("/earnings/pending", handlers.GetPendingEarnings)
	artist.Get("/schedule", handlers.GetMySchedule)
	artist.Put("/schedule", handlers.UpdateMySchedule)
}
