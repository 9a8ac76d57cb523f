package routes

import (
	"github.com/nthwave/ink_studio/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/artists/:artistId/slots", handlers.ListArtistSlots)
}
