package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Match routes
	apiGroup.Post("/matches", CreateMatch)
	apiGroup.Get("/matches/:id", GetMatch)
	apiGroup.Delete("/matches/:id", DeleteMatch)
	apiGroup.Post("/matches/:id/move", SelectMove)
	apiGroup.Post("/matches/:id/tick", Tick)

	// Result routes
	resultsGroup := app.Group("/api/results", middleware.BasicAuth())
	resultsGroup.Get("/", GetResults)
	resultsGroup.Get("/stats", GetResultStats)
}
