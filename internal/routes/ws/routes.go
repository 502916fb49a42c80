package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/service"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	matches := c.Locals("matches").(*service.MatchService) //nolint: errcheck

	h := ws.NewHandler(c, matches, c.Params("id"))
	if err := h.Handle(); err != nil {
		slog.Info("ws connection closed", "match", c.Params("id"), "error", err)
	}
}

// upgradeOnly rejects requests that are not websocket upgrades.
func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws/matches/:id", middleware.AuthOrToken(), upgradeOnly, websocket.New(handleWs))
}
