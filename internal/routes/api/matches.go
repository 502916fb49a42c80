package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/player"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/service"
)

func matchService(c *fiber.Ctx) *service.MatchService {
	return c.Locals("matches").(*service.MatchService) //nolint: errcheck
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrMatchNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrIllegalMove):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInconsistentApplication):
		return fiber.StatusInternalServerError
	case errors.Is(err, player.ErrNotHuman),
		errors.Is(err, service.ErrMatchFailed),
		errors.Is(err, repository.ErrConcurrentUpdate):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// CreateMatch starts a new match.
func CreateMatch(c *fiber.Ctx) error {
	var req service.CreateMatchRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	view, err := matchService(c).Create(c.Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetMatch returns the state of a match.
func GetMatch(c *fiber.Ctx) error {
	view, err := matchService(c).Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// DeleteMatch abandons a match.
func DeleteMatch(c *fiber.Ctx) error {
	if err := matchService(c).Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SelectMove plays the landing square picked by the human to move.
func SelectMove(c *fiber.Ctx) error {
	var req service.SelectMoveRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	landing := models.Position{X: *req.X, Z: *req.Z}

	view, err := matchService(c).SelectMove(c.Context(), c.Params("id"), landing)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// Tick advances a match, for computer turns and forced passes.
func Tick(c *fiber.Ctx) error {
	var req service.TickRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err)
	}

	view, err := matchService(c).Tick(c.Context(), c.Params("id"), req.Ticks)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// GetResults lists finished matches.
func GetResults(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 || limit > 1000 {
		return badRequest(c, errors.New("limit must be between 0 and 1000"))
	}

	results, err := matchService(c).Results(c.Context(), limit)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(results)
}

// GetResultStats returns the number of finished matches per winner.
func GetResultStats(c *fiber.Ctx) error {
	stats, err := matchService(c).Stats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
