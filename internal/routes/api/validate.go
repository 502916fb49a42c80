package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseBody parses and validates the request body into req. An empty body leaves req unchanged.
func parseBody(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return fmt.Errorf("Invalid request body: %s", err.Error()) //nolint:stylecheck
		}
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}

		details := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", fieldErr.Field()))
			case "oneof":
				details = append(details, fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param()))
			case "min":
				details = append(details, fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param()))
			case "max":
				details = append(details, fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param()))
			default:
				details = append(details, fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
			}
		}

		return errors.New(strings.Join(details, "; "))
	}

	return nil
}
