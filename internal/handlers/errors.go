package handlers

import (
	"errors"
	"fmt"

	"athletrack/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler or middleware as JSON.
// Internal errors are logged; their cause is only shown outside production.
func ErrorHandler(log *zap.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return NotFound(c)
			}
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind != apperr.KindInternal {
			body := fiber.Map{"error": ae.Message}
			if len(ae.Fields) > 0 {
				body["errors"] = ae.Fields
			}
			return c.Status(apperr.HTTPStatus(ae.Kind)).JSON(body)
		}

		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		message := "Something went wrong"
		if !production {
			message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": message,
		})
	}
}

// NotFound answers requests that matched no route.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "Endpoint not found",
		"message": fmt.Sprintf("%s %s is not a valid endpoint", c.Method(), c.Path()),
	})
}
