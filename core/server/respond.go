package server

import (
	"material-manager/core/errs"

	"github.com/gofiber/fiber/v2"
)

// Error answers with the status errs.StatusCode picks and {"error": msg}.
func Error(c *fiber.Ctx, err error) error {
	return c.Status(errs.StatusCode(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
