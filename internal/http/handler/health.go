package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck verifies that the data directory is reachable, since losing it
// means neither the JSON document nor local blobs can be flushed.
func HealthCheck(dataDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := os.Stat(dataDir); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
