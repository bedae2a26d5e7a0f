package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/quiz-report-relay/internal/utils"
)

// HealthCheck reports liveness. It has no dependencies so it answers while the process is up.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, fiber.StatusOK, utils.StatusResponse{Status: "ok"})
	}
}
