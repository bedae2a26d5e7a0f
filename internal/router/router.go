package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/quiz-report-relay/internal/config"
	"github.com/noah-isme/quiz-report-relay/internal/handler"
	"github.com/noah-isme/quiz-report-relay/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ReportHandler *handler.ReportHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck())

	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(app)
	}

	if cfg.MetricsEnabled {
		app.Get("/metrics", observability.MetricsHandler())
	}
}
