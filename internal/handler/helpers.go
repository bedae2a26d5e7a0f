package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quiz-report-relay/internal/middleware"
	"github.com/noah-isme/quiz-report-relay/internal/utils"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// ErrorHandler converts errors that escape handlers, including recovered panics,
// into the relay's {"error": ...} body. Anything that is not a *fiber.Error
// becomes the generic 500 so no internal detail reaches the caller.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	logger = logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.SendError(c, fiberErr.Code, fiberErr.Message)
		}

		requestLogger(logger, c).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return utils.SendError(c, fiber.StatusInternalServerError, MsgServerError)
	}
}
