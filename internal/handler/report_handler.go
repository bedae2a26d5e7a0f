package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quiz-report-relay/internal/dto"
	"github.com/noah-isme/quiz-report-relay/internal/observability"
	"github.com/noah-isme/quiz-report-relay/internal/service"
	"github.com/noah-isme/quiz-report-relay/internal/utils"
)

// Error messages returned to callers. Every rejected request gets the same
// fixed 400 body; the specific reason is only logged.
const (
	MsgMissingFields = "Missing score or persona"
	MsgServerError   = "Server error generating report"
)

// ReportHandler relays quiz results to the report service.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Post("/generate-report", h.generate)
}

func (h *ReportHandler) generate(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var payload dto.ReportRequest
	if len(bytes.TrimSpace(c.Body())) > 0 {
		// decoded regardless of Content-Type; embedded forms often post text/plain
		if err := c.App().Config().JSONDecoder(c.Body(), &payload); err != nil {
			observability.ReportOutcomes().WithLabelValues("invalid").Inc()
			logger.Warn().Err(err).Msg("unparseable report request body")
			return utils.SendError(c, fiber.StatusBadRequest, MsgMissingFields)
		}
	}

	response, err := h.service.Generate(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			observability.ReportOutcomes().WithLabelValues("invalid").Inc()
			logger.Warn().Err(err).Msg("rejected report request")
			return utils.SendError(c, fiber.StatusBadRequest, MsgMissingFields)
		default:
			observability.ReportOutcomes().WithLabelValues("failed").Inc()
			logger.Error().Err(err).Msg("failed to generate report")
			return utils.SendError(c, fiber.StatusInternalServerError, MsgServerError)
		}
	}

	outcome := "generated"
	if response.Report == service.PlaceholderReport {
		outcome = "placeholder"
	}
	observability.ReportOutcomes().WithLabelValues(outcome).Inc()

	return utils.SendJSON(c, fiber.StatusOK, response)
}
