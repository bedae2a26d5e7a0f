package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/noah-isme/quiz-report-relay/internal/dto"
	"github.com/noah-isme/quiz-report-relay/internal/middleware"
	"github.com/noah-isme/quiz-report-relay/internal/prompt"
	"github.com/noah-isme/quiz-report-relay/pkg/ai"
)

// PlaceholderReport is returned when the completion API yields no usable text.
const PlaceholderReport = "We couldn't generate a report at this moment."

const maxQuestions = 50

var (
	// ErrInvalidInput marks any request the caller must fix.
	ErrInvalidInput = errors.New("invalid report request")
	// ErrMissingFields indicates score or persona were not supplied.
	ErrMissingFields = errors.New("missing score or persona")
	// ErrInvalidQuestions indicates the questions payload is malformed.
	ErrInvalidQuestions = errors.New("invalid questions payload")
	// ErrUpstreamFailure wraps every failure of the completion call.
	ErrUpstreamFailure = errors.New("completion request failed")
)

// ReportOptions selects the template used for every report.
type ReportOptions struct {
	Format        prompt.Format
	MaxConcurrent int
}

// ReportService generates quiz reports through the completion API.
type ReportService interface {
	Generate(ctx context.Context, req dto.ReportRequest) (dto.ReportResponse, error)
}

type reportService struct {
	completer ai.Completer
	validator *validator.Validate
	format    prompt.Format
	sanitizer *bluemonday.Policy
	slots     *semaphore.Weighted
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReportService constructs the report workflow.
func NewReportService(completer ai.Completer, validate *validator.Validate, opts ReportOptions, logger zerolog.Logger) ReportService {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if opts.Format.Kind == "" {
		opts.Format.Kind = prompt.KindGuide
	}

	var slots *semaphore.Weighted
	if opts.MaxConcurrent > 0 {
		slots = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}

	return &reportService{
		completer: completer,
		validator: validate,
		format:    opts.Format,
		sanitizer: bluemonday.UGCPolicy(),
		slots:     slots,
		logger:    logger.With().Str("component", "report_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/quiz-report-relay/internal/service/report"),
	}
}

func (s *reportService) Generate(ctx context.Context, req dto.ReportRequest) (dto.ReportResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.generate", trace.WithAttributes(
		attribute.String("report.format", string(s.format.Kind)),
	))
	defer span.End()

	logger := s.logger.With().Str("correlation_id", middleware.CorrelationIDFromContext(ctx)).Logger()

	input, err := s.prepare(req)
	if err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.ReportResponse{}, err
	}
	span.SetAttributes(
		attribute.Float64("report.score", input.Score),
		attribute.String("report.risk", prompt.BandFor(input.Score).Level),
		attribute.Int("report.questions", len(input.Correct)+len(input.Incorrect)),
	)

	if s.slots != nil {
		if err := s.slots.Acquire(ctx, 1); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled waiting for completion slot")
			return dto.ReportResponse{}, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
		}
		defer s.slots.Release(1)
	}

	completion, err := s.completer.Complete(ctx, ai.CompletionRequest{
		System: prompt.SystemMessage,
		User:   prompt.Build(input),
	})
	switch {
	case errors.Is(err, ai.ErrEmptyCompletion):
		logger.Warn().Msg("completion returned no content, using placeholder report")
		span.SetStatus(codes.Ok, "placeholder")
		return dto.ReportResponse{Report: PlaceholderReport}, nil
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return dto.ReportResponse{}, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	report := completion.Content
	if s.format.Kind == prompt.KindHTML {
		report = strings.TrimSpace(s.sanitizer.Sanitize(report))
		if report == "" {
			logger.Warn().Msg("html report empty after sanitising, using placeholder report")
			report = PlaceholderReport
		}
	}

	logger.Info().
		Str("model", completion.Model).
		Str("finish_reason", completion.FinishReason).
		Int("total_tokens", completion.TotalTokens).
		Int("report_length", len(report)).
		Msg("report generated")
	span.SetStatus(codes.Ok, "generated")

	return dto.ReportResponse{Report: report}, nil
}

func (s *reportService) prepare(req dto.ReportRequest) (prompt.Input, error) {
	// a whitespace-only persona carries nothing to tailor the report to, so it
	// is rejected like an absent one
	req.Persona = strings.TrimSpace(req.Persona)
	if req.Score == nil || req.Persona == "" {
		return prompt.Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingFields)
	}

	if err := s.validator.Struct(req); err != nil {
		return prompt.Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	questions, err := req.ParseQuestions()
	if err != nil {
		return prompt.Input{}, fmt.Errorf("%w: %w: %v", ErrInvalidInput, ErrInvalidQuestions, err)
	}
	if err := s.validator.Var(questions, fmt.Sprintf("max=%d,dive", maxQuestions)); err != nil {
		return prompt.Input{}, fmt.Errorf("%w: %w: %v", ErrInvalidInput, ErrInvalidQuestions, err)
	}

	correct, incorrect := prompt.Partition(questions)
	return prompt.Input{
		Score:     *req.Score,
		Persona:   req.Persona,
		Correct:   correct,
		Incorrect: incorrect,
		Format:    s.format,
	}, nil
}
