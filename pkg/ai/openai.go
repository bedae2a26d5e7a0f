package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	completionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relay",
		Subsystem: "ai",
		Name:      "completion_duration_seconds",
		Help:      "Duration of chat completion requests",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"model"})

	completionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relay",
		Subsystem: "ai",
		Name:      "completion_failures_total",
		Help:      "Number of failed chat completion requests",
	}, []string{"model", "reason"})
)

// OpenAIConfig defines configuration options for the OpenAI client.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

// OpenAIClient implements Completer against an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4.1-mini"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	tracer := otel.Tracer("github.com/noah-isme/quiz-report-relay/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		config.HTTPClient = cfg.HTTPClient
	} else {
		config.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "openai_client").Logger(),
	}, nil
}

// Model returns the model identifier sent with every request.
func (c *OpenAIClient) Model() string {
	return c.cfg.Model
}

// Complete sends one non-streaming chat completion request and extracts the
// first choice's message content.
func (c *OpenAIClient) Complete(parent context.Context, req CompletionRequest) (Completion, error) {
	ctx, span := c.tracer.Start(parent, "openai.complete", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	completionDuration.WithLabelValues(c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		completionFailures.WithLabelValues(c.cfg.Model, "request").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Completion{}, fmt.Errorf("openai complete: %w", err)
	}

	c.logger.Debug().
		Str("model", resp.Model).
		Int("choices", len(resp.Choices)).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("completion received")

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		completionFailures.WithLabelValues(c.cfg.Model, "empty").Inc()
		span.SetStatus(codes.Error, ErrEmptyCompletion.Error())
		return Completion{}, ErrEmptyCompletion
	}

	choice := resp.Choices[0]
	span.SetAttributes(attribute.Int("usage.total_tokens", resp.Usage.TotalTokens))
	span.SetStatus(codes.Ok, "completed")

	return Completion{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}
