package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/quiz-report-relay/internal/config"
	"github.com/noah-isme/quiz-report-relay/internal/handler"
	"github.com/noah-isme/quiz-report-relay/internal/middleware"
	"github.com/noah-isme/quiz-report-relay/internal/prompt"
	"github.com/noah-isme/quiz-report-relay/internal/router"
	"github.com/noah-isme/quiz-report-relay/internal/service"
	"github.com/noah-isme/quiz-report-relay/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := newLogger(cfg, os.Stdout)

	kind, err := prompt.ParseKind(cfg.ReportFormat)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid report format")
	}

	completer, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Timeout:     cfg.OpenAITimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create completion client")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	reportService := service.NewReportService(completer, validate, service.ReportOptions{
		Format:        prompt.Format{Kind: kind, Words: cfg.ReportWords},
		MaxConcurrent: cfg.MaxConcurrentCompletions,
	}, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ServerHeader:          cfg.AppName,
		ErrorHandler:          handler.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ReportHandler: reportHandler,
	})

	app.Hooks().OnListen(func(data fiber.ListenData) error {
		logger.Info().
			Str("port", data.Port).
			Str("model", completer.Model()).
			Str("report_format", string(kind)).
			Msgf("Quiz report relay running on port %s", data.Port)
		return nil
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func newLogger(cfg config.Config, out io.Writer) zerolog.Logger {
	logger := zerolog.New(out).With().
		Timestamp().
		Str("service", cfg.AppName).
		Str("env", cfg.AppEnv).
		Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, logging at all levels")
		return logger
	}
	if level != zerolog.NoLevel {
		logger = logger.Level(level)
	}
	return logger
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
