package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the relay.
type Config struct {
	AppName                  string
	AppEnv                   string
	AppPort                  string
	LogLevel                 string
	OpenAIAPIKey             string
	OpenAIBaseURL            string
	OpenAIModel              string
	OpenAITemperature        float32
	OpenAIMaxTokens          int
	OpenAITimeout            time.Duration
	ReportFormat             string
	ReportWords              int
	MaxConcurrentCompletions int
	MetricsEnabled           bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Quiz Report Relay")
	v.SetDefault("app.env", "development")
	v.SetDefault("port", "10000")
	v.SetDefault("log.level", "info")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4.1-mini")
	v.SetDefault("openai.temperature", 0.6)
	v.SetDefault("openai.max_tokens", 0)
	v.SetDefault("openai.timeout", "60s")
	v.SetDefault("report.format", "guide")
	v.SetDefault("report.words", 0)
	v.SetDefault("max_concurrent_completions", 0)
	v.SetDefault("metrics.enabled", false)

	timeoutString := strings.TrimSpace(v.GetString("openai.timeout"))
	if timeoutString == "" {
		timeoutString = "60s"
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid openai timeout: %w", err)
	}

	port := strings.TrimSpace(v.GetString("port"))
	if port == "" {
		port = "10000"
	}

	cfg := Config{
		AppName:                  v.GetString("app.name"),
		AppEnv:                   v.GetString("app.env"),
		AppPort:                  port,
		LogLevel:                 strings.ToLower(v.GetString("log.level")),
		OpenAIAPIKey:             strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL:            strings.TrimRight(v.GetString("openai.base_url"), "/"),
		OpenAIModel:              v.GetString("openai.model"),
		OpenAITemperature:        float32(v.GetFloat64("openai.temperature")),
		OpenAIMaxTokens:          v.GetInt("openai.max_tokens"),
		OpenAITimeout:            timeout,
		ReportFormat:             strings.ToLower(strings.TrimSpace(v.GetString("report.format"))),
		ReportWords:              v.GetInt("report.words"),
		MaxConcurrentCompletions: v.GetInt("max_concurrent_completions"),
		MetricsEnabled:           v.GetBool("metrics.enabled"),
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY must be provided")
	}

	if cfg.OpenAITemperature < 0 || cfg.OpenAITemperature > 2 {
		return Config{}, fmt.Errorf("openai temperature must be between 0 and 2")
	}

	if cfg.OpenAITimeout <= 0 {
		cfg.OpenAITimeout = 60 * time.Second
	}

	if cfg.OpenAIMaxTokens < 0 {
		cfg.OpenAIMaxTokens = 0
	}

	if cfg.ReportWords < 0 {
		cfg.ReportWords = 0
	}

	if cfg.MaxConcurrentCompletions < 0 {
		cfg.MaxConcurrentCompletions = 0
	}

	return cfg, nil
}
