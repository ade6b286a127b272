package config

import (
	"fmt"
	"os"
	"time"

	"mailgenie/pkg/config"
)

const (
	DefaultUpstreamURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultUpstreamModel = "google/gemini-2.5-flash"
	DefaultAllowHeaders  = "authorization, x-client-info, apikey, content-type"
)

// UpstreamConfig configures the chat-completion gateway.
type UpstreamConfig struct {
	URL    string `yaml:"url"`
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
	// zero means no client-side timeout
	Timeout        time.Duration        `yaml:"timeout"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled             bool          `yaml:"enabled"`
	FailureThreshold    int           `yaml:"failure_threshold"`
	SuccessThreshold    int           `yaml:"success_threshold"`
	Timeout             time.Duration `yaml:"timeout"`
	HalfOpenMaxRequests int           `yaml:"half_open_max_requests"`
}

type CORSConfig struct {
	AllowOrigin  string `yaml:"allow_origin"`
	AllowHeaders string `yaml:"allow_headers"`
}

type Config struct {
	Server   config.ServerConfig `yaml:"server"`
	Log      config.LogConfig    `yaml:"log"`
	Otel     config.OtelConfig   `yaml:"otel"`
	Upstream UpstreamConfig      `yaml:"upstream"`
	CORS     CORSConfig          `yaml:"cors"`
}

// Default returns the configuration used when no config files are present.
func Default() *Config {
	return &Config{
		Server: config.ServerConfig{
			Port:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{Level: "info"},
		Otel: config.OtelConfig{
			ServiceName: "mailgenie",
			SampleRatio: 1,
		},
		Upstream: UpstreamConfig{
			URL:   DefaultUpstreamURL,
			Model: DefaultUpstreamModel,
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold:    5,
				SuccessThreshold:    2,
				Timeout:             30 * time.Second,
				HalfOpenMaxRequests: 1,
			},
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowHeaders: DefaultAllowHeaders,
		},
	}
}

// Load reads CONFIG_DIR (default "config") for CONFIG_ENV (default "local")
// over Default(), then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")
	if err := config.Decode(env, configDir, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideLogFromEnv(&cfg.Log)
	config.OverrideOtelFromEnv(&cfg.Otel)
	if cfg.Otel.Environment == "" {
		cfg.Otel.Environment = env
	}
	overrideUpstreamFromEnv(&cfg.Upstream)

	return cfg, nil
}

func overrideUpstreamFromEnv(cfg *UpstreamConfig) {
	if key := os.Getenv("AI_GATEWAY_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if url := os.Getenv("AI_GATEWAY_URL"); url != "" {
		cfg.URL = url
	}
	if model := os.Getenv("AI_GATEWAY_MODEL"); model != "" {
		cfg.Model = model
	}
}

// ClientConfig configures the command-line client.
type ClientConfig struct {
	FunctionURL string
}

func LoadClient() *ClientConfig {
	return &ClientConfig{
		FunctionURL: config.GetEnv("MAILGENIE_FUNCTION_URL", "http://localhost:8080/generate-email"),
	}
}
