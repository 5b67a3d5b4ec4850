// Package config provides application-wide configuration.
// Values come from built-in defaults, then an optional YAML file, then env vars.
// All fields have safe defaults so the binary runs locally without any setup.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Envelope styles for successful tool responses.
const (
	EnvelopeResults = "results"
	EnvelopeLegacy  = "legacy"
)

// Config holds runtime configuration for voicedesk.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`       // VOICEDESK_HOST
	Port      int    `yaml:"port"`       // VOICEDESK_PORT, PORT
	PublicURL string `yaml:"public_url"` // VOICEDESK_PUBLIC_URL
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // VOICEDESK_DB_PATH
}

type LogConfig struct {
	Level  string `yaml:"level"`  // VOICEDESK_LOG_LEVEL: debug|info|warn|error
	Format string `yaml:"format"` // VOICEDESK_LOG_FORMAT: text|json
}

// WebhookConfig controls the tool-call endpoints.
type WebhookConfig struct {
	// Envelope selects the top-level key of successful non-delete responses:
	// "results" for every operation, or "legacy" for the singular "result" key.
	Envelope string `yaml:"envelope"` // VOICEDESK_ENVELOPE
	// SecretHash is a bcrypt hash of the X-Vapi-Secret header value.
	// Empty leaves the webhook endpoints open.
	SecretHash string `yaml:"secret_hash"` // VOICEDESK_WEBHOOK_SECRET_HASH
}

// AdminConfig controls the JWT-protected admin routes.
type AdminConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`       // VOICEDESK_JWT_SECRET
	JWTExpiryHours int    `yaml:"jwt_expiry_hours"` // VOICEDESK_JWT_EXPIRY
}

const (
	envKeyHost          = "VOICEDESK_HOST"
	envKeyPort          = "VOICEDESK_PORT"
	envKeyPortFallback  = "PORT"
	envKeyPublicURL     = "VOICEDESK_PUBLIC_URL"
	envKeyDBPath        = "VOICEDESK_DB_PATH"
	envKeyLogLevel      = "VOICEDESK_LOG_LEVEL"
	envKeyLogFormat     = "VOICEDESK_LOG_FORMAT"
	envKeyEnvelope      = "VOICEDESK_ENVELOPE"
	envKeySecretHash    = "VOICEDESK_WEBHOOK_SECRET_HASH"
	envKeyJWTSecret     = "VOICEDESK_JWT_SECRET"
	envKeyJWTExpiry     = "VOICEDESK_JWT_EXPIRY"
	defaultPort         = 8000
	defaultJWTExpiryHrs = 24
)

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      defaultPort,
			PublicURL: fmt.Sprintf("http://localhost:%d", defaultPort),
		},
		Database: DatabaseConfig{Path: "./database.db"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Webhook:  WebhookConfig{Envelope: EnvelopeResults},
		Admin:    AdminConfig{JWTExpiryHours: defaultJWTExpiryHrs},
	}
}

// Load builds the configuration. path may be empty, in which case no file is read.
// A path that does not exist is an error; the caller asked for it explicitly.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config.Load: parse %q: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Webhook.Envelope {
	case EnvelopeResults, EnvelopeLegacy:
	default:
		errs = append(errs, fmt.Errorf("webhook.envelope must be %q or %q, got %q", EnvelopeResults, EnvelopeLegacy, c.Webhook.Envelope))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Admin.JWTExpiryHours <= 0 {
		errs = append(errs, fmt.Errorf("admin.jwt_expiry_hours must be positive, got %d", c.Admin.JWTExpiryHours))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Level)}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = envOr(envKeyHost, cfg.Server.Host)
	cfg.Server.Port = envIntOr(envKeyPortFallback, cfg.Server.Port)
	cfg.Server.Port = envIntOr(envKeyPort, cfg.Server.Port)
	cfg.Server.PublicURL = envOr(envKeyPublicURL, cfg.Server.PublicURL)
	cfg.Database.Path = envOr(envKeyDBPath, cfg.Database.Path)
	cfg.Log.Level = envOr(envKeyLogLevel, cfg.Log.Level)
	cfg.Log.Format = envOr(envKeyLogFormat, cfg.Log.Format)
	cfg.Webhook.Envelope = envOr(envKeyEnvelope, cfg.Webhook.Envelope)
	cfg.Webhook.SecretHash = envOr(envKeySecretHash, cfg.Webhook.SecretHash)
	cfg.Admin.JWTSecret = envOr(envKeyJWTSecret, cfg.Admin.JWTSecret)
	cfg.Admin.JWTExpiryHours = envIntOr(envKeyJWTExpiry, cfg.Admin.JWTExpiryHours)
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr is envOr for integers; unparsable values fall back silently.
func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
