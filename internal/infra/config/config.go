package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"staycal/internal/domain/availability"
)

const (
	ModeEngine = "engine"
	ModeMemory = "memory"
)

// Config aggregates application configuration values loaded from
// environment variables. It is built once at startup and passed around
// read-only; request handling never touches the environment.
type Config struct {
	Env              string
	LogLevel         string
	HTTPAddr         string
	CORSOrigins      []string
	AvailabilityMode string
	EngineBaseURL    string
	EngineAPIKey     string
	EngineServiceID  string
	EngineTimeout    time.Duration
	DayStart         availability.DayAnchor
	FixturesPath     string
	ShutdownTimeout  time.Duration
}

// Load parses configuration from the current environment. Engine mode
// requires the upstream address, credentials, and day-start anchor and
// fails fast when any of them is absent or malformed.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		AvailabilityMode: strings.ToLower(getEnv("AVAILABILITY_MODE", ModeEngine)),
		EngineBaseURL:    strings.TrimRight(strings.TrimSpace(os.Getenv("ENGINE_BASE_URL")), "/"),
		EngineAPIKey:     strings.TrimSpace(os.Getenv("ENGINE_API_KEY")),
		EngineServiceID:  strings.TrimSpace(os.Getenv("ENGINE_SERVICE_ID")),
		FixturesPath:     os.Getenv("AVAILABILITY_FIXTURES"),
	}
	cfg.CORSOrigins = splitAndTrim(getEnv("CORS_ORIGINS", "*"))

	timeout, err := parseDurationEnv("ENGINE_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.EngineTimeout = timeout

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	switch cfg.AvailabilityMode {
	case ModeEngine, ModeMemory:
	default:
		return Config{}, fmt.Errorf("invalid AVAILABILITY_MODE %q: want %s or %s", cfg.AvailabilityMode, ModeEngine, ModeMemory)
	}

	dayStart := strings.TrimSpace(os.Getenv("ENGINE_DAY_START"))
	if cfg.AvailabilityMode == ModeEngine {
		if cfg.EngineBaseURL == "" {
			return Config{}, fmt.Errorf("ENGINE_BASE_URL is required")
		}
		if cfg.EngineAPIKey == "" {
			return Config{}, fmt.Errorf("ENGINE_API_KEY is required")
		}
		if cfg.EngineServiceID == "" {
			return Config{}, fmt.Errorf("ENGINE_SERVICE_ID is required")
		}
		if dayStart == "" {
			return Config{}, fmt.Errorf("ENGINE_DAY_START is required")
		}
	}
	if dayStart == "" {
		dayStart = "00:00"
	}
	anchor, err := availability.ParseDayAnchor(dayStart, strings.TrimSpace(os.Getenv("ENGINE_DAY_START_TZ")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid ENGINE_DAY_START: %w", err)
	}
	cfg.DayStart = anchor

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
