package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/shared/dateonly"

	availabilitysvc "staycal/internal/app/services/availability"
	"staycal/internal/infra/config"
	"staycal/internal/infra/engine"
	ginserver "staycal/internal/infra/http/gin"
	"staycal/internal/infra/obs"
	"staycal/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev", "info").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)

	source, err := buildSource(cfg, logger)
	if err != nil {
		logger.Error("availability source setup failed", "error", err)
		os.Exit(1)
	}

	resolver := &availabilitysvc.Service{
		Source: source,
		Anchor: cfg.DayStart,
		Logger: logger,
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
		Mode:  cfg.AvailabilityMode,
	}, ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Service: resolver, Logger: logger},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "availability_mode", cfg.AvailabilityMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildSource(cfg config.Config, logger *slog.Logger) (domainavailability.Source, error) {
	switch cfg.AvailabilityMode {
	case config.ModeMemory:
		source := memory.NewAvailabilitySource()
		if err := loadAvailabilityFixtures(source, cfg.FixturesPath, logger); err != nil {
			return nil, err
		}
		return source, nil
	default:
		return &engine.Client{
			BaseURL:    cfg.EngineBaseURL,
			APIKey:     cfg.EngineAPIKey,
			ServiceID:  cfg.EngineServiceID,
			HTTPClient: &http.Client{},
			Timeout:    cfg.EngineTimeout,
			Logger:     logger,
		}, nil
	}
}

type availabilityFixture struct {
	CategoryID string `json:"category_id"`
	Date       string `json:"date"`
	Count      int    `json:"count"`
}

func loadAvailabilityFixtures(source *memory.AvailabilitySource, path string, logger *slog.Logger) error {
	if path == "" {
		logger.Info("no availability fixtures configured, all days available")
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("availability fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("availability fixtures file empty", "path", path)
		return nil
	}

	var fixtures []availabilityFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	loaded := 0
	for _, fx := range fixtures {
		day, err := dateonly.Parse(fx.Date)
		if err != nil {
			logger.Error("fixture invalid", "category_id", fx.CategoryID, "date", fx.Date, "error", err)
			continue
		}
		if fx.CategoryID == "" {
			logger.Error("fixture invalid", "date", fx.Date, "error", "category_id missing")
			continue
		}
		source.Seed(fx.CategoryID, day, fx.Count)
		loaded++
	}
	logger.Info("availability fixtures loaded", "path", path, "entries", loaded)
	return nil
}
