package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/onecall-weather/internal/api/http"
	"github.com/i474232898/onecall-weather/internal/config"
	"github.com/i474232898/onecall-weather/internal/scheduler"
	"github.com/i474232898/onecall-weather/internal/store"
	"github.com/i474232898/onecall-weather/internal/weather"
	"github.com/i474232898/onecall-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	loc := cfg.Location
	if !cfg.HasCoordinates {
		loc, err = providers.ResolveCoordinates(loc, cfg.GeocoderAPIKey)
		if err != nil {
			log.Fatalf("failed to resolve coordinates: %v", err)
		}
		log.Printf("INFO: resolved %s,%s to %.4f,%.4f", loc.City, loc.Country, loc.Lat, loc.Lon)
	}

	// Shared HTTP client for outbound feed calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	fetcher := providers.NewOneCallFetcher(
		providers.HTTPClientConfig{Client: httpClient, Limiter: limiter},
		providers.OneCallConfig{
			Host:     cfg.OpenWeatherHost,
			APIKey:   cfg.OpenWeatherAPIKey,
			Location: loc,
			Units:    cfg.Units,
			Language: cfg.Language,
		},
	)

	var diagnostics weather.Logger
	if cfg.DecodeDiagnostics {
		diagnostics = log.Default()
	}
	decoder := weather.NewDecoder(cfg.Units, cfg.TrendOrder, diagnostics)

	modes, err := weather.ModesFor(cfg.DecodeVariant)
	if err != nil {
		log.Fatalf("failed to configure decoder: %v", err)
	}

	// Owner of the current/hourly/daily records.
	memStore := store.NewMemoryStore(cfg.MaxReadings)

	// Core service running decode cycles into the store.
	service := weather.NewService(memStore, fetcher, decoder, modes...)

	// Scheduler that periodically runs decode cycles.
	sched := scheduler.New(cfg.FetchInterval, cfg.HTTPTimeout*time.Duration(len(modes)+1), service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "onecall-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "onecall-weather",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
