package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-advisor/internal/api/http"
	"github.com/i474232898/weather-advisor/internal/config"
	"github.com/i474232898/weather-advisor/internal/scheduler"
	"github.com/i474232898/weather-advisor/internal/store"
	"github.com/i474232898/weather-advisor/internal/weather"
	"github.com/i474232898/weather-advisor/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// Shared HTTP client for outbound provider calls; per-call timeouts are
	// applied by the providers.
	httpClient := &http.Client{
		Timeout: max(cfg.WeatherTimeout, cfg.GeocodeTimeout),
	}

	owm := providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
		APIKey:         cfg.OpenWeatherAPIKey,
		BaseURL:        cfg.OpenWeatherBaseURL,
		WeatherTimeout: cfg.WeatherTimeout,
		GeocodeTimeout: cfg.GeocodeTimeout,
	})

	var geo weather.Geocoder = owm
	if cfg.GeocoderProvider == config.GeocoderGoogle {
		geo = providers.NewGoogleGeocoder(cfg.GoogleAPIKey, cfg.GeocodeTimeout)
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	service := weather.NewService(memStore, owm, geo, weather.Options{
		Location: cfg.Location,
		Strict:   cfg.Strict(),
		Watch:    cfg.WatchLocations,
	})

	sched := scheduler.New(cfg.WatchLocations, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-advisor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "weather-advisor",
			"upstreams": service.UpstreamStatus(),
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "fetchMode", cfg.FetchMode, "zone", cfg.Location.String())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
	slog.Info("server stopped")
}
