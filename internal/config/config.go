package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-advisor/internal/weather"
)

const (
	FetchModePartial = "partial"
	FetchModeStrict  = "strict"

	GeocoderOpenWeather = "openweather"
	GeocoderGoogle      = "google"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// GeocoderProvider selects the geocoding backend ("openweather" or "google").
	GeocoderProvider string
	GoogleAPIKey     string

	// Per-call upstream timeouts.
	WeatherTimeout time.Duration
	GeocodeTimeout time.Duration

	// Location defines local calendar days for forecast grouping.
	Location *time.Location

	FetchMode string

	// FetchInterval controls how often the watchlist is refreshed.
	FetchInterval time.Duration

	// Locations to track.
	WatchLocations []weather.WatchLocation

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	Port     string
	LogLevel slog.Level
}

// Strict reports whether a single upstream failure should discard the whole forecast.
func (c *AppConfig) Strict() bool {
	return c.FetchMode == FetchModeStrict
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	cfg.GeocoderProvider = strings.ToLower(getenvDefault("GEOCODER_PROVIDER", GeocoderOpenWeather))
	if cfg.GeocoderProvider != GeocoderOpenWeather && cfg.GeocoderProvider != GeocoderGoogle {
		return nil, fmt.Errorf("invalid GEOCODER_PROVIDER %q", cfg.GeocoderProvider)
	}

	var err error
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = getenvDuration("GEOCODE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48) // 24h at 30-minute intervals

	tz := getenvDefault("FORECAST_TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE: %w", err)
	}

	// Partial is the default; set FETCH_MODE=strict for the legacy
	// all-or-nothing forecast.
	cfg.FetchMode = strings.ToLower(getenvDefault("FETCH_MODE", FetchModePartial))
	if cfg.FetchMode != FetchModePartial && cfg.FetchMode != FetchModeStrict {
		return nil, fmt.Errorf("invalid FETCH_MODE %q", cfg.FetchMode)
	}

	cfg.WatchLocations, err = parseWatchLocations(os.Getenv("WATCH_LOCATIONS"))
	if err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.OpenWeatherAPIKey == "" {
		slog.Warn("OPENWEATHER_API_KEY is not set; forecasts will be empty")
	}

	return cfg, nil
}

// parseWatchLocations reads "name:lat:lon" entries separated by commas.
func parseWatchLocations(raw string) ([]weather.WatchLocation, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var locs []weather.WatchLocation
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid WATCH_LOCATIONS entry %q: want name:lat:lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in WATCH_LOCATIONS entry %q", entry)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in WATCH_LOCATIONS entry %q", entry)
		}
		locs = append(locs, weather.WatchLocation{
			Name: strings.TrimSpace(parts[0]),
			Lat:  lat,
			Lon:  lon,
		})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
