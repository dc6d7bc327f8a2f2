package weather

import (
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar date used as the daily bucket key.
	DateLayout = "2006-01-02"

	// MaxDays caps the number of summaries returned for one request.
	MaxDays = 7

	// MaxRecommendations caps the advisory list of a single summary.
	MaxRecommendations = 3

	ConditionUnknown = "Unknown"
	DefaultIcon      = "01d"
	TemperatureUnit  = "celsius"
)

// Temperature is the rounded daily range. For the current day Min equals Max.
type Temperature struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Unit string `json:"unit"`
}

// DailyWeatherSummary is the normalized per-date weather view handed to callers.
type DailyWeatherSummary struct {
	Date             string      `json:"date"`
	Temperature      Temperature `json:"temperature"`
	Conditions       string      `json:"conditions"`
	Description      string      `json:"description"`
	PrecipitationPct int         `json:"precipitation"`
	HumidityPct      int         `json:"humidity"`
	WindSpeedMS      int         `json:"windSpeed"`
	UVIndex          float64     `json:"uvIndex"`
	Icon             string      `json:"icon"`
	Recommendations  []string    `json:"recommendations"`
}

// ForecastRequest selects a location and an inclusive calendar date range.
type ForecastRequest struct {
	Latitude  float64
	Longitude float64
	StartDate time.Time
	EndDate   time.Time
}

// Coordinates is a geocoding result.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WatchLocation is a named place refreshed periodically by the scheduler.
type WatchLocation struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l WatchLocation) Key() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// ForecastSnapshot is one stored watchlist refresh.
type ForecastSnapshot struct {
	Location  WatchLocation         `json:"location"`
	FetchedAt time.Time             `json:"fetchedAt"` // always UTC
	Days      []DailyWeatherSummary `json:"days"`
}
