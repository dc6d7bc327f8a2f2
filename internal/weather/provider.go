package weather

import (
	"context"
	"time"
)

// ConditionsSource abstracts the upstream serving current conditions and the
// 3-hour multi-day forecast (e.g. OpenWeatherMap).
type ConditionsSource interface {
	Name() string
	// Configured reports whether the credential needed for calls is present.
	Configured() bool
	FetchCurrent(ctx context.Context, lat, lon float64) (RawCurrentSample, error)
	FetchForecast(ctx context.Context, lat, lon float64) ([]RawForecastSample, error)
}

// Geocoder resolves a free-form address. A nil result with a nil error means
// the upstream had no match.
type Geocoder interface {
	Name() string
	Configured() bool
	Geocode(ctx context.Context, address string) (*Coordinates, error)
}

// BreakerReporter is implemented by upstream clients guarded by circuit breakers.
type BreakerReporter interface {
	BreakerStates() map[string]string
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveSnapshot(loc WatchLocation, snapshot ForecastSnapshot)
	GetLatest(loc WatchLocation) (ForecastSnapshot, error)
	GetRange(loc WatchLocation, from, to time.Time) ([]ForecastSnapshot, error)
}
