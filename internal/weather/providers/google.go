package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/i474232898/weather-advisor/internal/common"
	"github.com/i474232898/weather-advisor/internal/weather"
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// the geocoder package keeps its key in a package variable
var googleKeyMu sync.Mutex

// googleNoResults is the error text geocoder.Geocoding returns for ZERO_RESULTS.
const googleNoResults = "No results found"

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	name    string
	apiKey  string
	timeout time.Duration
	circuit *gobreaker.CircuitBreaker
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:    "google",
		apiKey:  apiKey,
		timeout: timeout,
		circuit: newBreaker("google-geo"),
		lookup:  geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

func (g *GoogleGeocoder) Configured() bool {
	return g.apiKey != ""
}

// BreakerStates reports the state of the geocoding breaker.
func (g *GoogleGeocoder) BreakerStates() map[string]string {
	return map[string]string{g.circuit.Name(): g.circuit.State().String()}
}

// Geocode runs the blocking library call in a goroutine so the per-call
// timeout still applies. The library has no deadline of its own, so a hung
// call outlives the timeout but holds no lock.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*weather.Coordinates, error) {
	if !g.Configured() {
		return nil, ErrCredentialMissing
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	type result struct {
		coords *weather.Coordinates
		err    error
	}
	done := make(chan result, 1)

	go func() {
		g.useKey()

		res, err := g.circuit.Execute(func() (interface{}, error) {
			loc, err := g.lookup(geocoder.Address{City: address})
			if err != nil {
				if common.HasAny(err.Error(), googleNoResults) {
					return (*weather.Coordinates)(nil), nil
				}
				return nil, err
			}
			return &weather.Coordinates{Lat: loc.Latitude, Lng: loc.Longitude}, nil
		})
		if err != nil {
			done <- result{err: breakerError(err)}
			return
		}
		coords, _ := res.(*weather.Coordinates)
		done <- result{coords: coords}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("google geocoding: %w", r.err)
		}
		return r.coords, nil
	}
}

// useKey installs this geocoder's key in the library. The lock only covers
// the assignment; lookups run unlocked.
func (g *GoogleGeocoder) useKey() {
	googleKeyMu.Lock()
	defer googleKeyMu.Unlock()
	if geocoder.ApiKey != g.apiKey {
		geocoder.ApiKey = g.apiKey
	}
}
