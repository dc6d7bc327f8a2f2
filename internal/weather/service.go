package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownLocation is returned for watchlist lookups of unconfigured names.
var ErrUnknownLocation = errors.New("location is not on the watchlist")

// Options tunes a Service. Zero values mean UTC, time.Now and partial fetching.
type Options struct {
	// Location defines local calendar days and hours.
	Location *time.Location
	Now      func() time.Time
	// Strict discards every result when either upstream call fails, the
	// all-or-nothing behaviour of the legacy service. The default keeps the
	// locations whose calls succeeded and logs the failures.
	Strict bool
	Watch  []WatchLocation
}

// Service turns upstream readings into windowed daily summaries and keeps the
// watchlist snapshots.
type Service struct {
	store    Store
	source   ConditionsSource
	geocoder Geocoder

	loc    *time.Location
	now    func() time.Time
	strict bool
	watch  []WatchLocation
}

// NewService creates a new Service. store and geocoder may be nil.
func NewService(store Store, source ConditionsSource, geocoder Geocoder, opts Options) *Service {
	s := &Service{
		store:    store,
		source:   source,
		geocoder: geocoder,
		loc:      zoneOrUTC(opts.Location),
		now:      opts.Now,
		strict:   opts.Strict,
		watch:    opts.Watch,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Today returns the current calendar date in the service's zone.
func (s *Service) Today() string {
	return localDate(s.now(), s.loc)
}

// GetForecast returns at most MaxDays summaries for dates in
// [req.StartDate, req.EndDate], ascending. Today comes from the live reading,
// later days from the aggregated 3-hour forecast. It never fails: a missing
// credential or an upstream failure yields an empty (or, in partial mode,
// reduced) list.
func (s *Service) GetForecast(ctx context.Context, req ForecastRequest) []DailyWeatherSummary {
	empty := []DailyWeatherSummary{}

	if s.source == nil || !s.source.Configured() {
		slog.Warn("weather credential missing; forecast disabled")
		return empty
	}

	start := req.StartDate.Format(DateLayout)
	end := req.EndDate.Format(DateLayout)
	if end < start {
		slog.Debug("empty forecast range", "start", start, "end", end)
		return empty
	}

	today := s.Today()

	var (
		current *DailyWeatherSummary
		days    []DailyWeatherSummary
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		raw, err := s.source.FetchCurrent(gctx, req.Latitude, req.Longitude)
		if err != nil {
			return s.upstreamFailure("current", err)
		}
		sum := SummarizeCurrent(today, NormalizeCurrent(raw))
		current = &sum
		return nil
	})

	g.Go(func() error {
		raws, err := s.source.FetchForecast(gctx, req.Latitude, req.Longitude)
		if err != nil {
			return s.upstreamFailure("forecast", err)
		}
		samples := make([]ForecastSample, 0, len(raws))
		for _, r := range raws {
			sample, ok := NormalizeForecast(r)
			if !ok {
				slog.Debug("dropping forecast entry without timestamp", "provider", s.source.Name())
				continue
			}
			samples = append(samples, sample)
		}
		days = SummarizeBuckets(GroupByDate(samples, today, s.loc), s.loc)
		return nil
	})

	if err := g.Wait(); err != nil {
		// Strict mode: a single failure discards partial results.
		return empty
	}

	all := make([]DailyWeatherSummary, 0, len(days)+1)
	if current != nil {
		all = append(all, *current)
	}
	all = append(all, days...)

	return Window(all, start, end, MaxDays)
}

func (s *Service) upstreamFailure(op string, err error) error {
	slog.Warn("upstream weather request failed",
		"provider", s.source.Name(),
		"op", op,
		"strict", s.strict,
		"err", err,
	)
	if s.strict {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Geocode resolves address to coordinates, or nil when the geocoder is not
// configured, the lookup fails or nothing matched.
func (s *Service) Geocode(ctx context.Context, address string) *Coordinates {
	if s.geocoder == nil || !s.geocoder.Configured() {
		slog.Warn("geocoder credential missing; geocoding disabled")
		return nil
	}

	coords, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		slog.Warn("geocoding request failed", "provider", s.geocoder.Name(), "err", err)
		return nil
	}
	return coords
}

// UpstreamStatus reports circuit breaker states of the configured upstreams.
func (s *Service) UpstreamStatus() map[string]string {
	status := make(map[string]string)
	for _, u := range []any{s.source, s.geocoder} {
		if r, ok := u.(BreakerReporter); ok {
			for name, state := range r.BreakerStates() {
				status[name] = state
			}
		}
	}
	return status
}

// Watchlist returns the configured watch locations.
func (s *Service) Watchlist() []WatchLocation {
	return s.watch
}

// FindWatch looks up a watch location by name, case-insensitively.
func (s *Service) FindWatch(name string) (WatchLocation, error) {
	key := WatchLocation{Name: name}.Key()
	for _, w := range s.watch {
		if w.Key() == key {
			return w, nil
		}
	}
	return WatchLocation{}, ErrUnknownLocation
}

// FetchAndStore computes the forecast window starting today for loc and stores
// it as a snapshot. Empty results leave the last good snapshot in place.
func (s *Service) FetchAndStore(ctx context.Context, loc WatchLocation) error {
	if s.store == nil {
		return fmt.Errorf("no snapshot store configured")
	}

	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := s.GetForecast(ctx, ForecastRequest{
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, MaxDays-1),
	})
	if len(days) == 0 {
		slog.Info("no forecast days for watch location; keeping last good snapshot", "location", loc.Key())
		return nil
	}

	s.store.SaveSnapshot(loc, ForecastSnapshot{
		Location:  loc,
		FetchedAt: s.now().UTC(),
		Days:      days,
	})
	return nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc WatchLocation) (ForecastSnapshot, error) {
	if s.store == nil {
		return ForecastSnapshot{}, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc WatchLocation, from, to time.Time) ([]ForecastSnapshot, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}
	return s.store.GetRange(loc, from, to)
}
