package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/weather-advisor/internal/weather"
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	FetchAndStore(ctx context.Context, loc weather.WatchLocation) error
}

// Scheduler periodically refreshes forecasts for the watch locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	locations []weather.WatchLocation
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.WatchLocation, interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		slog.Info("scheduler: no watch locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	if _, err := s.scheduler.Every(interval).Do(s.RunOnce); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every watch location concurrently and waits for all of them.
func (s *Scheduler) RunOnce() {
	slog.Info("scheduler: running watchlist refresh", "locations", len(s.locations))

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := s.service.FetchAndStore(ctx, loc); err != nil {
				slog.Warn("scheduler: refresh failed", "location", loc.Key(), "err", err)
			}
		}()
	}
	wg.Wait()
	slog.Info("scheduler: completed watchlist refresh")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
