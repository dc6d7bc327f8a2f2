package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-advisor/internal/weather"
)

type recordingRefresher struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (r *recordingRefresher) FetchAndStore(_ context.Context, loc weather.WatchLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, loc.Key())
	if loc.Key() == r.fail {
		return errors.New("boom")
	}
	return nil
}

func TestRunOnceRefreshesEveryLocation(t *testing.T) {
	rec := &recordingRefresher{fail: "tokyo"}
	locs := []weather.WatchLocation{{Name: "Paris"}, {Name: "Tokyo"}, {Name: "Lima"}}

	s := New(locs, time.Hour, rec)
	s.RunOnce()

	sort.Strings(rec.calls)
	want := []string{"lima", "paris", "tokyo"}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %d refreshes, got %d", len(want), len(rec.calls))
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, rec.calls[i], want[i])
		}
	}
}

func TestStartWithoutLocations(t *testing.T) {
	s := New(nil, time.Hour, &recordingRefresher{})
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
