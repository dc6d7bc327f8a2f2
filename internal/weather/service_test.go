package weather

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

type fakeSource struct {
	apiKey      string
	current     RawCurrentSample
	forecast    []RawForecastSample
	currentErr  error
	forecastErr error
}

func (f *fakeSource) Name() string     { return "fake" }
func (f *fakeSource) Configured() bool { return f.apiKey != "" }

func (f *fakeSource) FetchCurrent(ctx context.Context, lat, lon float64) (RawCurrentSample, error) {
	return f.current, f.currentErr
}

func (f *fakeSource) FetchForecast(ctx context.Context, lat, lon float64) ([]RawForecastSample, error) {
	return f.forecast, f.forecastErr
}

type fakeGeocoder struct {
	configured bool
	coords     *Coordinates
	err        error
}

func (g *fakeGeocoder) Name() string     { return "fake-geo" }
func (g *fakeGeocoder) Configured() bool { return g.configured }
func (g *fakeGeocoder) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	return g.coords, g.err
}

type memStore struct {
	mu    sync.Mutex
	snaps []ForecastSnapshot
}

func (m *memStore) SaveSnapshot(loc WatchLocation, s ForecastSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps = append(m.snaps, s)
}

func (m *memStore) GetLatest(loc WatchLocation) (ForecastSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.snaps) == 0 {
		return ForecastSnapshot{}, errors.New("empty")
	}
	return m.snaps[len(m.snaps)-1], nil
}

func (m *memStore) GetRange(loc WatchLocation, from, to time.Time) ([]ForecastSnapshot, error) {
	return m.snaps, nil
}

// forecastDays returns 3-hour samples starting at today 00:00 UTC for n days.
func forecastDays(n int) []RawForecastSample {
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	var out []RawForecastSample
	for i := 0; i < n*8; i++ {
		ts := start.Add(time.Duration(i*3) * time.Hour)
		out = append(out, RawForecastSample{
			TimestampEpoch: ts.Unix(),
			TempC:          fp(10 + float64(ts.Hour())),
			HumidityPct:    fp(60),
			WindSpeedMS:    fp(4),
			Pop:            fp(0.3),
			Conditions:     "Clouds",
			Description:    "scattered clouds",
			Icon:           "03d",
		})
	}
	return out
}

func currentReading() RawCurrentSample {
	return RawCurrentSample{
		Conditions:  "Clear",
		Description: "clear sky",
		Icon:        "01d",
		TempC:       fp(19.2),
		HumidityPct: fp(45),
		WindSpeedMS: fp(2.1),
	}
}

func request(start, end string) ForecastRequest {
	s, _ := time.Parse(DateLayout, start)
	e, _ := time.Parse(DateLayout, end)
	return ForecastRequest{Latitude: 48.85, Longitude: 2.35, StartDate: s, EndDate: e}
}

func newTestService(src ConditionsSource, strict bool) *Service {
	return NewService(&memStore{}, src, &fakeGeocoder{}, Options{
		Now:    func() time.Time { return testNow },
		Strict: strict,
	})
}

func TestGetForecastWithoutCredential(t *testing.T) {
	svc := newTestService(&fakeSource{current: currentReading()}, false)

	got := svc.GetForecast(context.Background(), request("2026-10-16", "2026-10-20"))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestGetForecastMergesCurrentAndForecast(t *testing.T) {
	src := &fakeSource{apiKey: "k", current: currentReading(), forecast: forecastDays(6)}
	svc := newTestService(src, false)

	got := svc.GetForecast(context.Background(), request("2026-10-16", "2026-10-31"))

	if len(got) != 6 {
		t.Fatalf("expected 6 days (today + 5 forecast days), got %d", len(got))
	}
	today := got[0]
	if today.Date != "2026-10-16" || today.Conditions != "Clear" || today.Temperature.Max != 19 {
		t.Errorf("expected today from the live reading, got %+v", today)
	}
	if got[1].Temperature.Min != 10 || got[1].Temperature.Max != 31 {
		t.Errorf("unexpected forecast range %d..%d", got[1].Temperature.Min, got[1].Temperature.Max)
	}
	if got[1].PrecipitationPct != 30 {
		t.Errorf("expected 30%% precipitation, got %d", got[1].PrecipitationPct)
	}
}

func TestGetForecastInvariants(t *testing.T) {
	src := &fakeSource{apiKey: "k", current: currentReading(), forecast: forecastDays(10)}
	svc := newTestService(src, false)

	ranges := [][2]string{
		{"2026-10-16", "2026-10-30"},
		{"2026-10-17", "2026-10-19"},
		{"2026-10-16", "2026-10-16"},
		{"2026-10-20", "2026-10-26"},
	}
	for _, r := range ranges {
		got := svc.GetForecast(context.Background(), request(r[0], r[1]))

		start, _ := time.Parse(DateLayout, r[0])
		end, _ := time.Parse(DateLayout, r[1])
		maxLen := int(end.Sub(start).Hours()/24) + 1
		if len(got) > MaxDays || len(got) > maxLen {
			t.Errorf("%v: %d days exceeds limits", r, len(got))
		}

		for i, d := range got {
			if i > 0 && got[i-1].Date >= d.Date {
				t.Errorf("%v: dates not strictly ascending at %d: %s, %s", r, i, got[i-1].Date, d.Date)
			}
			if d.Date < r[0] || d.Date > r[1] {
				t.Errorf("%v: date %s out of range", r, d.Date)
			}
			if d.Temperature.Min > d.Temperature.Max {
				t.Errorf("%v: min %d > max %d", r, d.Temperature.Min, d.Temperature.Max)
			}
			if d.PrecipitationPct < 0 || d.PrecipitationPct > 100 || d.HumidityPct < 0 || d.HumidityPct > 100 {
				t.Errorf("%v: percentages out of range: %+v", r, d)
			}
			if len(d.Recommendations) > MaxRecommendations {
				t.Errorf("%v: %d recommendations", r, len(d.Recommendations))
			}
		}
	}
}

func TestGetForecastPartialMode(t *testing.T) {
	src := &fakeSource{apiKey: "k", current: currentReading(), forecastErr: errors.New("timeout")}
	svc := newTestService(src, false)

	got := svc.GetForecast(context.Background(), request("2026-10-16", "2026-10-20"))
	if len(got) != 1 || got[0].Date != "2026-10-16" {
		t.Fatalf("expected only the current day to survive, got %+v", got)
	}

	src = &fakeSource{apiKey: "k", currentErr: errors.New("503"), forecast: forecastDays(3)}
	svc = newTestService(src, false)

	got = svc.GetForecast(context.Background(), request("2026-10-16", "2026-10-20"))
	if len(got) != 2 || got[0].Date != "2026-10-17" {
		t.Fatalf("expected forecast days only, got %+v", got)
	}
}

func TestGetForecastStrictModeDiscardsEverything(t *testing.T) {
	src := &fakeSource{apiKey: "k", current: currentReading(), forecastErr: errors.New("timeout")}
	svc := newTestService(src, true)

	got := svc.GetForecast(context.Background(), request("2026-10-16", "2026-10-20"))
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty list in strict mode, got %+v", got)
	}
}

func TestGetForecastInvertedRange(t *testing.T) {
	src := &fakeSource{apiKey: "k", current: currentReading(), forecast: forecastDays(3)}
	svc := newTestService(src, false)

	if got := svc.GetForecast(context.Background(), request("2026-10-18", "2026-10-16")); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestGetForecastTodayInLocalZone(t *testing.T) {
	// 09:30 UTC on the 16th is still the 15th in Honolulu (UTC-10).
	honolulu := time.FixedZone("HST", -10*3600)
	src := &fakeSource{apiKey: "k", current: currentReading(), forecast: forecastDays(4)}
	svc := NewService(nil, src, nil, Options{Location: honolulu, Now: func() time.Time { return testNow }})

	if svc.Today() != "2026-10-15" {
		t.Fatalf("expected today 2026-10-15, got %s", svc.Today())
	}

	// Forecast samples from 00:00 UTC on the 16th fall on the local 15th and
	// must not replace the live reading.
	got := svc.GetForecast(context.Background(), request("2026-10-15", "2026-10-15"))
	if len(got) != 1 || got[0].Conditions != "Clear" {
		t.Fatalf("expected the live reading for local today, got %+v", got)
	}
}

func TestGeocode(t *testing.T) {
	tests := []struct {
		name string
		geo  *fakeGeocoder
		want *Coordinates
	}{
		{"disabled", &fakeGeocoder{configured: false, coords: &Coordinates{Lat: 1, Lng: 2}}, nil},
		{"failure", &fakeGeocoder{configured: true, err: errors.New("timeout")}, nil},
		{"no match", &fakeGeocoder{configured: true}, nil},
		{"match", &fakeGeocoder{configured: true, coords: &Coordinates{Lat: 48.85, Lng: 2.35}}, &Coordinates{Lat: 48.85, Lng: 2.35}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, nil, tt.geo, Options{})
			got := svc.Geocode(context.Background(), "Paris")
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Geocode() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := NewService(nil, nil, nil, Options{}).Geocode(context.Background(), "Paris"); got != nil {
		t.Errorf("expected nil without geocoder, got %v", got)
	}
}

func TestFetchAndStore(t *testing.T) {
	st := &memStore{}
	loc := WatchLocation{Name: "Paris", Lat: 48.85, Lon: 2.35}

	src := &fakeSource{apiKey: "k", current: currentReading(), forecast: forecastDays(10)}
	svc := NewService(st, src, nil, Options{Now: func() time.Time { return testNow }, Watch: []WatchLocation{loc}})

	if err := svc.FetchAndStore(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, err := svc.GetLatest(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Days) != MaxDays || snap.Days[0].Date != "2026-10-16" || snap.Days[6].Date != "2026-10-22" {
		t.Errorf("unexpected snapshot days: %d", len(snap.Days))
	}
	if !snap.FetchedAt.Equal(testNow) {
		t.Errorf("expected fetchedAt %v, got %v", testNow, snap.FetchedAt)
	}

	// A disabled source must not overwrite the last good snapshot.
	svc = NewService(st, &fakeSource{}, nil, Options{Now: func() time.Time { return testNow }})
	if err := svc.FetchAndStore(context.Background(), loc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.snaps) != 1 {
		t.Errorf("expected 1 stored snapshot, got %d", len(st.snaps))
	}
}

func TestFindWatch(t *testing.T) {
	svc := NewService(nil, nil, nil, Options{Watch: []WatchLocation{{Name: "Buenos Aires"}}})

	if _, err := svc.FindWatch("buenos aires"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := svc.FindWatch("Lima"); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("expected ErrUnknownLocation, got %v", err)
	}
}

type reportingSource struct{ fakeSource }

func (r *reportingSource) BreakerStates() map[string]string {
	return map[string]string{"openweather": "closed"}
}

type reportingGeocoder struct{ fakeGeocoder }

func (r *reportingGeocoder) BreakerStates() map[string]string {
	return map[string]string{"google-geo": "open"}
}

func TestUpstreamStatusMergesGeocoderBreakers(t *testing.T) {
	svc := NewService(&memStore{}, &reportingSource{}, &reportingGeocoder{}, Options{})
	got := svc.UpstreamStatus()
	if got["openweather"] != "closed" || got["google-geo"] != "open" || len(got) != 2 {
		t.Errorf("unexpected status %v", got)
	}
}
