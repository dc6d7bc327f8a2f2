package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-advisor/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherConfig holds the credential, endpoint and per-call timeouts.
type OpenWeatherConfig struct {
	APIKey         string
	BaseURL        string
	WeatherTimeout time.Duration
	GeocodeTimeout time.Duration
}

// OpenWeatherProvider implements weather.ConditionsSource and weather.Geocoder
// for OpenWeatherMap.
type OpenWeatherProvider struct {
	name       string
	apiKey     string
	baseURL    string
	weatherCfg HTTPClientConfig
	geoCfg     HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
	geoCircuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		weatherCfg: HTTPClientConfig{
			Client:  client,
			Timeout: cfg.WeatherTimeout,
		},
		geoCfg: HTTPClientConfig{
			Client:  client,
			Timeout: cfg.GeocodeTimeout,
		},
		circuit:    newBreaker("openweather"),
		geoCircuit: newBreaker("openweather-geo"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Configured() bool {
	return p.apiKey != ""
}

// BreakerStates reports the state of the weather and geocoding breakers.
func (p *OpenWeatherProvider) BreakerStates() map[string]string {
	return map[string]string{
		p.circuit.Name():    p.circuit.State().String(),
		p.geoCircuit.Name(): p.geoCircuit.State().String(),
	}
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type owmWind struct {
	Speed *float64 `json:"speed"`
}

func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.RawCurrentSample, error) {
	if !p.Configured() {
		return weather.RawCurrentSample{}, ErrCredentialMissing
	}

	var payload struct {
		Weather []owmCondition `json:"weather"`
		Main    owmMain        `json:"main"`
		Wind    owmWind        `json:"wind"`
		UVI     *float64       `json:"uvi"`
	}

	build := p.coordRequest("/data/2.5/weather", lat, lon)
	if err := getJSON(ctx, p.weatherCfg, p.circuit, build, &payload); err != nil {
		return weather.RawCurrentSample{}, fmt.Errorf("openweather current: %w", err)
	}

	cond := firstCondition(payload.Weather)
	return weather.RawCurrentSample{
		Conditions:  cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
		TempC:       payload.Main.Temp,
		HumidityPct: payload.Main.Humidity,
		WindSpeedMS: payload.Wind.Speed,
		UVIndex:     payload.UVI,
	}, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, lat, lon float64) ([]weather.RawForecastSample, error) {
	if !p.Configured() {
		return nil, ErrCredentialMissing
	}

	var payload struct {
		List []struct {
			Dt      int64          `json:"dt"`
			Main    owmMain        `json:"main"`
			Weather []owmCondition `json:"weather"`
			Wind    owmWind        `json:"wind"`
			Pop     *float64       `json:"pop"`
		} `json:"list"`
	}

	build := p.coordRequest("/data/2.5/forecast", lat, lon)
	if err := getJSON(ctx, p.weatherCfg, p.circuit, build, &payload); err != nil {
		return nil, fmt.Errorf("openweather forecast: %w", err)
	}

	samples := make([]weather.RawForecastSample, 0, len(payload.List))
	for _, item := range payload.List {
		cond := firstCondition(item.Weather)
		samples = append(samples, weather.RawForecastSample{
			TimestampEpoch: item.Dt,
			TempC:          item.Main.Temp,
			HumidityPct:    item.Main.Humidity,
			WindSpeedMS:    item.Wind.Speed,
			Pop:            item.Pop,
			Conditions:     cond.Main,
			Description:    cond.Description,
			Icon:           cond.Icon,
		})
	}
	return samples, nil
}

// Geocode uses the direct geocoding endpoint. Only the first match is used.
func (p *OpenWeatherProvider) Geocode(ctx context.Context, address string) (*weather.Coordinates, error) {
	if !p.Configured() {
		return nil, ErrCredentialMissing
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", address)
		values.Set("limit", "1")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s/geo/1.0/direct?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := getJSON(ctx, p.geoCfg, p.geoCircuit, buildRequest, &payload); err != nil {
		return nil, fmt.Errorf("openweather geocoding: %w", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return &weather.Coordinates{Lat: payload[0].Lat, Lng: payload[0].Lon}, nil
}

func (p *OpenWeatherProvider) coordRequest(path string, lat, lon float64) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("units", "metric")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}
}

func firstCondition(items []owmCondition) owmCondition {
	if len(items) == 0 {
		return owmCondition{}
	}
	return items[0]
}
