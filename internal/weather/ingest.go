package weather

import (
	"time"

	"github.com/i474232898/weather-advisor/internal/common"
)

// RawCurrentSample is a current-conditions reading as decoded from the upstream.
// Nil fields were absent in the payload.
type RawCurrentSample struct {
	Conditions  string
	Description string
	Icon        string
	TempC       *float64
	HumidityPct *float64
	WindSpeedMS *float64
	UVIndex     *float64
}

// RawForecastSample is one 3-hour forecast entry as decoded from the upstream.
type RawForecastSample struct {
	TimestampEpoch int64
	TempC          *float64
	HumidityPct    *float64
	WindSpeedMS    *float64
	Pop            *float64
	Conditions     string
	Description    string
	Icon           string
}

// CurrentSample is a fully defaulted current reading.
type CurrentSample struct {
	Conditions  string
	Description string
	Icon        string
	TempC       float64
	HumidityPct float64
	WindSpeedMS float64
	UVIndex     float64
}

// ForecastSample is a fully defaulted forecast entry. Pop is in [0,1].
type ForecastSample struct {
	Time        time.Time
	TempC       float64
	HumidityPct float64
	WindSpeedMS float64
	Pop         float64
	Conditions  string
	Description string
	Icon        string
}

// NormalizeCurrent applies field defaults so summarizers can assume well-formed input.
func NormalizeCurrent(raw RawCurrentSample) CurrentSample {
	return CurrentSample{
		Conditions:  orDefault(raw.Conditions, ConditionUnknown),
		Description: raw.Description,
		Icon:        orDefault(raw.Icon, DefaultIcon),
		TempC:       deref(raw.TempC),
		HumidityPct: common.Clamp(deref(raw.HumidityPct), 0, 100),
		WindSpeedMS: max(deref(raw.WindSpeedMS), 0),
		UVIndex:     max(deref(raw.UVIndex), 0),
	}
}

// NormalizeForecast applies field defaults. Entries without a usable timestamp
// are rejected.
func NormalizeForecast(raw RawForecastSample) (ForecastSample, bool) {
	if raw.TimestampEpoch <= 0 {
		return ForecastSample{}, false
	}
	return ForecastSample{
		Time:        time.Unix(raw.TimestampEpoch, 0).UTC(),
		TempC:       deref(raw.TempC),
		HumidityPct: common.Clamp(deref(raw.HumidityPct), 0, 100),
		WindSpeedMS: max(deref(raw.WindSpeedMS), 0),
		Pop:         common.Clamp(deref(raw.Pop), 0, 1),
		Conditions:  orDefault(raw.Conditions, ConditionUnknown),
		Description: raw.Description,
		Icon:        orDefault(raw.Icon, DefaultIcon),
	}, true
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
