package weather

import (
	"math"
	"time"

	"github.com/i474232898/weather-advisor/internal/common"
)

// SummarizeDay reduces one date's forecast samples into a DailyWeatherSummary.
// Temperatures become a rounded min/max range; humidity, wind and precipitation
// probability are averaged. Conditions, description and icon come from the
// midday sample (see representativeSample); loc defines the local hour.
func SummarizeDay(date string, samples []ForecastSample, loc *time.Location) DailyWeatherSummary {
	if len(samples) == 0 {
		return DailyWeatherSummary{
			Date:            date,
			Temperature:     Temperature{Unit: TemperatureUnit},
			Conditions:      ConditionUnknown,
			Icon:            DefaultIcon,
			Recommendations: []string{},
		}
	}

	var (
		minTemp   = math.Inf(1)
		maxTemp   = math.Inf(-1)
		humidity  = make([]float64, 0, len(samples))
		wind      = make([]float64, 0, len(samples))
		precipPct = make([]float64, 0, len(samples))
	)

	for _, s := range samples {
		minTemp = math.Min(minTemp, s.TempC)
		maxTemp = math.Max(maxTemp, s.TempC)
		humidity = append(humidity, s.HumidityPct)
		wind = append(wind, s.WindSpeedMS)
		precipPct = append(precipPct, s.Pop*100)
	}

	rep := representativeSample(samples, loc)
	temp := Temperature{
		Min:  common.RoundInt(minTemp),
		Max:  common.RoundInt(maxTemp),
		Unit: TemperatureUnit,
	}
	precip := common.ClampPct(common.RoundInt(common.Mean(precipPct)))

	return DailyWeatherSummary{
		Date:             date,
		Temperature:      temp,
		Conditions:       rep.Conditions,
		Description:      rep.Description,
		PrecipitationPct: precip,
		HumidityPct:      common.ClampPct(common.RoundInt(common.Mean(humidity))),
		WindSpeedMS:      common.RoundInt(common.Mean(wind)),
		UVIndex:          0, // not provided by the forecast source
		Icon:             rep.Icon,
		Recommendations:  Recommendations(float64(temp.Max), precip, 0, rep.Conditions),
	}
}

// SummarizeCurrent maps the live reading onto the summary shape. A point reading
// has no range, so Min and Max are the same value.
func SummarizeCurrent(date string, s CurrentSample) DailyWeatherSummary {
	temp := common.RoundInt(s.TempC)
	return DailyWeatherSummary{
		Date:             date,
		Temperature:      Temperature{Min: temp, Max: temp, Unit: TemperatureUnit},
		Conditions:       s.Conditions,
		Description:      s.Description,
		PrecipitationPct: 0,
		HumidityPct:      common.ClampPct(common.RoundInt(s.HumidityPct)),
		WindSpeedMS:      common.RoundInt(s.WindSpeedMS),
		UVIndex:          s.UVIndex,
		Icon:             s.Icon,
		Recommendations:  Recommendations(s.TempC, 0, s.UVIndex, s.Conditions),
	}
}

// representativeSample picks the first sample whose local hour is 11, 12 or 13,
// falling back to the first sample of the bucket.
func representativeSample(samples []ForecastSample, loc *time.Location) ForecastSample {
	for _, s := range samples {
		if h := localHour(s.Time, loc); h >= 11 && h <= 13 {
			return s
		}
	}
	return samples[0]
}
