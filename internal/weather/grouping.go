package weather

import (
	"sort"
	"time"
)

func zoneOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

func localDate(t time.Time, loc *time.Location) string {
	return t.In(zoneOrUTC(loc)).Format(DateLayout)
}

func localHour(t time.Time, loc *time.Location) int {
	return t.In(zoneOrUTC(loc)).Hour()
}

// GroupByDate buckets forecast samples by calendar date in loc, keeping input
// order inside each bucket. Samples falling on today are left out: the live
// reading covers today and must not be replaced by forecast averages.
func GroupByDate(samples []ForecastSample, today string, loc *time.Location) map[string][]ForecastSample {
	buckets := make(map[string][]ForecastSample)
	for _, s := range samples {
		date := localDate(s.Time, loc)
		if date == today {
			continue
		}
		buckets[date] = append(buckets[date], s)
	}
	return buckets
}

// SummarizeBuckets runs SummarizeDay over every bucket, ordered by date.
func SummarizeBuckets(buckets map[string][]ForecastSample, loc *time.Location) []DailyWeatherSummary {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]DailyWeatherSummary, 0, len(keys))
	for _, k := range keys {
		days = append(days, SummarizeDay(k, buckets[k], loc))
	}
	return days
}
