package weather

import "sort"

// Window filters summaries to [start, end] (inclusive ISO dates), sorts them
// ascending by date and keeps at most limit entries. Filtering and sorting
// must both happen before truncation or the wrong days get dropped.
func Window(days []DailyWeatherSummary, start, end string, limit int) []DailyWeatherSummary {
	out := make([]DailyWeatherSummary, 0, len(days))
	for _, d := range days {
		if d.Date >= start && d.Date <= end {
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
