package weather

import "strings"

var conditionAdvice = map[string]string{
	"clear":        "Clear skies - great for photography and scenic views",
	"clouds":       "Overcast skies - good for walking tours",
	"rain":         "Rainy day - waterproof footwear recommended",
	"snow":         "Snowy conditions - watch for icy roads and paths",
	"thunderstorm": "Thunderstorms expected - avoid exposed outdoor areas",
}

// Recommendations derives travel advice from a day's metrics. Advice is generated
// in fixed precedence (temperature, precipitation, UV, condition) and the list
// is cut to MaxRecommendations afterwards, so later categories may be dropped.
func Recommendations(tempC float64, precipitationPct int, uvIndex float64, conditions string) []string {
	recs := make([]string, 0, 6)

	switch {
	case tempC >= 30:
		recs = append(recs,
			"Stay hydrated and wear light clothing",
			"Plan indoor activities during peak heat",
		)
	case tempC >= 25:
		recs = append(recs, "Perfect weather for outdoor activities")
	case tempC >= 15:
		recs = append(recs, "Comfortable temperature for sightseeing")
	case tempC >= 5:
		recs = append(recs, "Cool weather - bring a jacket")
	default:
		recs = append(recs, "Cold weather - dress warmly in layers")
	}

	switch {
	case precipitationPct > 70:
		recs = append(recs,
			"High chance of rain - pack an umbrella",
			"Consider indoor alternatives like museums or galleries",
		)
	case precipitationPct > 40:
		recs = append(recs, "Possible showers - keep a rain jacket handy")
	}

	switch {
	case uvIndex >= 8:
		recs = append(recs, "Very high UV - use SPF 50+ and avoid midday sun")
	case uvIndex >= 6:
		recs = append(recs, "High UV - wear sunscreen and a hat")
	case uvIndex >= 3:
		recs = append(recs, "Moderate UV - sunscreen recommended")
	}

	if advice, ok := conditionAdvice[strings.ToLower(conditions)]; ok {
		recs = append(recs, advice)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
