package weather

import (
	"reflect"
	"testing"
)

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name       string
		temp       float64
		precip     int
		uv         float64
		conditions string
		want       []string
	}{
		{
			name: "heat and heavy rain fill the cap", temp: 32, precip: 80, uv: 9, conditions: "clear",
			want: []string{
				"Stay hydrated and wear light clothing",
				"Plan indoor activities during peak heat",
				"High chance of rain - pack an umbrella",
			},
		},
		{
			name: "warm with moderate rain and high uv", temp: 26, precip: 55, uv: 6.5, conditions: "Clouds",
			want: []string{
				"Perfect weather for outdoor activities",
				"Possible showers - keep a rain jacket handy",
				"High UV - wear sunscreen and a hat",
			},
		},
		{
			name: "mild dry day falls through to condition advice", temp: 18, precip: 40, uv: 2, conditions: "Rain",
			want: []string{
				"Comfortable temperature for sightseeing",
				"Rainy day - waterproof footwear recommended",
			},
		},
		{
			name: "cool with moderate uv and unknown condition", temp: 5, precip: 0, uv: 3, conditions: "Mist",
			want: []string{
				"Cool weather - bring a jacket",
				"Moderate UV - sunscreen recommended",
			},
		},
		{
			name: "cold snow", temp: -3, precip: 71, uv: 0, conditions: "snow",
			want: []string{
				"Cold weather - dress warmly in layers",
				"High chance of rain - pack an umbrella",
				"Consider indoor alternatives like museums or galleries",
			},
		},
		{
			name: "band edges", temp: 30, precip: 70, uv: 8, conditions: "thunderstorm",
			want: []string{
				"Stay hydrated and wear light clothing",
				"Plan indoor activities during peak heat",
				"Possible showers - keep a rain jacket handy",
			},
		},
		{
			name: "just below the warm band", temp: 24.9, precip: 0, uv: 0, conditions: "Thunderstorm",
			want: []string{
				"Comfortable temperature for sightseeing",
				"Thunderstorms expected - avoid exposed outdoor areas",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(tt.temp, tt.precip, tt.uv, tt.conditions)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recommendations() = %q, want %q", got, tt.want)
			}
			if len(got) > MaxRecommendations {
				t.Errorf("got %d recommendations, cap is %d", len(got), MaxRecommendations)
			}
		})
	}
}
