package common

import "testing"

func TestRoundInt(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{2.5, 3},
		{2.49, 2},
		{-2.5, -2},
		{-2.51, -3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundInt(tt.in); got != tt.want {
			t.Errorf("RoundInt(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
}

func TestClampPct(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 55: 55, 100: 100, 140: 100} {
		if got := ClampPct(in); got != want {
			t.Errorf("ClampPct(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHasAny(t *testing.T) {
	if !HasAny("light rain", "snow", "rain") {
		t.Error("expected match for rain")
	}
	if HasAny("clear sky", "snow", "rain") {
		t.Error("expected no match")
	}
}
