package postgres

import "testing"

func TestOverallProgress(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"Half", 2, 4, 50},
		{"All", 4, 4, 100},
		{"None", 0, 4, 0},
		{"EmptyCourse", 0, 0, 0},
		{"NegativeTotal", 1, -1, 0},
		{"RoundsUp", 2, 3, 67},
		{"RoundsDown", 1, 3, 33},
		{"RoundsHalfUp", 1, 8, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OverallProgress(tc.completed, tc.total); got != tc.want {
				t.Errorf("OverallProgress(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestAverageProgress(t *testing.T) {
	cases := []struct {
		name string
		raw  float64
		want float64
	}{
		{"Whole", 50, 50},
		{"RoundsDown", 33.333, 33},
		{"RoundsUp", 66.667, 67},
		{"RoundsHalfUp", 12.5, 13},
		{"Zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AverageProgress(tc.raw); got != tc.want {
				t.Errorf("AverageProgress(%v) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
