package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHotspotScore(t *testing.T) {
	tests := []struct {
		name    string
		churn   int
		commits int
		want    int
	}{
		{"perfect square", 100, 4, 200},
		{"single commit", 50, 1, 50},
		{"rounding up", 10, 2, 14}, // 10 * 1.4142... = 14.14 -> 14
		{"rounding half", 5, 9, 15},
		{"zero churn undefined", 0, 10, 0},
		{"zero commits undefined", 10, 0, 0},
		{"both zero undefined", 0, 0, 0},
		{"negative inputs undefined", -5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HotspotScore(tt.churn, tt.commits))
		})
	}
}

func TestCoverageRate(t *testing.T) {
	tests := []struct {
		name          string
		uncategorized int
		total         int
		want          float64
	}{
		{"partial coverage", 3, 10, 70.0},
		{"full coverage", 0, 10, 100.0},
		{"no coverage", 10, 10, 0.0},
		{"one decimal rounding", 1, 3, 66.7},
		{"degenerate zero total", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CoverageRate(tt.uncategorized, tt.total), 0.0001)
		})
	}
}

// BenchmarkHotspotScore benchmarks the hotspot score calculation.
func BenchmarkHotspotScore(b *testing.B) {
	for b.Loop() {
		HotspotScore(340, 12)
	}
}
