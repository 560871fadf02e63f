package analysis

import (
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name      string
		points    []EFPoint
		wantDir   TrendDirection
		wantSlope float64
		delta     float64
	}{
		{
			name:    "no points",
			points:  nil,
			wantDir: TrendInsufficientData,
		},
		{
			name:    "single activity",
			points:  []EFPoint{{Date: day(0), EF: 1.5}},
			wantDir: TrendInsufficientData,
		},
		{
			name: "two activities same date",
			points: []EFPoint{
				{Date: day(0), EF: 1.4},
				{Date: day(0), EF: 1.6},
			},
			wantDir: TrendInsufficientData,
		},
		{
			name: "two activities improving",
			points: []EFPoint{
				{Date: day(0), EF: 1.0},
				{Date: day(10), EF: 1.2},
			},
			wantDir:   TrendImproving,
			wantSlope: 0.02,
			delta:     1e-9,
		},
		{
			name: "declining",
			points: []EFPoint{
				{Date: day(0), EF: 1.6},
				{Date: day(5), EF: 1.5},
				{Date: day(10), EF: 1.4},
			},
			wantDir:   TrendDeclining,
			wantSlope: -0.02,
			delta:     1e-9,
		},
		{
			name: "flat within dead band",
			points: []EFPoint{
				{Date: day(0), EF: 1.5},
				{Date: day(30), EF: 1.5005},
			},
			wantDir: TrendStable,
		},
		{
			name: "unordered input",
			points: []EFPoint{
				{Date: day(20), EF: 1.3},
				{Date: day(0), EF: 1.0},
				{Date: day(10), EF: 1.1},
			},
			wantDir: TrendImproving,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrend(tt.points)
			if got.Direction != tt.wantDir {
				t.Fatalf("ComputeTrend() direction = %v, want %v", got.Direction, tt.wantDir)
			}
			if tt.delta > 0 && math.Abs(got.SlopePerDay-tt.wantSlope) > tt.delta {
				t.Errorf("ComputeTrend() slope = %v, want %v (±%v)", got.SlopePerDay, tt.wantSlope, tt.delta)
			}
		})
	}
}

// Three runs with EF 1.0, 1.1, 1.3 on consecutive days and decoupling
// 3, 7, 2: the trend and every quadrant should line up end to end.
func TestTrendAndQuadrantEndToEnd(t *testing.T) {
	points := []EFPoint{
		{Date: day(0), EF: 1.0},
		{Date: day(1), EF: 1.1},
		{Date: day(2), EF: 1.3},
	}

	trend := ComputeTrend(points)
	if trend.Direction != TrendImproving {
		t.Errorf("direction = %v, want %v", trend.Direction, TrendImproving)
	}
	if trend.SlopePerDay <= 0 {
		t.Errorf("slope = %v, want positive", trend.SlopePerDay)
	}

	mean, ok := MeanEfficiency([]float64{1.0, 1.1, 1.3})
	if !ok {
		t.Fatal("MeanEfficiency() ok = false, want true")
	}
	if math.Abs(mean-1.1333) > 0.001 {
		t.Fatalf("mean = %v, want ≈1.133", mean)
	}

	// Activity 2: below mean, drifted.
	if q := ClassifyQuadrant(1.1, 7, mean); q != "STRUGGLING" {
		t.Errorf("activity 2 quadrant = %v, want STRUGGLING", q)
	}
}
