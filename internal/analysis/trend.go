package analysis

import (
	"math"
	"time"
)

// TrendDirection is the qualitative reading of an efficiency trend.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "IMPROVING"
	TrendDeclining        TrendDirection = "DECLINING"
	TrendStable           TrendDirection = "STABLE"
	TrendInsufficientData TrendDirection = "INSUFFICIENT_DATA"
)

// TrendResult is the fitted efficiency trend over a window.
// Derived on demand, never stored.
type TrendResult struct {
	SlopePerDay float64
	Direction   TrendDirection
}

// slopeEpsilon is the symmetric dead-band around zero slope. Anything
// flatter than this (in EF per day) reads as STABLE rather than noise
// being reported as a trend.
const slopeEpsilon = 1e-4

// EFPoint is one (date, efficiency factor) observation.
type EFPoint struct {
	Date time.Time
	EF   float64
}

// ComputeTrend fits a least-squares line of efficiency factor against
// days elapsed since the earliest observation. It needs at least two
// observations on distinct dates; anything less is INSUFFICIENT_DATA.
func ComputeTrend(points []EFPoint) TrendResult {
	if len(points) < 2 {
		return TrendResult{Direction: TrendInsufficientData}
	}

	earliest := points[0].Date
	for _, p := range points[1:] {
		if p.Date.Before(earliest) {
			earliest = p.Date
		}
	}

	// x in days since the earliest activity.
	xs := make([]float64, len(points))
	distinct := false
	for i, p := range points {
		xs[i] = p.Date.Sub(earliest).Hours() / 24
		if xs[i] != xs[0] {
			distinct = true
		}
	}
	if !distinct {
		return TrendResult{Direction: TrendInsufficientData}
	}

	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		sumX += xs[i]
		sumY += p.EF
		sumXY += xs[i] * p.EF
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return TrendResult{Direction: TrendInsufficientData}
	}
	slope := (n*sumXY - sumX*sumY) / denom

	dir := TrendStable
	if math.Abs(slope) >= slopeEpsilon {
		if slope > 0 {
			dir = TrendImproving
		} else {
			dir = TrendDeclining
		}
	}
	return TrendResult{SlopePerDay: slope, Direction: dir}
}
