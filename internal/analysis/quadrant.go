package analysis

import "github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"

// DecouplingThreshold separates aerobically stable activities from
// drifted ones, in percent. Under 5% on a long run indicates a solid
// aerobic base.
const DecouplingThreshold = 5.0

// MeanEfficiency returns the arithmetic mean efficiency factor over a
// window. ok is false for an empty window; the zero mean must not be
// fed into quadrant classification.
func MeanEfficiency(efs []float64) (mean float64, ok bool) {
	if len(efs) == 0 {
		return 0, false
	}
	var sum float64
	for _, ef := range efs {
		sum += ef
	}
	return sum / float64(len(efs)), true
}

// ClassifyQuadrant places one activity's (efficiency, decoupling) pair
// relative to the population mean. Both boundaries are closed toward
// the good side: exactly at the mean with exactly 5% decoupling is
// RACE_READY.
func ClassifyQuadrant(ef, decouplingPct, meanEF float64) verdict.Quadrant {
	fast := ef >= meanEF
	stable := decouplingPct <= DecouplingThreshold
	switch {
	case fast && stable:
		return verdict.QuadrantRaceReady
	case fast && !stable:
		return verdict.QuadrantExpensiveSpeed
	case !fast && stable:
		return verdict.QuadrantBaseMaintenance
	default:
		return verdict.QuadrantStruggling
	}
}
