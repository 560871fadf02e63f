package analysis

import (
	"fmt"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"
)

// ZoneDistribution is accumulated time in heart rate zones 1-5 over a
// window, in seconds. Index 0 is zone 1.
type ZoneDistribution [5]float64

// Total returns the summed time across all zones.
func (z ZoneDistribution) Total() float64 {
	var t float64
	for _, v := range z {
		t += v
	}
	return t
}

// LoadMixCutoffs are the zone-dominance thresholds for the load mix
// verdict, expressed as shares of total window time. Checked in
// priority order: VO2 ceiling, tempo heavy, tempo/threshold, grey zone;
// a week that trips none of them is a Zone 2 base week.
type LoadMixCutoffs struct {
	VO2Ceiling     float64 // zone 5 share
	TempoHeavy     float64 // zone 4 share, heavy
	TempoThreshold float64 // zone 4 share, present
	GreyZone       float64 // zone 3 share
}

// DefaultLoadMixCutoffs returns the documented default dominance
// thresholds.
func DefaultLoadMixCutoffs() LoadMixCutoffs {
	return LoadMixCutoffs{
		VO2Ceiling:     0.12,
		TempoHeavy:     0.35,
		TempoThreshold: 0.15,
		GreyZone:       0.25,
	}
}

// LoadMix classifies a window's time-in-zone distribution into one of
// the five load mix verdicts.
func (c *Classifier) LoadMix(dist ZoneDistribution) (verdict.LoadMix, error) {
	for i, v := range dist {
		if v < 0 {
			return "", fmt.Errorf("%w: zone %d time %v", ErrInvalidMetric, i+1, v)
		}
	}
	total := dist.Total()
	if total <= 0 {
		return "", fmt.Errorf("%w: empty zone distribution", ErrInvalidMetric)
	}

	z3 := dist[2] / total
	z4 := dist[3] / total
	z5 := dist[4] / total

	switch {
	case z5 >= c.mix.VO2Ceiling:
		return verdict.MixThresholdAddict, nil
	case z4 >= c.mix.TempoHeavy:
		return verdict.MixTempoHeavy, nil
	case z4 >= c.mix.TempoThreshold:
		return verdict.MixTempoThreshold, nil
	case z3 >= c.mix.GreyZone:
		return verdict.MixZone3Junk, nil
	default:
		return verdict.MixZone2Base, nil
	}
}
