package fitfile

import (
	"math"
	"time"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
)

// sample is one record message with sentinel values stripped.
type sample struct {
	t       time.Time
	hr      float64
	cadence float64 // steps per minute
	vel     float64 // m/s
	dist    float64 // cumulative meters
	alt     float64 // meters
	grade   float64 // percent, set by annotateGrades

	hasHR      bool
	hasCadence bool
	hasVel     bool
	hasDist    bool
	hasAlt     bool
	hasGrade   bool
}

// annotateGrades derives a grade for each sample from altitude change
// over the preceding samples. Smoothed over at least 20m of travel so
// barometer jitter doesn't swing it.
func annotateGrades(samples []sample) {
	const minRun = 20.0
	last := -1 // index of the anchor sample
	for i := range samples {
		if !samples[i].hasDist || !samples[i].hasAlt {
			continue
		}
		if last < 0 {
			last = i
			continue
		}
		run := samples[i].dist - samples[last].dist
		if run < minRun {
			// Carry the previous grade until we have enough travel.
			if samples[last].hasGrade {
				samples[i].grade = samples[last].grade
				samples[i].hasGrade = true
			}
			continue
		}
		g := (samples[i].alt - samples[last].alt) / run * 100
		if g > 30 {
			g = 30
		}
		if g < -30 {
			g = -30
		}
		samples[i].grade = g
		samples[i].hasGrade = true
		last = i
	}
}

// efficiencyFactor calculates grade-normalized pace:HR efficiency.
// Returns (grade-adjusted speed in m/min) / (average HR).
// Higher is better. Typical values run 1.0 to 2.0.
func efficiencyFactor(samples []sample) float64 {
	var totalNGP, totalHR float64
	var count int

	for _, s := range samples {
		if !s.hasVel || !s.hasHR {
			continue
		}
		// Filter noise: must be actually moving with reasonable HR
		if s.vel < 0.5 || s.hr < 80 || s.hr > 220 {
			continue
		}

		grade := 0.0
		if s.hasGrade {
			grade = s.grade / 100
		}

		// Approximate: +10% grade adds ~30s/km equivalent effort
		gradeFactor := 1.0 + grade*3.0
		if gradeFactor < 0.5 {
			gradeFactor = 0.5
		}
		if gradeFactor > 3.0 {
			gradeFactor = 3.0
		}

		totalNGP += s.vel / gradeFactor
		totalHR += s.hr
		count++
	}

	if count == 0 {
		return 0
	}
	return (totalNGP / float64(count) * 60) / (totalHR / float64(count))
}

// aerobicDecoupling calculates the pace:HR drift between first and
// second half. Positive means the second half was less efficient;
// under 5% on long runs indicates a solid aerobic base.
func aerobicDecoupling(samples []sample) float64 {
	if len(samples) < 120 {
		return 0
	}

	mid := len(samples) / 2
	firstEF := rawEF(samples[:mid])
	secondEF := rawEF(samples[mid:])

	if firstEF == 0 || secondEF == 0 {
		return 0
	}
	return ((firstEF / secondEF) - 1) * 100
}

// rawEF is speed/HR without grade adjustment, for half comparisons.
func rawEF(samples []sample) float64 {
	var totalVel, totalHR float64
	var count int

	for _, s := range samples {
		if !s.hasVel || !s.hasHR {
			continue
		}
		if s.vel > 0.5 && s.hr > 80 && s.hr < 220 {
			totalVel += s.vel
			totalHR += s.hr
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (totalVel / float64(count)) / (totalHR / float64(count))
}

// trimp calculates Training Impulse (Banister model)
// TRIMP = duration (min) * ΔHR ratio * e^(b * ΔHR ratio)
// where b = 1.92 (male coefficient).
func trimp(durationMin, avgHR, restingHR, maxHR float64) float64 {
	if durationMin <= 0 || avgHR == 0 {
		return 0
	}

	hrReserve := maxHR - restingHR
	if hrReserve <= 0 {
		return 0
	}

	hrRatio := (avgHR - restingHR) / hrReserve
	if hrRatio < 0 {
		hrRatio = 0
	}
	if hrRatio > 1 {
		hrRatio = 1
	}

	const b = 1.92
	return durationMin * hrRatio * math.Exp(b*hrRatio)
}

// zoneSeconds buckets time in five HR zones by fraction of max HR:
// below 60% is zone 1, then 10% bands up to zone 5 at 90% and above.
func zoneSeconds(samples []sample, maxHR float64) [5]float64 {
	var zones [5]float64
	if maxHR <= 0 {
		return zones
	}

	for i := 1; i < len(samples); i++ {
		if !samples[i].hasHR {
			continue
		}
		dt := samples[i].t.Sub(samples[i-1].t).Seconds()
		// Gaps are pauses, not zone time.
		if dt <= 0 || dt > 10 {
			continue
		}

		frac := samples[i].hr / maxHR
		var z int
		switch {
		case frac < 0.60:
			z = 0
		case frac < 0.70:
			z = 1
		case frac < 0.80:
			z = 2
		case frac < 0.90:
			z = 3
		default:
			z = 4
		}
		zones[z] += dt
	}
	return zones
}

// mileSplits summarizes each completed mile: pace, cadence, HR, and
// net grade.
func mileSplits(samples []sample) []store.Split {
	var splits []store.Split
	var startIdx = -1

	for i := range samples {
		if !samples[i].hasDist {
			continue
		}
		if startIdx < 0 {
			startIdx = i
			continue
		}
		covered := samples[i].dist - samples[startIdx].dist
		if covered < metersPerMile {
			continue
		}

		splits = append(splits, summarizeSplit(samples[startIdx:i+1], len(splits)+1))
		startIdx = i
	}
	return splits
}

func summarizeSplit(span []sample, mile int) store.Split {
	sp := store.Split{Mile: mile}

	first, last := span[0], span[len(span)-1]
	elapsedMin := last.t.Sub(first.t).Minutes()
	distMi := (last.dist - first.dist) / metersPerMile
	if distMi > 0 {
		sp.PaceMin = elapsedMin / distMi
	}
	if first.hasAlt && last.hasAlt && last.dist > first.dist {
		sp.GradePct = (last.alt - first.alt) / (last.dist - first.dist) * 100
	}

	var hrTotal, cadTotal float64
	var hrCount, cadCount int
	for _, s := range span {
		if s.hasHR {
			hrTotal += s.hr
			hrCount++
		}
		if s.hasCadence && s.cadence > 0 {
			cadTotal += s.cadence
			cadCount++
		}
	}
	if hrCount > 0 {
		sp.AvgHR = hrTotal / float64(hrCount)
	}
	if cadCount > 0 {
		sp.Cadence = cadTotal / float64(cadCount)
	}
	return sp
}

// hrRecovery finds recovery drops: the BPM fall in the 60 seconds
// after a hard-effort peak. Each value is one measured drop.
func hrRecovery(samples []sample, maxHR float64) []int {
	if maxHR <= 0 {
		return nil
	}
	hardFloor := 0.80 * maxHR

	var drops []int
	var lastMeasured time.Time

	for i := range samples {
		if !samples[i].hasHR || samples[i].hr < hardFloor {
			continue
		}
		// One measurement per two-minute stretch.
		if !lastMeasured.IsZero() && samples[i].t.Sub(lastMeasured) < 2*time.Minute {
			continue
		}

		peak := samples[i].hr
		var after float64
		found := false
		for j := i + 1; j < len(samples); j++ {
			if !samples[j].hasHR {
				continue
			}
			if samples[j].hr > peak {
				// Still climbing, not a peak yet.
				break
			}
			if samples[j].t.Sub(samples[i].t) >= 60*time.Second {
				after = samples[j].hr
				found = true
				break
			}
		}
		if !found {
			continue
		}

		drop := int(peak - after)
		if drop >= 5 {
			drops = append(drops, drop)
			lastMeasured = samples[i].t
		}
	}
	return drops
}

func averageHR(samples []sample) float64 {
	var total float64
	var count int
	for _, s := range samples {
		if s.hasHR && s.hr > 0 {
			total += s.hr
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func averageCadence(samples []sample) float64 {
	var total float64
	var count int
	for _, s := range samples {
		if s.hasCadence && s.cadence > 0 {
			total += s.cadence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// elevationGainFt sums positive altitude change, ignoring sub-meter
// jitter.
func elevationGainFt(samples []sample) float64 {
	var gainM float64
	prev := -1
	for i := range samples {
		if !samples[i].hasAlt {
			continue
		}
		if prev >= 0 {
			if d := samples[i].alt - samples[prev].alt; d >= 1.0 {
				gainM += d
			} else if d > -1.0 && d < 1.0 {
				// Hold the anchor until the change is real.
				continue
			}
		}
		prev = i
	}
	return gainM * 3.28084
}
