package fitfile

import (
	"math"
	"testing"
	"time"
)

// flatRun builds one sample per second at constant speed, HR and
// cadence over flat ground.
func flatRun(seconds int, vel, hr, cadence float64) []sample {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	samples := make([]sample, seconds)
	for i := range samples {
		samples[i] = sample{
			t:          start.Add(time.Duration(i) * time.Second),
			hr:         hr,
			cadence:    cadence,
			vel:        vel,
			dist:       vel * float64(i),
			alt:        100,
			hasHR:      true,
			hasCadence: true,
			hasVel:     true,
			hasDist:    true,
			hasAlt:     true,
		}
	}
	return samples
}

func TestEfficiencyFactorFlat(t *testing.T) {
	// 3 m/s at 150 bpm: EF = 180 m/min / 150 = 1.2
	samples := flatRun(600, 3.0, 150, 170)

	got := efficiencyFactor(samples)
	if math.Abs(got-1.2) > 1e-9 {
		t.Errorf("efficiencyFactor() = %v, want 1.2", got)
	}
}

func TestEfficiencyFactorIgnoresStoppedSamples(t *testing.T) {
	samples := flatRun(600, 3.0, 150, 170)
	// Standing at a crossing should not drag the average down.
	for i := 100; i < 160; i++ {
		samples[i].vel = 0
	}

	got := efficiencyFactor(samples)
	if math.Abs(got-1.2) > 1e-9 {
		t.Errorf("efficiencyFactor() = %v, want 1.2", got)
	}
}

func TestEfficiencyFactorNoHR(t *testing.T) {
	samples := flatRun(600, 3.0, 150, 170)
	for i := range samples {
		samples[i].hasHR = false
	}
	if got := efficiencyFactor(samples); got != 0 {
		t.Errorf("efficiencyFactor() without HR = %v, want 0", got)
	}
}

func TestAerobicDecoupling(t *testing.T) {
	// Same pace, HR rises 150 -> 165 at halfway:
	// firstEF = 3/150, secondEF = 3/165, (first/second - 1)*100 = 10%.
	samples := flatRun(1200, 3.0, 150, 170)
	for i := 600; i < 1200; i++ {
		samples[i].hr = 165
	}

	got := aerobicDecoupling(samples)
	if math.Abs(got-10.0) > 1e-9 {
		t.Errorf("aerobicDecoupling() = %v, want 10", got)
	}
}

func TestAerobicDecouplingShortRun(t *testing.T) {
	if got := aerobicDecoupling(flatRun(60, 3.0, 150, 170)); got != 0 {
		t.Errorf("aerobicDecoupling() on short run = %v, want 0", got)
	}
}

func TestTRIMP(t *testing.T) {
	// 60 min at exactly halfway up the HR reserve:
	// ratio 0.5, TRIMP = 60 * 0.5 * e^0.96
	resting, max := 50.0, 185.0
	avgHR := resting + 0.5*(max-resting)

	got := trimp(60, avgHR, resting, max)
	want := 60 * 0.5 * math.Exp(1.92*0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("trimp() = %v, want %v", got, want)
	}

	if got := trimp(60, 0, resting, max); got != 0 {
		t.Errorf("trimp() with no HR = %v, want 0", got)
	}
	if got := trimp(60, 150, 185, 185); got != 0 {
		t.Errorf("trimp() with zero HR reserve = %v, want 0", got)
	}
}

func TestTRIMPClampsRatio(t *testing.T) {
	// HR above max clamps the reserve ratio at 1.
	got := trimp(30, 250, 50, 185)
	want := 30 * 1.0 * math.Exp(1.92)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("trimp() = %v, want %v", got, want)
	}
}

func TestZoneSeconds(t *testing.T) {
	maxHR := 200.0
	samples := flatRun(300, 3.0, 110, 170) // 55% of max: zone 1
	for i := 100; i < 200; i++ {
		samples[i].hr = 150 // 75%: zone 3
	}
	for i := 200; i < 300; i++ {
		samples[i].hr = 190 // 95%: zone 5
	}

	zones := zoneSeconds(samples, maxHR)
	// First sample has no predecessor, so zone 1 gets 99 seconds.
	if zones[0] != 99 {
		t.Errorf("zone 1 = %v, want 99", zones[0])
	}
	if zones[2] != 100 {
		t.Errorf("zone 3 = %v, want 100", zones[2])
	}
	if zones[4] != 100 {
		t.Errorf("zone 5 = %v, want 100", zones[4])
	}
	if zones[1] != 0 || zones[3] != 0 {
		t.Errorf("zones 2/4 = %v/%v, want 0/0", zones[1], zones[3])
	}
}

func TestZoneSecondsSkipsGaps(t *testing.T) {
	samples := flatRun(100, 3.0, 150, 170)
	// A five-minute pause mid-run must not count as zone time.
	for i := 50; i < 100; i++ {
		samples[i].t = samples[i].t.Add(5 * time.Minute)
	}

	zones := zoneSeconds(samples, 200)
	var total float64
	for _, z := range zones {
		total += z
	}
	if total != 98 {
		t.Errorf("total zone seconds = %v, want 98", total)
	}
}

func TestMileSplits(t *testing.T) {
	// 3 m/s for 1200 s covers 3600 m, just over two miles.
	samples := flatRun(1200, 3.0, 150, 170)

	splits := mileSplits(samples)
	if len(splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(splits))
	}
	for i, sp := range splits {
		if sp.Mile != i+1 {
			t.Errorf("split %d Mile = %d, want %d", i, sp.Mile, i+1)
		}
		// 1609.34 m at 3 m/s is about 8.94 min/mi.
		if math.Abs(sp.PaceMin-(metersPerMile/3.0/60)) > 0.05 {
			t.Errorf("split %d PaceMin = %v", i, sp.PaceMin)
		}
		if math.Abs(sp.AvgHR-150) > 1e-9 {
			t.Errorf("split %d AvgHR = %v, want 150", i, sp.AvgHR)
		}
		if math.Abs(sp.Cadence-170) > 1e-9 {
			t.Errorf("split %d Cadence = %v, want 170", i, sp.Cadence)
		}
		if sp.GradePct != 0 {
			t.Errorf("split %d GradePct = %v, want 0", i, sp.GradePct)
		}
	}
}

func TestAnnotateGrades(t *testing.T) {
	// Climb 10 m over 200 m of travel: 5% grade.
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	samples := make([]sample, 21)
	for i := range samples {
		samples[i] = sample{
			t:       start.Add(time.Duration(i) * 5 * time.Second),
			dist:    float64(i) * 10,
			alt:     100 + float64(i)*0.5,
			hasDist: true,
			hasAlt:  true,
		}
	}
	annotateGrades(samples)

	last := samples[len(samples)-1]
	if !last.hasGrade {
		t.Fatal("final sample has no grade")
	}
	if math.Abs(last.grade-5.0) > 1e-9 {
		t.Errorf("grade = %v, want 5", last.grade)
	}
}

func TestHRRecovery(t *testing.T) {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	var samples []sample
	// Hard effort at 170 for 30s, then a steady fall to 130.
	for i := 0; i < 30; i++ {
		samples = append(samples, sample{
			t: start.Add(time.Duration(i) * time.Second), hr: 170, hasHR: true,
		})
	}
	for i := 30; i < 150; i++ {
		hr := 170 - float64(i-30)/3
		if hr < 130 {
			hr = 130
		}
		samples = append(samples, sample{
			t: start.Add(time.Duration(i) * time.Second), hr: hr, hasHR: true,
		})
	}

	drops := hrRecovery(samples, 200)
	if len(drops) != 1 {
		t.Fatalf("got %d recovery drops, want 1", len(drops))
	}
	// Measured from the start of the plateau; 60 s later HR is 160.
	if drops[0] != 10 {
		t.Errorf("drop = %d, want 10", drops[0])
	}
}

func TestElevationGain(t *testing.T) {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	alts := []float64{100, 100.2, 99.9, 100.1, 102, 104, 103, 101, 105}
	samples := make([]sample, len(alts))
	for i, a := range alts {
		samples[i] = sample{
			t:      start.Add(time.Duration(i) * time.Second),
			alt:    a,
			hasAlt: true,
		}
	}

	got := elevationGainFt(samples)
	// Real climbs: 100->102->104 (4 m) and 101->105 (4 m); jitter under
	// a meter is ignored.
	want := 8.0 * 3.28084
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("elevationGainFt() = %v, want %v", got, want)
	}
}
