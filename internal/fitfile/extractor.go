package fitfile

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tormoder/fit"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/config"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/ingest"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
)

const metersPerMile = 1609.34

// Extractor parses Garmin .fit files into activity metrics.
type Extractor struct {
	athlete config.AthleteConfig
}

func New(athlete config.AthleteConfig) *Extractor {
	return &Extractor{athlete: athlete}
}

// Extract decodes a .fit file. ok is false for valid FIT files that
// are not running activities (rides, hikes, monitoring files).
func (e *Extractor) Extract(path string) (*ingest.Extraction, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading file: %w", err)
	}

	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decoding fit file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		// A valid FIT file of another kind (monitoring, settings).
		return nil, false, nil
	}
	if len(activity.Sessions) == 0 {
		return nil, false, nil
	}
	session := activity.Sessions[0]
	if session.Sport != fit.SportRunning {
		return nil, false, nil
	}

	samples := buildSamples(activity.Records)
	metrics := e.buildMetrics(session, samples)

	return &ingest.Extraction{
		Filename: filepath.Base(path),
		Date:     session.StartTime,
		Metrics:  metrics,
	}, true, nil
}

func (e *Extractor) buildMetrics(session *fit.SessionMsg, samples []sample) store.Metrics {
	distM := session.GetTotalDistanceScaled()
	if math.IsNaN(distM) {
		distM = 0
	}
	timerSec := session.GetTotalTimerTimeScaled()
	if math.IsNaN(timerSec) {
		timerSec = 0
	}

	distMi := distM / metersPerMile
	movingMin := timerSec / 60
	pace := 0.0
	if distMi > 0 {
		pace = movingMin / distMi
	}

	avgHR := averageHR(samples)
	if avgHR == 0 && session.AvgHeartRate != invalidU8 {
		avgHR = float64(session.AvgHeartRate)
	}

	m := store.Metrics{
		DistanceMi:       distMi,
		PaceMinPerMi:     pace,
		MovingTimeMin:    movingMin,
		ElevationGainFt:  elevationGainFt(samples),
		EfficiencyFactor: efficiencyFactor(samples),
		DecouplingPct:    aerobicDecoupling(samples),
		AvgCadence:       averageCadence(samples),
		AvgHR:            avgHR,
		TrainingLoad:     trimp(movingMin, avgHR, e.athlete.RestingHR, e.athlete.MaxHR),
		HRRecovery:       hrRecovery(samples, e.athlete.MaxHR),
		Splits:           mileSplits(samples),
		ZoneSeconds:      zoneSeconds(samples, e.athlete.MaxHR),
	}

	if session.TotalAscent != invalidU16 && m.ElevationGainFt == 0 {
		m.ElevationGainFt = float64(session.TotalAscent) * 3.28084
	}
	if te := teValue(session.TotalTrainingEffect); te != nil {
		m.AerobicTE = te
	}
	if te := teValue(session.TotalAnaerobicTrainingEffect); te != nil {
		m.AnaerobicTE = te
	}
	if m.AvgCadence == 0 && session.AvgCadence != invalidU8 {
		// Session cadence is single-leg rpm.
		m.AvgCadence = float64(session.AvgCadence) * 2
	}

	return m
}

const (
	invalidU8  = ^uint8(0)
	invalidU16 = ^uint16(0)
)

// teValue converts a raw training effect byte (scale 10) to a pointer,
// nil when the device did not record one.
func teValue(raw uint8) *float64 {
	if raw == invalidU8 || raw == 0 {
		return nil
	}
	v := float64(raw) / 10
	return &v
}

// buildSamples flattens record messages, dropping invalid sentinel
// values and doubling single-leg running cadence to steps per minute.
func buildSamples(records []*fit.RecordMsg) []sample {
	samples := make([]sample, 0, len(records))
	for _, r := range records {
		s := sample{t: r.Timestamp}
		if r.HeartRate != invalidU8 && r.HeartRate > 0 {
			s.hr = float64(r.HeartRate)
			s.hasHR = true
		}
		if r.Cadence != invalidU8 {
			s.cadence = float64(r.Cadence) * 2
			s.hasCadence = true
		}
		if v := r.GetSpeedScaled(); !math.IsNaN(v) {
			s.vel = v
			s.hasVel = true
		}
		if v := r.GetDistanceScaled(); !math.IsNaN(v) {
			s.dist = v
			s.hasDist = true
		}
		if v := r.GetAltitudeScaled(); !math.IsNaN(v) {
			s.alt = v
			s.hasAlt = true
		}
		samples = append(samples, s)
	}
	annotateGrades(samples)
	return samples
}
