package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"
)

// ErrInvalidMetric is returned when a classifier receives input outside
// its documented domain. Mis-classification is a coaching-safety issue,
// so out-of-range values are rejected instead of clamped.
var ErrInvalidMetric = errors.New("invalid metric input")

// Thresholds holds every tunable cutoff used by the Classifier.
// The defaults are the canonical values; tests inject alternates.
type Thresholds struct {
	// Form verdict cadence bands (spm). Evaluation order matters:
	// the two >= checks run before the two < checks.
	EliteCadence  float64
	GoodCadence   float64
	HikingCadence float64
	HeavyCadence  float64

	// Split quality.
	SplitQualityCadence float64 // HIGH_QUALITY needs cadence at or above this
	SplitLowCadence     float64 // STRUCTURAL below this
	SplitMaxGrade       float64 // percent; steeper is STRUCTURAL

	// Training effect (Garmin 0.0-5.0 scores).
	MaxPowerAnaerobicTE float64
	AnaerobicTE         float64
	// AnaerobicSlack is how far anaerobic TE may trail aerobic TE and
	// still count as anaerobic-dominant.
	AnaerobicSlack float64
	VO2MaxTE       float64
	ThresholdTE    float64

	// Load categories (TRIMP). Bands are closed on the lower side.
	BaseLoad         float64
	OverloadLoad     float64
	OverreachingLoad float64
}

// DefaultThresholds returns the canonical classification cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EliteCadence:  170,
		GoodCadence:   160,
		HikingCadence: 135,
		HeavyCadence:  155,

		SplitQualityCadence: 160,
		SplitLowCadence:     140,
		SplitMaxGrade:       8,

		MaxPowerAnaerobicTE: 3.5,
		AnaerobicTE:         2.5,
		AnaerobicSlack:      0.5,
		VO2MaxTE:            4.2,
		ThresholdTE:         3.5,

		BaseLoad:         75,
		OverloadLoad:     150,
		OverreachingLoad: 300,
	}
}

// Classifier maps numeric metrics to taxonomy keys. It is stateless and
// safe for concurrent use; all methods are pure functions of their
// inputs and the injected thresholds.
type Classifier struct {
	t   Thresholds
	mix LoadMixCutoffs
}

// NewClassifier creates a Classifier with the given cutoffs.
func NewClassifier(t Thresholds, mix LoadMixCutoffs) *Classifier {
	return &Classifier{t: t, mix: mix}
}

// Form classifies average cadence (spm) into a running form verdict.
// The check order is load-bearing: a cadence of 134 must land in
// HIKING_REST before the 155 boundary is ever considered.
func (c *Classifier) Form(cadenceSPM float64) (verdict.Form, error) {
	if cadenceSPM < 0 || math.IsNaN(cadenceSPM) || math.IsInf(cadenceSPM, 0) {
		return "", fmt.Errorf("%w: cadence %v spm", ErrInvalidMetric, cadenceSPM)
	}
	switch {
	case cadenceSPM >= c.t.EliteCadence:
		return verdict.FormElite, nil
	case cadenceSPM >= c.t.GoodCadence:
		return verdict.FormGood, nil
	case cadenceSPM < c.t.HikingCadence:
		return verdict.FormHiking, nil
	case cadenceSPM < c.t.HeavyCadence:
		return verdict.FormHeavy, nil
	default:
		return verdict.FormPlodding, nil
	}
}

// Split classifies one recorded split.
//
// HIGH_QUALITY needs good cadence, above-Zone-2 heart rate, and
// flat-to-rolling grade all at once. STRUCTURAL catches steep terrain,
// very low cadence, and sub-Zone-2 efforts. Everything else is BROKEN:
// cadence 140-159 at aerobic heart rate on low grade deliberately falls
// through to BROKEN, so that gap must not be "fixed" here.
func (c *Classifier) Split(cadenceSPM, heartRate, zone2Floor, gradePct float64) (verdict.SplitBucket, error) {
	if cadenceSPM < 0 || heartRate < 0 || zone2Floor <= 0 {
		return "", fmt.Errorf("%w: split cadence=%v hr=%v zone2Floor=%v", ErrInvalidMetric, cadenceSPM, heartRate, zone2Floor)
	}
	if cadenceSPM >= c.t.SplitQualityCadence && heartRate > zone2Floor && gradePct <= c.t.SplitMaxGrade {
		return verdict.SplitHighQuality, nil
	}
	if gradePct > c.t.SplitMaxGrade || cadenceSPM < c.t.SplitLowCadence || heartRate < zone2Floor {
		return verdict.SplitStructural, nil
	}
	return verdict.SplitBroken, nil
}

// TrainingEffect applies the selective adaptation filter to a pair of
// Garmin training effect scores. Anaerobic dominance is tested before
// any aerobic band. ok is false for base and recovery sessions, which
// intentionally carry no label.
func (c *Classifier) TrainingEffect(aerobicTE, anaerobicTE float64) (verdict.TrainingEffect, bool, error) {
	if aerobicTE < 0 || aerobicTE > 5 || anaerobicTE < 0 || anaerobicTE > 5 {
		return "", false, fmt.Errorf("%w: training effect aerobic=%v anaerobic=%v", ErrInvalidMetric, aerobicTE, anaerobicTE)
	}
	switch {
	case anaerobicTE >= c.t.MaxPowerAnaerobicTE:
		return verdict.TEMaxPower, true, nil
	case anaerobicTE >= c.t.AnaerobicTE && anaerobicTE >= aerobicTE-c.t.AnaerobicSlack:
		return verdict.TEAnaerobic, true, nil
	case aerobicTE >= c.t.VO2MaxTE:
		return verdict.TEVO2Max, true, nil
	case aerobicTE >= c.t.ThresholdTE:
		return verdict.TEThreshold, true, nil
	default:
		return "", false, nil
	}
}

// Load classifies a TRIMP score into a load category. Bands are closed
// on the lower side: exactly 75 is BASE, exactly 300 is OVERREACHING.
func (c *Classifier) Load(trimp float64) (verdict.LoadCategory, error) {
	if trimp < 0 || math.IsNaN(trimp) || math.IsInf(trimp, 0) {
		return "", fmt.Errorf("%w: training load %v", ErrInvalidMetric, trimp)
	}
	switch {
	case trimp < c.t.BaseLoad:
		return verdict.LoadRecovery, nil
	case trimp < c.t.OverloadLoad:
		return verdict.LoadBase, nil
	case trimp < c.t.OverreachingLoad:
		return verdict.LoadOverload, nil
	default:
		return verdict.LoadOverreaching, nil
	}
}
