package store

import "time"

// Activity is a single imported run, keyed by the SHA-256 of its
// source file.
type Activity struct {
	Hash      string
	Filename  string
	Date      time.Time
	SessionID int64
	Metrics   Metrics
}

// Metrics holds the derived numbers for one activity. It is stored as
// a JSON document so new fields can be added without a schema change.
type Metrics struct {
	DistanceMi       float64    `json:"distance_mi"`
	PaceMinPerMi     float64    `json:"pace_min_mi"`
	MovingTimeMin    float64    `json:"moving_time_min"`
	ElevationGainFt  float64    `json:"elevation_ft"`
	EfficiencyFactor float64    `json:"efficiency_factor"`
	DecouplingPct    float64    `json:"decoupling_pct"`
	AvgCadence       float64    `json:"avg_cadence"`
	AvgHR            float64    `json:"avg_hr"`
	TrainingLoad     float64    `json:"training_load"`
	AerobicTE        *float64   `json:"aerobic_te,omitempty"`
	AnaerobicTE      *float64   `json:"anaerobic_te,omitempty"`
	HRRecovery       []int      `json:"hrr_list,omitempty"`
	Splits           []Split    `json:"splits,omitempty"`
	ZoneSeconds      [5]float64 `json:"zone_seconds"`
}

// Split is one mile of an activity.
type Split struct {
	Mile     int     `json:"mile"`
	PaceMin  float64 `json:"pace_min"`
	Cadence  float64 `json:"cadence"`
	AvgHR    float64 `json:"avg_hr"`
	GradePct float64 `json:"grade_pct"`
}

// RowError reports a stored row whose JSON payload could not be
// decoded. One bad row never aborts a query.
type RowError struct {
	Hash     string
	Filename string
	Err      error
}

// Window selects how far back a query reaches.
type Window int

const (
	WindowMonth Window = iota
	WindowQuarter
	WindowYear
	WindowAll
	WindowLastImport
)

// Windows lists every window in display order.
var Windows = []Window{WindowMonth, WindowQuarter, WindowYear, WindowAll, WindowLastImport}

func (w Window) String() string {
	switch w {
	case WindowMonth:
		return "Last 30 Days"
	case WindowQuarter:
		return "Last 90 Days"
	case WindowYear:
		return "This Year"
	case WindowAll:
		return "All Time"
	case WindowLastImport:
		return "Last Import"
	default:
		return "Unknown"
	}
}

// days returns the lookback span, or 0 when the window is not a plain
// day count.
func (w Window) days() int {
	switch w {
	case WindowMonth:
		return 30
	case WindowQuarter:
		return 90
	default:
		return 0
	}
}
