package service

import (
	"fmt"
	"sort"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/analysis"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"
)

// ActivityReport is one activity with its classifications attached.
// Verdict fields are empty when the underlying metric was missing or
// out of range.
type ActivityReport struct {
	Activity store.Activity
	Form     verdict.Form
	Load     verdict.LoadCategory

	TrainingEffect    verdict.TrainingEffect
	HasTrainingEffect bool

	// SplitBuckets aligns index-for-index with Activity.Metrics.Splits.
	SplitBuckets []verdict.SplitBucket

	Quadrant verdict.Quadrant
}

// ReportData is everything a screen needs for one window.
type ReportData struct {
	Activities []ActivityReport
	RowErrors  []store.RowError

	MeanEF    float64
	HasMeanEF bool

	// EFSeries holds efficiency factors oldest first, for plotting.
	EFSeries []float64
	Trend    analysis.TrendResult

	LoadMix    verdict.LoadMix
	HasLoadMix bool

	TotalLoad float64
}

// Service answers window queries with classified, aggregated results.
type Service struct {
	db         *store.DB
	classifier *analysis.Classifier
	zone2Floor float64
}

func New(db *store.DB, classifier *analysis.Classifier, zone2Floor float64) *Service {
	return &Service{db: db, classifier: classifier, zone2Floor: zone2Floor}
}

// Report queries one window and classifies every activity in it.
// Aggregates (mean EF, trend, load mix) cover the same window.
func (s *Service) Report(window store.Window, sessionID int64) (*ReportData, error) {
	activities, rowErrs, err := s.db.Query(window, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", window, err)
	}

	data := &ReportData{RowErrors: rowErrs}

	var efs []float64
	var points []analysis.EFPoint
	var zones analysis.ZoneDistribution

	for _, a := range activities {
		report := ActivityReport{Activity: a}

		if form, err := s.classifier.Form(a.Metrics.AvgCadence); err == nil {
			report.Form = form
		}
		if load, err := s.classifier.Load(a.Metrics.TrainingLoad); err == nil {
			report.Load = load
			data.TotalLoad += a.Metrics.TrainingLoad
		}
		for _, sp := range a.Metrics.Splits {
			// Splits with unusable data stay unclassified rather than
			// being forced into a bucket.
			bucket, err := s.classifier.Split(sp.Cadence, sp.AvgHR, s.zone2Floor, sp.GradePct)
			if err != nil {
				bucket = ""
			}
			report.SplitBuckets = append(report.SplitBuckets, bucket)
		}
		if a.Metrics.AerobicTE != nil {
			anaerobic := 0.0
			if a.Metrics.AnaerobicTE != nil {
				anaerobic = *a.Metrics.AnaerobicTE
			}
			if te, ok, err := s.classifier.TrainingEffect(*a.Metrics.AerobicTE, anaerobic); err == nil && ok {
				report.TrainingEffect = te
				report.HasTrainingEffect = true
			}
		}

		if a.Metrics.EfficiencyFactor > 0 {
			efs = append(efs, a.Metrics.EfficiencyFactor)
			points = append(points, analysis.EFPoint{Date: a.Date, EF: a.Metrics.EfficiencyFactor})
		}
		for i, sec := range a.Metrics.ZoneSeconds {
			zones[i] += sec
		}

		data.Activities = append(data.Activities, report)
	}

	data.MeanEF, data.HasMeanEF = analysis.MeanEfficiency(efs)

	// Quadrants need the window mean, so classify in a second pass.
	if data.HasMeanEF {
		for i := range data.Activities {
			m := data.Activities[i].Activity.Metrics
			if m.EfficiencyFactor > 0 {
				data.Activities[i].Quadrant = analysis.ClassifyQuadrant(
					m.EfficiencyFactor, m.DecouplingPct, data.MeanEF)
			}
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	data.Trend = analysis.ComputeTrend(points)
	for _, p := range points {
		data.EFSeries = append(data.EFSeries, p.EF)
	}

	if mix, err := s.classifier.LoadMix(zones); err == nil {
		data.LoadMix = mix
		data.HasLoadMix = true
	}

	return data, nil
}

// Delete removes one activity. The next Report reflects it.
func (s *Service) Delete(hash string) error {
	return s.db.Delete(hash)
}

// Count returns the number of stored activities across all windows.
func (s *Service) Count() (int, error) {
	return s.db.Count()
}
