package analysis

import (
	"errors"
	"testing"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"
)

func TestLoadMix(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		dist ZoneDistribution
		want verdict.LoadMix
	}{
		{
			name: "all easy is zone 2 base",
			dist: ZoneDistribution{3600, 7200, 0, 0, 0},
			want: verdict.MixZone2Base,
		},
		{
			name: "balanced pyramid is zone 2 base",
			dist: ZoneDistribution{3600, 7200, 1200, 600, 300},
			want: verdict.MixZone2Base,
		},
		{
			name: "grey zone dominance",
			dist: ZoneDistribution{1800, 3600, 2400, 0, 0},
			want: verdict.MixZone3Junk,
		},
		{
			name: "tempo present",
			dist: ZoneDistribution{3600, 3600, 0, 1800, 0},
			want: verdict.MixTempoThreshold,
		},
		{
			name: "tempo heavy",
			dist: ZoneDistribution{1800, 1800, 0, 2400, 0},
			want: verdict.MixTempoHeavy,
		},
		{
			name: "vo2 ceiling beats tempo",
			dist: ZoneDistribution{1800, 1800, 0, 2400, 1200},
			want: verdict.MixThresholdAddict,
		},
		{
			name: "zone 5 addiction",
			dist: ZoneDistribution{3600, 3600, 0, 0, 1200},
			want: verdict.MixThresholdAddict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.LoadMix(tt.dist)
			if err != nil {
				t.Fatalf("LoadMix(%v) error: %v", tt.dist, err)
			}
			if got != tt.want {
				t.Errorf("LoadMix(%v) = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestLoadMixInvalidInput(t *testing.T) {
	c := newTestClassifier()

	if _, err := c.LoadMix(ZoneDistribution{}); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("LoadMix(empty) error = %v, want ErrInvalidMetric", err)
	}
	if _, err := c.LoadMix(ZoneDistribution{100, -1, 0, 0, 0}); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("LoadMix(negative zone) error = %v, want ErrInvalidMetric", err)
	}
}

func TestLoadMixCutoffsInjectable(t *testing.T) {
	cut := DefaultLoadMixCutoffs()
	cut.GreyZone = 0.10
	c := NewClassifier(DefaultThresholds(), cut)

	// 12% zone 3 trips the tightened grey-zone cutoff.
	got, err := c.LoadMix(ZoneDistribution{4400, 4400, 1200, 0, 0})
	if err != nil {
		t.Fatalf("LoadMix() error: %v", err)
	}
	if got != verdict.MixZone3Junk {
		t.Errorf("LoadMix with tightened grey zone = %v, want %v", got, verdict.MixZone3Junk)
	}
}
