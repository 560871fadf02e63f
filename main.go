package main

import (
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/analysis"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/config"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/fitfile"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/ingest"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/service"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/session"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/tui"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your resting and max heart rate, then run again.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Create services
	cutoffs := analysis.LoadMixCutoffs{
		VO2Ceiling:     cfg.Analysis.VO2Ceiling,
		TempoHeavy:     cfg.Analysis.TempoHeavy,
		TempoThreshold: cfg.Analysis.TempoThreshold,
		GreyZone:       cfg.Analysis.GreyZone,
	}
	classifier := analysis.NewClassifier(analysis.DefaultThresholds(), cutoffs)
	extractor := fitfile.New(cfg.Athlete)
	importer := ingest.NewImporter(db, extractor)
	querySvc := service.New(db, classifier, cfg.Athlete.Zone2Floor)
	state := session.NewState()

	// Launch TUI
	app := tui.NewApp(querySvc, importer, state, verdict.Default(), cfg.Import.DefaultDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
