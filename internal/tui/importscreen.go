package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/ingest"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/session"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportModel is the import screen model
type ImportModel struct {
	importer *ingest.Importer
	state    *session.State

	input   textinput.Model
	editing bool
	running bool
	done    bool
	result  *ingest.Result
	err     error
}

// NewImportModel creates a new import model
func NewImportModel(importer *ingest.Importer, state *session.State, defaultDir string) ImportModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/fit/files"
	ti.CharLimit = 256
	ti.Width = 60
	if defaultDir != "" {
		ti.SetValue(defaultDir)
	}

	return ImportModel{
		importer: importer,
		state:    state,
		input:    ti,
	}
}

// Init initializes the import screen
func (m ImportModel) Init() tea.Cmd {
	return nil
}

// ImportDoneMsg is sent when the import batch finishes
type ImportDoneMsg struct {
	Result *ingest.Result
	Err    error
}

// Update handles messages
func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ImportDoneMsg:
		m.running = false
		m.done = true
		m.result = msg.Result
		m.err = msg.Err

		sessionID := int64(0)
		if m.result != nil && m.result.New > 0 {
			sessionID = m.result.SessionID
		}
		m.state.FinishImport(sessionID)

		newCount := 0
		if m.result != nil {
			newCount = m.result.New
		}
		return m, func() tea.Msg { return ImportCompleteMsg{NewActivities: newCount} }

	case tea.KeyMsg:
		if m.running {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			dir := strings.TrimSpace(m.input.Value())
			if dir == "" {
				return m, nil
			}
			m.running = true
			m.done = false
			m.err = nil
			m.result = nil
			m.input.Blur()
			m.editing = false
			m.state.SetImportInProgress(true)
			return m, m.runImport(dir)
		case "e":
			if !m.input.Focused() {
				m.input.Focus()
				m.editing = true
				return m, textinput.Blink
			}
		case "esc":
			if m.input.Focused() {
				m.input.Blur()
				m.editing = false
				return m, nil
			}
		}

		if m.input.Focused() {
			m.editing = true
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ImportModel) runImport(dir string) tea.Cmd {
	importer := m.importer
	return func() tea.Msg {
		result, err := importer.ImportDir(context.Background(), dir, nil)
		return ImportDoneMsg{Result: result, Err: err}
	}
}

// View renders the import screen
func (m ImportModel) View() string {
	var sections []string

	title := cardTitleStyle.Render("Import .fit Files")
	sections = append(sections, title)

	sections = append(sections, "\n  Folder: "+m.input.View())

	if m.running {
		sections = append(sections, "\n  Importing... this may take a moment")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err)))
	}

	if m.done && m.err == nil {
		sections = append(sections, m.renderSummary())
	}

	sections = append(sections, statusStyle.Render("\n  enter: import folder  e: edit path  esc: stop editing"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ImportModel) renderSummary() string {
	r := m.result
	if r == nil {
		return ""
	}

	var lines []string
	lines = append(lines, "")

	switch {
	case r.Total == 0:
		lines = append(lines, statusStyle.Render("  No .fit files found in that folder"))
	case r.New == 0 && r.Duplicates > 0:
		lines = append(lines, statusStyle.Render(
			fmt.Sprintf("  All %d files were already imported", r.Duplicates)))
	default:
		lines = append(lines, successStyle.Render(fmt.Sprintf("  %d new activities imported", r.New)))
		if r.Duplicates > 0 {
			lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d duplicates skipped", r.Duplicates)))
		}
	}

	if r.Skipped > 0 {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("  %d non-running activities skipped", r.Skipped)))
	}
	if len(r.Errors) > 0 {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  %d files could not be read", len(r.Errors))))
		for i, e := range r.Errors {
			if i >= 3 {
				lines = append(lines, statusStyle.Render("  ..."))
				break
			}
			lines = append(lines, statusStyle.Render("    "+e.Error()))
		}
	}

	if r.New > 0 {
		lines = append(lines, "")
		lines = append(lines, statusStyle.Render("  Press '1' to see the report for this batch"))
	}

	return strings.Join(lines, "\n")
}
