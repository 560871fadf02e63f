package tui

import (
	"fmt"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/service"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/session"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivitiesModel is the activities list screen model
type ActivitiesModel struct {
	queryService *service.Service
	state        *session.State
	taxonomy     verdict.Taxonomy

	reports   []service.ActivityReport
	cursor    int
	confirm   bool // pending delete confirmation
	loading   bool
	err       error
	statusMsg string
}

// NewActivitiesModel creates a new activities model
func NewActivitiesModel(qs *service.Service, state *session.State, taxonomy verdict.Taxonomy) ActivitiesModel {
	return ActivitiesModel{
		queryService: qs,
		state:        state,
		taxonomy:     taxonomy,
		loading:      true,
	}
}

// Init initializes the activities screen
func (m ActivitiesModel) Init() tea.Cmd {
	return m.loadData
}

type activitiesLoadedMsg struct {
	reports []service.ActivityReport
	err     error
}

func (m ActivitiesModel) loadData() tea.Msg {
	data, err := m.queryService.Report(m.state.Window(), m.state.SessionID())
	if err != nil {
		return activitiesLoadedMsg{err: err}
	}
	return activitiesLoadedMsg{reports: data.Activities}
}

type activityDeletedMsg struct {
	filename string
	err      error
}

// Update handles messages
func (m ActivitiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activitiesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.reports = msg.reports
		if m.cursor >= len(m.reports) && m.cursor > 0 {
			m.cursor = len(m.reports) - 1
		}

	case activityDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted %s", msg.filename)
		m.loading = true
		return m, m.loadData

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.confirm {
			switch msg.String() {
			case "y":
				m.confirm = false
				return m, m.deleteSelected
			default:
				m.confirm = false
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.reports)-1 {
				m.cursor++
			}
		case "d":
			if len(m.reports) > 0 {
				m.confirm = true
			}
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

func (m ActivitiesModel) deleteSelected() tea.Msg {
	if m.cursor >= len(m.reports) {
		return activityDeletedMsg{}
	}
	a := m.reports[m.cursor].Activity
	if err := m.queryService.Delete(a.Hash); err != nil {
		return activityDeletedMsg{err: err}
	}
	return activityDeletedMsg{filename: a.Filename}
}

// View renders the activities list
func (m ActivitiesModel) View() string {
	if m.loading {
		return "\n  Loading activities..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if len(m.reports) == 0 {
		return "\n  No activities in this window. Press '3' to import .fit files."
	}

	var sections []string

	title := cardTitleStyle.Render(fmt.Sprintf("Activities - %s (%d)", m.state.Window(), len(m.reports)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-22s  %6s  %6s  %6s  %8s  %-14s",
		"Date", "File", "Miles", "EF", "Decpl", "Cadence", "Form"))
	sections = append(sections, header)

	for i, r := range m.reports {
		a := r.Activity
		met := a.Metrics

		ef := "-"
		if met.EfficiencyFactor > 0 {
			ef = fmt.Sprintf("%.2f", met.EfficiencyFactor)
		}

		dec := "-"
		if met.EfficiencyFactor > 0 {
			dec = fmt.Sprintf("%.1f%%", met.DecouplingPct)
		}

		cadence := "-"
		if met.AvgCadence > 0 {
			cadence = fmt.Sprintf("%.0f", met.AvgCadence)
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		left := fmt.Sprintf("%s%-10s  %-22s  %6.1f  %6s  ",
			cursor,
			a.Date.Format("Jan 02"),
			truncateName(a.Filename, 22),
			met.DistanceMi,
			ef,
		)
		right := fmt.Sprintf("  %8s  ", cadence)

		if i == m.cursor {
			row := left + fmt.Sprintf("%6s", dec) + right + m.formLabel(r)
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			row := tableRowStyle.Render(left) +
				RenderDecoupling(met.DecouplingPct, fmt.Sprintf("%6s", dec)) +
				right + m.renderForm(r)
			sections = append(sections, row)
		}
	}

	if m.confirm {
		sections = append(sections, warningStyle.Render("\n  Delete selected activity? (y/n)"))
	} else if m.statusMsg != "" {
		sections = append(sections, successStyle.Render("\n  "+m.statusMsg))
	}

	help := statusStyle.Render("\n  j/k: navigate  d: delete  r: refresh  t: timeframe")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ActivitiesModel) renderForm(r service.ActivityReport) string {
	if r.Form == "" {
		return "-"
	}
	return RenderVerdict(m.taxonomy.Form[r.Form])
}

func (m ActivitiesModel) formLabel(r service.ActivityReport) string {
	if r.Form == "" {
		return "-"
	}
	return m.taxonomy.Form[r.Form].Label
}

func truncateName(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
