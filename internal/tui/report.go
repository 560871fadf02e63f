package tui

import (
	"fmt"
	"strings"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/analysis"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/service"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/session"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// ReportModel is the verdict report screen model
type ReportModel struct {
	queryService *service.Service
	state        *session.State
	taxonomy     verdict.Taxonomy

	data    *service.ReportData
	loading bool
	err     error
}

// NewReportModel creates a new report model
func NewReportModel(qs *service.Service, state *session.State, taxonomy verdict.Taxonomy) ReportModel {
	return ReportModel{
		queryService: qs,
		state:        state,
		taxonomy:     taxonomy,
		loading:      true,
	}
}

// Init initializes the report screen
func (m ReportModel) Init() tea.Cmd {
	return m.loadData
}

func (m ReportModel) loadData() tea.Msg {
	data, err := m.queryService.Report(m.state.Window(), m.state.SessionID())
	if err != nil {
		return reportDataMsg{err: err}
	}
	return reportDataMsg{data: data}
}

type reportDataMsg struct {
	data *service.ReportData
	err  error
}

// Update handles messages
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reportDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the report
func (m ReportModel) View() string {
	if m.loading {
		return "\n  Loading report..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil || len(m.data.Activities) == 0 {
		return "\n  No activities in this window. Press '3' to import .fit files, 't' to change timeframe."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFitnessCard(), "  ", m.renderLoadMixCard())
	sections = append(sections, topRow)

	if len(m.data.EFSeries) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, m.renderQuadrantCard())

	if len(m.data.RowErrors) > 0 {
		sections = append(sections, warningStyle.Render(
			fmt.Sprintf("  %d stored activities could not be read", len(m.data.RowErrors))))
	}

	sections = append(sections, statusStyle.Render("Press 'r' to refresh, 't' to change timeframe, '2' for activities"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReportModel) renderFitnessCard() string {
	title := cardTitleStyle.Render("Aerobic Fitness - " + m.state.Window().String())

	meanEF := "-"
	if m.data.HasMeanEF {
		meanEF = fmt.Sprintf("%.2f", m.data.MeanEF)
	}

	lines := []string{
		RenderMetric("Mean EF", meanEF, ""),
		RenderMetric("EF Trend", m.trendLabel(), m.trendArrow()),
		RenderMetric("Runs", fmt.Sprintf("%d", len(m.data.Activities)), ""),
		RenderMetric("Total Load", fmt.Sprintf("%.0f", m.data.TotalLoad), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ReportModel) trendLabel() string {
	switch m.data.Trend.Direction {
	case analysis.TrendImproving:
		return "Improving"
	case analysis.TrendDeclining:
		return "Declining"
	case analysis.TrendStable:
		return "Stable"
	default:
		return "Not enough data"
	}
}

func (m ReportModel) trendArrow() string {
	switch m.data.Trend.Direction {
	case analysis.TrendImproving:
		return fmt.Sprintf("↑ %+.4f/day", m.data.Trend.SlopePerDay)
	case analysis.TrendDeclining:
		return fmt.Sprintf("↓ %+.4f/day", m.data.Trend.SlopePerDay)
	default:
		return ""
	}
}

func (m ReportModel) renderLoadMixCard() string {
	title := cardTitleStyle.Render("Intensity Mix")

	if !m.data.HasLoadMix {
		return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, "No heart rate zone data"))
	}

	info := m.taxonomy.LoadMix[m.data.LoadMix]
	lines := []string{
		RenderVerdict(info),
		"",
		helpDescStyle.Render(wrap(info.Prescription, 38)),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m ReportModel) renderChart() string {
	title := cardTitleStyle.Render("Efficiency Factor History")

	graph := asciigraph.Plot(m.data.EFSeries,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(2),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m ReportModel) renderQuadrantCard() string {
	title := cardTitleStyle.Render("Performance Quadrants")

	counts := make(map[verdict.Quadrant]int)
	for _, r := range m.data.Activities {
		if r.Quadrant != "" {
			counts[r.Quadrant]++
		}
	}
	if len(counts) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No efficiency data"))
	}

	order := []verdict.Quadrant{
		verdict.QuadrantRaceReady,
		verdict.QuadrantExpensiveSpeed,
		verdict.QuadrantBaseMaintenance,
		verdict.QuadrantStruggling,
	}

	var lines []string
	for _, q := range order {
		if counts[q] == 0 {
			continue
		}
		info := m.taxonomy.Quadrant[q]
		lines = append(lines, fmt.Sprintf("%s  %d runs", RenderVerdict(info), counts[q]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// wrap breaks text into lines no wider than width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
