package tui

import (
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/ingest"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/service"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/session"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/verdict"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenReport Screen = iota
	ScreenActivities
	ScreenImport
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	report       ReportModel
	activities   ActivitiesModel
	importScreen ImportModel
	help         HelpModel

	// Services
	queryService *service.Service
	state        *session.State

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(qs *service.Service, importer *ingest.Importer, state *session.State, taxonomy verdict.Taxonomy, defaultDir string) *App {
	return &App{
		screen:       ScreenReport,
		queryService: qs,
		state:        state,
		report:       NewReportModel(qs, state, taxonomy),
		activities:   NewActivitiesModel(qs, state, taxonomy),
		importScreen: NewImportModel(importer, state, defaultDir),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.report.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings (unless an import is running or the
		// import screen is capturing text)
		if !a.state.ImportInProgress() && !(a.screen == ScreenImport && a.importScreen.editing) {
			switch msg.String() {
			case "q", "ctrl+c":
				return a, tea.Quit
			case "1":
				a.screen = ScreenReport
				return a, a.report.Init()
			case "2":
				a.screen = ScreenActivities
				return a, a.activities.Init()
			case "3", "i":
				if a.screen != ScreenImport {
					a.screen = ScreenImport
					return a, a.importScreen.Init()
				}
			case "t":
				a.cycleWindow()
				switch a.screen {
				case ScreenReport:
					return a, a.report.Init()
				case ScreenActivities:
					return a, a.activities.Init()
				}
				return a, nil
			case "?":
				a.prevScreen = a.screen
				a.screen = ScreenHelp
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case ImportCompleteMsg:
		// Point the window at the fresh batch. The import screen
		// keeps showing its summary until the user navigates away.
		if msg.NewActivities > 0 {
			a.state.SetWindow(store.WindowLastImport)
		}
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenReport:
		var m tea.Model
		m, cmd = a.report.Update(msg)
		a.report = m.(ReportModel)
	case ScreenActivities:
		var m tea.Model
		m, cmd = a.activities.Update(msg)
		a.activities = m.(ActivitiesModel)
	case ScreenImport:
		var m tea.Model
		m, cmd = a.importScreen.Update(msg)
		a.importScreen = m.(ImportModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

func (a *App) cycleWindow() {
	current := a.state.Window()
	for i, w := range store.Windows {
		if w == current {
			a.state.SetWindow(store.Windows[(i+1)%len(store.Windows)])
			return
		}
	}
	a.state.SetWindow(store.Windows[0])
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenReport:
		content = a.report.View()
	case ScreenActivities:
		content = a.activities.View()
	case ScreenImport:
		content = a.importScreen.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Ultra State - Running Analytics")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Report", ScreenReport},
		{"2", "Activities", ScreenActivities},
		{"3", "Import", ScreenImport},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navActiveStyle.Render("[t] "+a.state.Window().String())
	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

// ImportCompleteMsg is sent when an import batch finishes
type ImportCompleteMsg struct {
	NewActivities int
}
