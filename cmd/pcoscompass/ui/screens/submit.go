package screens

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
	"github.com/pcoscompass/pcoscompass/internal/render"
)

// SubmittedMsg is sent when a submission completes with a report.
type SubmittedMsg struct {
	Report *diagnosis.Report
	Notes  []diagnosis.Notification
}

// SubmitErrorMsg is sent when a submission fails.
type SubmitErrorMsg struct {
	Err   error
	Notes []diagnosis.Notification
}

// RenderedMsg carries a parsed narrative. Seq identifies the submission it
// belongs to so stale renders can be discarded.
type RenderedMsg struct {
	Seq int
	Doc *render.Document
}

var (
	submitLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	submitElapsedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	submitHintStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

// SubmitScreen shows a spinner while the analysis request is in flight.
type SubmitScreen struct {
	spinner   spinner.Model
	patient   string
	startTime time.Time
	cancelled bool
	width     int
	height    int
}

// NewSubmitScreen creates a new submission progress screen.
func NewSubmitScreen(patient string) *SubmitScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return &SubmitScreen{
		spinner:   sp,
		patient:   patient,
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *SubmitScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *SubmitScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

// View implements tea.Model
func (s *SubmitScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("ANALYZING")

	label := submitLabelStyle.Render("Submitting intake for " + s.patient + "...")
	elapsed := submitElapsedStyle.Render(
		"Elapsed: " + time.Since(s.startTime).Truncate(100*time.Millisecond).String())
	hint := submitHintStyle.Render("Press Ctrl+C to cancel")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.spinner.View()+" "+label,
		"",
		elapsed,
		"",
		hint,
	)
}

// Cancelled returns true if the user cancelled
func (s *SubmitScreen) Cancelled() bool { return s.cancelled }
