package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
	"github.com/pcoscompass/pcoscompass/internal/render"
)

var (
	reportMetaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	degradedBadgeStyle = lipgloss.NewStyle().
		Background(lipgloss.Color("178")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1).
		Bold(true)

	reportKeysStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)

// ReportScreen displays a generated report in a scrollable viewport.
type ReportScreen struct {
	report    *diagnosis.Report
	doc       *render.Document
	toasts    []diagnosis.Notification
	viewport  viewport.Model
	ready     bool
	done      bool
	newIntake bool
	width     int
	height    int
}

// NewReportScreen creates a report screen. The rendered document may arrive
// later via SetDocument.
func NewReportScreen(report *diagnosis.Report, toasts []diagnosis.Notification) *ReportScreen {
	return &ReportScreen{
		report: report,
		toasts: toasts,
	}
}

// Document returns the parsed narrative, nil while rendering is pending.
func (s *ReportScreen) Document() *render.Document {
	return s.doc
}

// SetDocument supplies the parsed narrative once rendering finishes.
func (s *ReportScreen) SetDocument(doc *render.Document) {
	s.doc = doc
	if s.ready {
		s.viewport.SetContent(s.bodyView())
	}
}

// Init implements tea.Model
func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ReportScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			s.done = true
			return s, tea.Quit
		case "n":
			s.newIntake = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.layout()
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// layout sizes the viewport under the header and above the key hints.
func (s *ReportScreen) layout() {
	headerHeight := lipgloss.Height(s.headerView())
	footerHeight := 2
	vpHeight := s.height - headerHeight - footerHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !s.ready {
		s.viewport = viewport.New(s.width, vpHeight)
		s.ready = true
	} else {
		s.viewport.Width = s.width
		s.viewport.Height = vpHeight
	}
	s.viewport.SetContent(s.bodyView())
}

func (s *ReportScreen) headerView() string {
	title := components.TitleStyle.Render("DIAGNOSTIC REPORT")

	meta := reportMetaStyle.Render(fmt.Sprintf("%s | %s | %s",
		s.report.PatientName,
		s.report.GeneratedAt.Format("2006-01-02 15:04"),
		s.report.ID,
	))
	if s.report.Degraded {
		meta = lipgloss.JoinHorizontal(lipgloss.Top, meta, "  ", degradedBadgeStyle.Render("OFFLINE TEMPLATE"))
	}

	parts := []string{title, meta}
	if t := components.Toasts(s.toasts); t != "" {
		parts = append(parts, t)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ReportScreen) bodyView() string {
	if s.doc == nil {
		return "Rendering report..."
	}
	width := s.width - 2
	if width < 20 {
		width = 20
	}
	return render.Text(s.doc, width)
}

// View implements tea.Model
func (s *ReportScreen) View() string {
	if !s.ready {
		return s.headerView() + "\n\nRendering report...\n"
	}

	keys := reportKeysStyle.Render("↑/↓: Scroll | n: New intake | q: Quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		s.headerView(),
		s.viewport.View(),
		keys,
	)
}

// Done returns true if the user asked to quit
func (s *ReportScreen) Done() bool { return s.done }

// NewIntake returns true if the user asked to start a fresh intake
func (s *ReportScreen) NewIntake() bool { return s.newIntake }
