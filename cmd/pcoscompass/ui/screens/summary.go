package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/internal/intake"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the intake form
	SummaryActionBack SummaryAction = iota
	// SummaryActionSubmit sends the intake for analysis
	SummaryActionSubmit
	// SummaryActionSaveConfig saves the intake to a YAML file
	SummaryActionSaveConfig
	// SummaryActionCancel exits without submitting
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionSubmit     = "submit"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	summarySectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	summaryLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)

	summaryMissingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Italic(true)

	noticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)
)

// SummaryScreen displays the collected intake before submission
type SummaryScreen struct {
	form      *huh.Form
	record    *intake.Record
	action    string
	notice    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewSummaryScreen creates a new summary screen
func NewSummaryScreen(record *intake.Record) *SummaryScreen {
	s := &SummaryScreen{
		record: record,
		action: actionSubmit, // Default action
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Submit for analysis", actionSubmit),
					huh.NewOption("Save intake to YAML", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// SetNotice displays a validation message above the action select.
func (s *SummaryScreen) SetNotice(msg string) {
	s.notice = msg
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("INTAKE SUMMARY")

	parts := []string{
		title,
		s.panelView(),
		"",
	}
	if s.notice != "" {
		parts = append(parts, noticeStyle.Render(s.notice), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		"Enter: Select | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// panelView renders the collected values grouped by section.
func (s *SummaryScreen) panelView() string {
	var sb strings.Builder

	for i, sec := range intake.Sections() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(summarySectionStyle.Render(sec.String()))
		for _, f := range intake.SectionFields(sec) {
			sb.WriteString("\n")
			sb.WriteString(summaryLabelStyle.Render(fmt.Sprintf("%-24s", f.Label)))

			v := s.record.Value(f.Name)
			if v == "" {
				sb.WriteString(summaryMissingStyle.Render("(not entered)"))
				continue
			}
			if f.Unit != "" {
				v += " " + f.Unit
			}
			sb.WriteString(summaryValueStyle.Render(v))
		}
	}

	if a := s.record.Attachment; a != nil {
		sb.WriteString("\n\n")
		sb.WriteString(summarySectionStyle.Render("Attachment"))
		sb.WriteString("\n")
		sb.WriteString(summaryLabelStyle.Render(fmt.Sprintf("%-24s", "Ultrasound Image")))
		sb.WriteString(summaryValueStyle.Render(fmt.Sprintf("%s (%s, %s)", a.Name, a.Format, a.HumanSize())))
	}

	return summaryPanelStyle.Render(sb.String())
}

// Done returns true if an action was selected
func (s *SummaryScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool { return s.cancelled }

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionSubmit:
		return SummaryActionSubmit
	case actionSaveConfig:
		return SummaryActionSaveConfig
	case actionCancel:
		return SummaryActionCancel
	}
	return SummaryActionBack
}
