package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
)

var (
	errorTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	errorHintStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Italic(true)
)

// ErrorScreen displays a failed submission. The intake is kept, so the user
// can retry or go back and edit.
type ErrorScreen struct {
	err       error
	toasts    []diagnosis.Notification
	retry     bool
	back      bool
	cancelled bool
	width     int
	height    int
}

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error, toasts []diagnosis.Notification) *ErrorScreen {
	return &ErrorScreen{
		err:    err,
		toasts: toasts,
	}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			s.cancelled = true
			return s, tea.Quit
		case "r", "enter":
			s.retry = true
			return s, nil
		case "esc", "b":
			s.back = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder

	errorIcon := errorTitleStyle.Render("✗")
	errorText := errorTitleStyle.Render("Submission failed")
	sb.WriteString(errorIcon)
	sb.WriteString(" ")
	sb.WriteString(errorText)
	sb.WriteString("\n\n")

	if t := components.Toasts(s.toasts); t != "" {
		sb.WriteString(t)
		sb.WriteString("\n\n")
	}

	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n")
	sb.WriteString("  ")
	sb.WriteString(errorMessageStyle.Render(s.err.Error()))
	sb.WriteString("\n\n")

	sb.WriteString(errorHintStyle.Render("r: Retry | Esc: Back to summary | q: Quit"))

	return sb.String()
}

// Retry returns true if the user asked to resubmit
func (s *ErrorScreen) Retry() bool { return s.retry }

// Back returns true if the user asked to return to the summary
func (s *ErrorScreen) Back() bool { return s.back }

// Cancelled returns true if the user quit
func (s *ErrorScreen) Cancelled() bool { return s.cancelled }

// Error returns the error
func (s *ErrorScreen) Error() error { return s.err }
