package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
)

var (
	toastInfoStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("35")).
		Padding(0, 2)

	toastDestructiveStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 2)

	toastTitleStyle = lipgloss.NewStyle().Bold(true)

	toastDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
)

// Toast renders a single notification as a bordered banner.
func Toast(n diagnosis.Notification) string {
	style := toastInfoStyle
	if n.Severity == diagnosis.SeverityDestructive {
		style = toastDestructiveStyle
	}

	var sb strings.Builder
	sb.WriteString(toastTitleStyle.Render(n.Title))
	if n.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(toastDescStyle.Render(n.Description))
	}
	return style.Render(sb.String())
}

// Toasts renders a stack of notifications, newest last.
func Toasts(ns []diagnosis.Notification) string {
	if len(ns) == 0 {
		return ""
	}
	views := make([]string, 0, len(ns))
	for _, n := range ns {
		views = append(views, Toast(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}
