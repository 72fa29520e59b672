package screens

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/internal/attach"
	"github.com/pcoscompass/pcoscompass/internal/intake"
)

var (
	tabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	tabDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("35"))

	tabPendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	previewLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))
)

// SectionScreen collects one section of the intake form. The form fields are
// bound directly to the record, so values survive navigating away and back.
type SectionScreen struct {
	form         *huh.Form
	helpPanel    *components.HelpPanel
	record       *intake.Record
	section      intake.Section
	imagePath    string
	maxImageSize int64
	done         bool
	back         bool
	cancelled    bool
	width        int
	height       int
}

// NewSectionScreen creates a screen for the given intake section.
func NewSectionScreen(record *intake.Record, section intake.Section, maxImageSize int64) *SectionScreen {
	s := &SectionScreen{
		helpPanel:    components.NewHelpPanel(),
		record:       record,
		section:      section,
		maxImageSize: maxImageSize,
	}
	if record.Attachment != nil {
		s.imagePath = record.Attachment.Path
	}

	inputs := make([]huh.Field, 0, len(intake.SectionFields(section))+1)
	for _, f := range intake.SectionFields(section) {
		f := f
		inputs = append(inputs, huh.NewInput().
			Key(f.Name).
			Title(f.Label).
			Description(fieldDescription(f)).
			Value(record.Ref(f.Name)).
			Validate(func(raw string) error {
				if msg := intake.CheckValue(f, raw); msg != "" {
					return errors.New(msg)
				}
				return nil
			}))
	}

	if section == intake.SectionImaging {
		inputs = append(inputs, huh.NewFilePicker().
			Key("ultrasound_image").
			Title("Ultrasound Image (optional)").
			Description("JPEG, PNG or DICOM").
			AllowedTypes([]string{".jpg", ".jpeg", ".png", ".dcm"}).
			Value(&s.imagePath).
			Validate(func(path string) error {
				if path == "" {
					s.record.Attachment = nil
					return nil
				}
				a, err := attach.Load(path, s.maxImageSize)
				if err != nil {
					return err
				}
				s.record.Attachment = a
				return nil
			}))
	}

	s.form = huh.NewForm(huh.NewGroup(inputs...)).
		WithShowHelp(false).
		WithShowErrors(true)

	return s
}

func fieldDescription(f intake.Field) string {
	var parts []string
	if f.Unit != "" {
		parts = append(parts, f.Unit)
	}
	if f.Example != "" {
		parts = append(parts, "e.g. "+f.Example)
	}
	if !f.Required {
		parts = append(parts, "optional")
	}
	return strings.Join(parts, ", ")
}

// Init implements tea.Model
func (s *SectionScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SectionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.back = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Update help panel
	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SectionScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render(strings.ToUpper(s.section.String()))

	parts := []string{
		title,
		s.tabBar(),
		"",
		s.form.View(),
	}

	if s.section == intake.SectionImaging && s.record.Attachment != nil {
		parts = append(parts, "", s.attachmentView())
	}

	parts = append(parts,
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Ctrl+N/Ctrl+P: Switch section | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// tabBar shows all sections with validity markers.
func (s *SectionScreen) tabBar() string {
	var tabs []string
	for _, sec := range intake.Sections() {
		label := sec.String()
		switch {
		case sec == s.section:
			tabs = append(tabs, tabActiveStyle.Render("▸ "+label))
		case intake.SectionValid(s.record, sec):
			tabs = append(tabs, tabDoneStyle.Render("✓ "+label))
		default:
			tabs = append(tabs, tabPendingStyle.Render("  "+label))
		}
	}
	return strings.Join(tabs, "   ")
}

// attachmentView shows the loaded image with a terminal preview when possible.
func (s *SectionScreen) attachmentView() string {
	a := s.record.Attachment

	info := previewLabelStyle.Render(fmt.Sprintf("%s (%s, %s)", a.Name, a.Format, a.HumanSize()))

	// DICOM stills carry their own identity; show it so the clinician can
	// cross-check against the intake
	if a.Format == attach.FormatDICOM {
		var meta []string
		if a.PatientName != "" {
			meta = append(meta, "Patient: "+a.PatientName)
		}
		if a.StudyDescription != "" {
			meta = append(meta, "Study: "+a.StudyDescription)
		}
		if len(meta) > 0 {
			info = lipgloss.JoinVertical(lipgloss.Left, info,
				previewLabelStyle.Render(strings.Join(meta, " | ")))
		}
	}

	maxWidth := 40
	if s.width > 0 && s.width/2 < maxWidth {
		maxWidth = s.width / 2
	}
	preview := a.Preview(maxWidth)
	if preview == "" {
		return info
	}
	return lipgloss.JoinVertical(lipgloss.Left, info, preview)
}

// Done returns true if the form was completed
func (s *SectionScreen) Done() bool { return s.done }

// Back returns true if the user asked to go back a section
func (s *SectionScreen) Back() bool { return s.back }

// Cancelled returns true if the user cancelled
func (s *SectionScreen) Cancelled() bool { return s.cancelled }

// Section returns which intake section this screen edits
func (s *SectionScreen) Section() intake.Section { return s.section }
