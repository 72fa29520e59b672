package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/components"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/screens"
	"github.com/pcoscompass/pcoscompass/internal/attach"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
	"github.com/pcoscompass/pcoscompass/internal/intake"
	"github.com/pcoscompass/pcoscompass/internal/render"
)

// Phase represents the current phase/screen of the intake app.
type Phase int

const (
	PhaseIntake Phase = iota
	PhaseSummary
	PhaseSaveConfig
	PhaseSubmitting
	PhaseReport
	PhaseError
)

// Options configures the intake app.
type Options struct {
	ServerURL    string
	Timeout      time.Duration
	MaxImageSize int64
	Fallback     diagnosis.FallbackPolicy
}

// noteCollector gathers notifications emitted during a submission so they can
// be shown as toasts on the next screen.
type noteCollector struct {
	mu    sync.Mutex
	notes []diagnosis.Notification
}

func (c *noteCollector) Notify(n diagnosis.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, n)
}

func (c *noteCollector) Drain() []diagnosis.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	notes := c.notes
	c.notes = nil
	return notes
}

// App is the main orchestrator for the intake interface.
type App struct {
	opts   Options
	record *intake.Record
	orch   *diagnosis.Orchestrator
	notes  *noteCollector

	// Current phase
	phase        Phase
	sectionIndex int

	// Submission sequence, bumped per submission so stale renders are dropped
	seq int

	// Screen instances
	sectionScreen *screens.SectionScreen
	summaryScreen *screens.SummaryScreen
	submitScreen  *screens.SubmitScreen
	reportScreen  *screens.ReportScreen
	errorScreen   *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
	err       error
}

// NewApp creates the intake app around an existing record.
func NewApp(record *intake.Record, opts Options) *App {
	if record == nil {
		record = intake.NewRecord()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = diagnosis.DefaultTimeout
	}
	if opts.MaxImageSize <= 0 {
		opts.MaxImageSize = attach.DefaultMaxSize
	}

	notes := &noteCollector{}
	client := diagnosis.NewClient(opts.ServerURL, opts.Timeout)

	a := &App{
		opts:   opts,
		record: record,
		orch:   diagnosis.NewOrchestrator(client, notes, opts.Fallback),
		notes:  notes,
		phase:  PhaseIntake,
	}

	a.sectionScreen = screens.NewSectionScreen(record, intake.Sections()[0], opts.MaxImageSize)

	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.sectionScreen.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for all phases
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	// Submission results can arrive in any phase
	switch msg := msg.(type) {
	case screens.SubmittedMsg:
		return a.handleSubmitted(msg)
	case screens.SubmitErrorMsg:
		return a.handleSubmitError(msg)
	case screens.RenderedMsg:
		if msg.Seq == a.seq && a.reportScreen != nil {
			a.reportScreen.SetDocument(msg.Doc)
		}
		return a, nil
	}

	switch a.phase {
	case PhaseIntake:
		return a.updateIntake(msg)
	case PhaseSummary:
		return a.updateSummary(msg)
	case PhaseSaveConfig:
		return a.updateSaveConfig(msg)
	case PhaseSubmitting:
		return a.updateSubmitting(msg)
	case PhaseReport:
		return a.updateReport(msg)
	case PhaseError:
		return a.updateError(msg)
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.phase {
	case PhaseIntake:
		return a.sectionScreen.View()
	case PhaseSummary:
		return a.summaryScreen.View()
	case PhaseSaveConfig:
		return a.viewSaveConfig()
	case PhaseSubmitting:
		return a.submitScreen.View()
	case PhaseReport:
		return a.reportScreen.View()
	case PhaseError:
		return a.errorScreen.View()
	}

	return ""
}

// transitionToSection switches the intake form to the given section index.
func (a *App) transitionToSection(index int) {
	a.sectionIndex = index
	a.phase = PhaseIntake
	a.sectionScreen = screens.NewSectionScreen(a.record, intake.Sections()[index], a.opts.MaxImageSize)
}

// updateIntake handles updates while a section form is active.
func (a *App) updateIntake(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Section hotkeys skip form completion; values are kept on the record
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+n":
			if a.sectionIndex+1 < len(intake.Sections()) {
				a.transitionToSection(a.sectionIndex + 1)
				return a, a.sectionScreen.Init()
			}
			return a.transitionToSummary("")
		case "ctrl+p":
			if a.sectionIndex > 0 {
				a.transitionToSection(a.sectionIndex - 1)
				return a, a.sectionScreen.Init()
			}
			return a, nil
		}
	}

	model, cmd := a.sectionScreen.Update(msg)
	if ss, ok := model.(*screens.SectionScreen); ok {
		a.sectionScreen = ss
	}

	if a.sectionScreen.Cancelled() {
		a.cancelled = true
		return a, tea.Quit
	}

	if a.sectionScreen.Back() {
		if a.sectionIndex == 0 {
			a.cancelled = true
			return a, tea.Quit
		}
		a.transitionToSection(a.sectionIndex - 1)
		return a, a.sectionScreen.Init()
	}

	if a.sectionScreen.Done() {
		if a.sectionIndex+1 < len(intake.Sections()) {
			a.transitionToSection(a.sectionIndex + 1)
			return a, a.sectionScreen.Init()
		}
		return a.transitionToSummary("")
	}

	return a, cmd
}

// transitionToSummary moves to the summary screen, optionally with a notice.
func (a *App) transitionToSummary(notice string) (tea.Model, tea.Cmd) {
	a.phase = PhaseSummary
	a.summaryScreen = screens.NewSummaryScreen(a.record)
	if notice != "" {
		a.summaryScreen.SetNotice(notice)
	}
	return a, a.summaryScreen.Init()
}

// updateSummary handles updates in the summary phase.
func (a *App) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		a.summaryScreen = ss
	}

	if a.summaryScreen.Cancelled() {
		a.cancelled = true
		return a, tea.Quit
	}

	if a.summaryScreen.Done() {
		switch a.summaryScreen.Action() {
		case screens.SummaryActionBack:
			a.transitionToSection(0)
			return a, a.sectionScreen.Init()

		case screens.SummaryActionSubmit:
			// Every field must pass before anything is sent
			if errs := intake.ValidateAll(a.record); len(errs) > 0 {
				return a.transitionToSummary(fmt.Sprintf(
					"Cannot submit: %d field(s) need attention. Go back to edit.", len(errs)))
			}
			return a.startSubmission()

		case screens.SummaryActionSaveConfig:
			return a.transitionToSaveConfig()

		case screens.SummaryActionCancel:
			a.cancelled = true
			return a, tea.Quit
		}
	}

	return a, cmd
}

// transitionToSaveConfig shows the save config dialog.
func (a *App) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	a.phase = PhaseSaveConfig
	a.configPath = "pcos-intake.yaml"

	a.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save intake to").
				Description("Enter the path for the YAML config file").
				Value(&a.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return a, a.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (a *App) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return a.transitionToSummary("")
		case "ctrl+c":
			a.cancelled = true
			return a, tea.Quit
		}
	}

	form, cmd := a.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.saveConfigForm = f
	}

	if a.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToYAML(a.record, a.configPath); err != nil {
			return a.transitionToSummary("Saving failed: " + err.Error())
		}
		return a.transitionToSummary("Saved to " + a.configPath)
	}

	return a, cmd
}

// viewSaveConfig renders the save config dialog.
func (a *App) viewSaveConfig() string {
	title := components.TitleStyle.Render("Save Intake")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		a.saveConfigForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)

	return content
}

// startSubmission sends the intake to the analysis service in the background.
func (a *App) startSubmission() (tea.Model, tea.Cmd) {
	a.phase = PhaseSubmitting
	a.seq++
	a.submitScreen = screens.NewSubmitScreen(a.record.PatientName)

	record := a.record
	orch := a.orch
	notes := a.notes

	submit := func() tea.Msg {
		report, err := orch.Submit(context.Background(), record)
		if err != nil {
			return screens.SubmitErrorMsg{Err: err, Notes: notes.Drain()}
		}
		return screens.SubmittedMsg{Report: report, Notes: notes.Drain()}
	}

	return a, tea.Batch(a.submitScreen.Init(), submit)
}

// handleSubmitted moves to the report screen and parses the narrative in the
// background.
func (a *App) handleSubmitted(msg screens.SubmittedMsg) (tea.Model, tea.Cmd) {
	a.phase = PhaseReport
	a.reportScreen = screens.NewReportScreen(msg.Report, msg.Notes)

	// Resend the window size so the viewport lays itself out
	var cmds []tea.Cmd
	if a.width > 0 {
		size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
		model, _ := a.reportScreen.Update(size)
		if rs, ok := model.(*screens.ReportScreen); ok {
			a.reportScreen = rs
		}
	}

	seq := a.seq
	narrative := msg.Report.Narrative
	cmds = append(cmds, func() tea.Msg {
		return screens.RenderedMsg{Seq: seq, Doc: render.Parse(narrative)}
	})

	return a, tea.Batch(cmds...)
}

// handleSubmitError moves to the error screen, keeping the intake intact.
func (a *App) handleSubmitError(msg screens.SubmitErrorMsg) (tea.Model, tea.Cmd) {
	a.phase = PhaseError
	a.err = msg.Err
	a.errorScreen = screens.NewErrorScreen(msg.Err, msg.Notes)
	return a, nil
}

// updateSubmitting handles updates while a submission is in flight.
func (a *App) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.submitScreen.Update(msg)
	if ss, ok := model.(*screens.SubmitScreen); ok {
		a.submitScreen = ss
	}

	if a.submitScreen.Cancelled() {
		a.cancelled = true
		return a, tea.Quit
	}

	return a, cmd
}

// updateReport handles updates in the report phase.
func (a *App) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.reportScreen.Update(msg)
	if rs, ok := model.(*screens.ReportScreen); ok {
		a.reportScreen = rs
	}

	if a.reportScreen.NewIntake() {
		a.record.Reset()
		a.seq++ // drop any render still in flight
		a.transitionToSection(0)
		return a, a.sectionScreen.Init()
	}

	if a.reportScreen.Done() {
		a.finished = true
		return a, tea.Quit
	}

	return a, cmd
}

// updateError handles updates in the error phase.
func (a *App) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		a.errorScreen = es
	}

	if a.errorScreen.Cancelled() {
		a.cancelled = true
		return a, tea.Quit
	}

	if a.errorScreen.Retry() {
		a.err = nil
		return a.startSubmission()
	}

	if a.errorScreen.Back() {
		a.err = nil
		return a.transitionToSummary("")
	}

	return a, cmd
}

// Run starts the interactive intake.
// If fromConfig is provided, it preloads the intake from that YAML file.
func Run(fromConfig string, opts Options) error {
	var record *intake.Record

	// Load config if provided
	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}

		loaded, err := LoadFromYAML(absPath, opts.MaxImageSize)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		record = loaded
	}

	app := NewApp(record, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running intake: %w", err)
	}

	// Check final state
	if a, ok := finalModel.(*App); ok {
		if a.cancelled {
			return nil // User cancelled, not an error
		}
		if a.err != nil && !a.finished {
			return a.err
		}
	}

	return nil
}
