package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pcoscompass/pcoscompass/cmd/pcoscompass/ui/screens"
	"github.com/pcoscompass/pcoscompass/internal/attach"
	"github.com/pcoscompass/pcoscompass/internal/diagnosis"
	"github.com/pcoscompass/pcoscompass/internal/intake"
	"github.com/pcoscompass/pcoscompass/internal/render"
)

func sampleRecord() *intake.Record {
	r := intake.NewRecord()
	r.Set("patient_name", "Jane Doe")
	r.Set("region", "EU")
	r.Set("cycle_length_days", "40")
	r.Set("cycles_per_year", "6")
	r.Set("total_testosterone", "65")
	r.Set("shbg", "20")
	r.Set("fasting_insulin", "15")
	r.Set("fasting_glucose", "95")
	r.Set("tsh", "2.1")
	r.Set("prolactin", "12")
	r.Set("crp", "1.2")
	r.Set("follicle_count_left", "14")
	r.Set("follicle_count_right", "13")
	r.Set("ovarian_volume_left", "11")
	r.Set("ovarian_volume_right", "10.5")
	return r
}

func TestNewApp_Defaults(t *testing.T) {
	app := NewApp(nil, Options{ServerURL: "http://localhost:8000"})

	if app.record == nil {
		t.Fatal("Expected a fresh record when none is provided")
	}
	if app.opts.Timeout != diagnosis.DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", diagnosis.DefaultTimeout, app.opts.Timeout)
	}
	if app.opts.MaxImageSize != attach.DefaultMaxSize {
		t.Errorf("Expected default max image size %d, got %d", attach.DefaultMaxSize, app.opts.MaxImageSize)
	}
	if app.phase != PhaseIntake {
		t.Errorf("Expected initial phase PhaseIntake, got %d", app.phase)
	}
	if app.sectionScreen == nil {
		t.Fatal("Expected the first section screen to be initialized")
	}
	if app.sectionScreen.Section() != intake.Sections()[0] {
		t.Errorf("Expected first section %v, got %v", intake.Sections()[0], app.sectionScreen.Section())
	}
}

func TestNewApp_KeepsProvidedRecord(t *testing.T) {
	record := sampleRecord()
	app := NewApp(record, Options{})

	if app.record != record {
		t.Error("Expected the provided record to be used as-is")
	}
	if got := app.record.Value("tsh"); got != "2.1" {
		t.Errorf("Expected tsh 2.1, got %s", got)
	}
}

func TestApp_SectionSwitchKeepsValues(t *testing.T) {
	record := sampleRecord()
	record.Attachment = &attach.Attachment{Name: "scan.png", Path: "/tmp/scan.png"}
	app := NewApp(record, Options{})

	before := make(map[string]string)
	for _, f := range intake.Fields() {
		before[f.Name] = record.Value(f.Name)
	}

	// Walk forward through every section and back again
	for i := 0; i < len(intake.Sections())-1; i++ {
		app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	for i := 0; i < len(intake.Sections())-1; i++ {
		app.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	}

	if app.phase != PhaseIntake {
		t.Fatalf("Expected to stay in PhaseIntake, got %d", app.phase)
	}
	if app.sectionIndex != 0 {
		t.Errorf("Expected to be back on the first section, got %d", app.sectionIndex)
	}
	for name, v := range before {
		if got := record.Value(name); got != v {
			t.Errorf("Expected %s to survive section switches as %q, got %q", name, v, got)
		}
	}
	if record.Attachment == nil || record.Attachment.Name != "scan.png" {
		t.Error("Expected the attachment to survive section switches")
	}
}

func TestApp_StaleRenderIsDiscarded(t *testing.T) {
	app := NewApp(sampleRecord(), Options{})
	app.reportScreen = screens.NewReportScreen(&diagnosis.Report{
		ID:          "r1",
		PatientName: "Jane Doe",
	}, nil)
	app.seq = 2

	stale := render.Parse("# Old narrative")
	app.Update(screens.RenderedMsg{Seq: 1, Doc: stale})
	if app.reportScreen.Document() != nil {
		t.Error("Expected a stale render to be discarded")
	}

	current := render.Parse("# Current narrative")
	app.Update(screens.RenderedMsg{Seq: 2, Doc: current})
	if app.reportScreen.Document() != current {
		t.Error("Expected the matching render to be applied")
	}
}

func TestNoteCollector_DrainResets(t *testing.T) {
	c := &noteCollector{}

	c.Notify(diagnosis.Notification{Title: "Analysis Complete", Severity: diagnosis.SeverityInfo})
	c.Notify(diagnosis.Notification{Title: "Error", Severity: diagnosis.SeverityDestructive})

	notes := c.Drain()
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].Title != "Analysis Complete" {
		t.Errorf("Expected first note 'Analysis Complete', got %s", notes[0].Title)
	}
	if notes[1].Severity != diagnosis.SeverityDestructive {
		t.Errorf("Expected destructive second note, got %s", notes[1].Severity)
	}

	if again := c.Drain(); len(again) != 0 {
		t.Errorf("Expected drain to reset the collector, got %d notes", len(again))
	}
}
