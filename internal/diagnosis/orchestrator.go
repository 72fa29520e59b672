package diagnosis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pcoscompass/pcoscompass/internal/intake"
)

// State is the submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not completed. The rejected call leaves no trace: no state
// change, no request, no notification.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Notification is a user-facing toast emitted on submission outcomes.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives submission outcome notifications. Implementations must
// not block; delivery retries are not this package's concern.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// FallbackPolicy decides how a response without a recommendation is handled.
type FallbackPolicy int

const (
	// FallbackSynthesize substitutes the canned narrative and reports plain
	// success, hiding the missing recommendation from the user.
	FallbackSynthesize FallbackPolicy = iota
	// FallbackDegraded substitutes the canned narrative but marks the report
	// degraded and tells the user the engine returned no narrative.
	FallbackDegraded
)

// Orchestrator owns the submission lifecycle. At most one submission is in
// flight at a time; a new Submit while submitting is rejected. Succeeded and
// Failed are re-submittable states.
type Orchestrator struct {
	client   *Client
	notifier Notifier
	policy   FallbackPolicy

	mu     sync.Mutex
	state  State
	report *Report

	now func() time.Time // swapped in tests
}

// NewOrchestrator creates an idle orchestrator. notifier may be nil when no
// notification surface exists (notifications are then dropped).
func NewOrchestrator(client *Client, notifier Notifier, policy FallbackPolicy) *Orchestrator {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Orchestrator{
		client:   client,
		notifier: notifier,
		policy:   policy,
		state:    StateIdle,
		now:      time.Now,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Report returns the report of the most recent successful submission, nil
// when none exists.
func (o *Orchestrator) Report() *Report {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.report
}

// Submit sends the record to the diagnosis service and drives the state
// machine to Succeeded or Failed. The patient name is snapshotted before the
// call so that edits made while the request is in flight never change the
// label on the eventual report. The record itself is read once and left
// untouched, so a failed submission can be retried without re-entry.
func (o *Orchestrator) Submit(ctx context.Context, rec *intake.Record) (*Report, error) {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	o.state = StateSubmitting
	req := NewRequest(rec)
	name := req.PatientName
	o.mu.Unlock()

	resp, err := o.client.Diagnose(ctx, req)
	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.mu.Unlock()
		o.notifier.Notify(Notification{
			Title:       "Error",
			Description: "Failed to reach the diagnosis service. Please check the server and try again.",
			Severity:    SeverityDestructive,
		})
		return nil, err
	}

	at := o.now()
	var report *Report
	switch {
	case resp.Recommendation != "":
		report = newReport(name, resp.Recommendation, at, false)
	case o.policy == FallbackDegraded:
		report = newReport(name, FallbackNarrative(name, at), at, true)
	default:
		report = newReport(name, FallbackNarrative(name, at), at, false)
	}

	o.mu.Lock()
	o.state = StateSucceeded
	o.report = report
	o.mu.Unlock()

	if report.Degraded {
		o.notifier.Notify(Notification{
			Title:       "Partial Result",
			Description: "The diagnosis engine returned no narrative; showing a template assessment instead.",
			Severity:    SeverityInfo,
		})
	} else {
		o.notifier.Notify(Notification{
			Title:       "Analysis Complete",
			Description: "Your PCOS diagnostic report has been generated.",
			Severity:    SeverityInfo,
		})
	}
	return report, nil
}
