// Package diagnosis talks to the external PCOS diagnosis service and owns
// the submission lifecycle: request assembly, the in-flight state machine,
// the fallback narrative policy and the resulting diagnostic report.
package diagnosis

import (
	"time"

	"github.com/google/uuid"
)

// Report is the outcome of a successful submission. It is immutable once
// created; a new submission produces a new report rather than mutating the
// previous one.
type Report struct {
	ID          string
	PatientName string // frozen at submit time, not affected by later edits
	Narrative   string // markdown as returned by the service, verbatim
	GeneratedAt time.Time

	// Degraded marks a report whose narrative was synthesized locally
	// because the service response carried no recommendation.
	Degraded bool
}

func newReport(name, narrative string, at time.Time, degraded bool) *Report {
	return &Report{
		ID:          uuid.NewString(),
		PatientName: name,
		Narrative:   narrative,
		GeneratedAt: at,
		Degraded:    degraded,
	}
}
