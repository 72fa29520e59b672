package intake

import (
	"strconv"
	"strings"

	"github.com/pcoscompass/pcoscompass/internal/attach"
)

// Record holds the field values and per-field error state for one assessment
// session. Values are kept as raw input strings so that partially typed or
// cleared inputs survive section switches untouched; numeric coercion happens
// on read. A record is never shared across concurrent submissions.
type Record struct {
	PatientName     string
	Region          string
	CycleLengthDays string
	CyclesPerYear   string

	TotalTestosterone string
	SHBG              string
	FastingInsulin    string
	FastingGlucose    string
	TSH               string
	Prolactin         string
	CRP               string

	FollicleCountLeft  string
	FollicleCountRight string
	OvarianVolumeLeft  string
	OvarianVolumeRight string

	// Attachment is the optional ultrasound image. It is carried alongside
	// the field values but is not part of the JSON submission.
	Attachment *attach.Attachment

	errors map[string]string
}

// NewRecord creates an empty record for a fresh assessment session.
func NewRecord() *Record {
	return &Record{errors: make(map[string]string)}
}

// Ref returns a pointer to the raw value of the named field, suitable for
// binding to a form input. Returns nil for unknown names.
func (r *Record) Ref(name string) *string {
	switch name {
	case "patient_name":
		return &r.PatientName
	case "region":
		return &r.Region
	case "cycle_length_days":
		return &r.CycleLengthDays
	case "cycles_per_year":
		return &r.CyclesPerYear
	case "total_testosterone":
		return &r.TotalTestosterone
	case "shbg":
		return &r.SHBG
	case "fasting_insulin":
		return &r.FastingInsulin
	case "fasting_glucose":
		return &r.FastingGlucose
	case "tsh":
		return &r.TSH
	case "prolactin":
		return &r.Prolactin
	case "crp":
		return &r.CRP
	case "follicle_count_left":
		return &r.FollicleCountLeft
	case "follicle_count_right":
		return &r.FollicleCountRight
	case "ovarian_volume_left":
		return &r.OvarianVolumeLeft
	case "ovarian_volume_right":
		return &r.OvarianVolumeRight
	}
	return nil
}

// Set stores a raw value for the named field and clears any error recorded
// against it. Unknown names are ignored.
func (r *Record) Set(name, value string) {
	ref := r.Ref(name)
	if ref == nil {
		return
	}
	*ref = value
	r.clearErr(name)
}

// Value returns the raw value of the named field, "" for unknown names.
func (r *Record) Value(name string) string {
	if ref := r.Ref(name); ref != nil {
		return *ref
	}
	return ""
}

// Number returns the numeric reading of the named field. Empty or
// non-numeric input reads as 0; the required check still fails on empty raw
// input.
func (r *Record) Number(name string) float64 {
	raw := strings.TrimSpace(r.Value(name))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

// Err returns the validation message recorded against the named field.
func (r *Record) Err(name string) string {
	if r.errors == nil {
		return ""
	}
	return r.errors[name]
}

// HasErrors reports whether any field currently carries a validation error.
func (r *Record) HasErrors() bool {
	return len(r.errors) > 0
}

func (r *Record) setErr(name, msg string) {
	if r.errors == nil {
		r.errors = make(map[string]string)
	}
	r.errors[name] = msg
}

func (r *Record) clearErr(name string) {
	if r.errors != nil {
		delete(r.errors, name)
	}
}

// Reset clears every field, the attachment and all error state, returning
// the record to the empty session-start state.
func (r *Record) Reset() {
	*r = Record{errors: make(map[string]string)}
}
