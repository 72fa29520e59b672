// Package intake implements the intake record, its field-level validation
// rules and the transport payload assembly for a PCOS assessment session.
package intake

import (
	"fmt"
	"strconv"
	"strings"
)

// Section identifies one of the three intake groupings.
type Section int

const (
	SectionDemographics Section = iota
	SectionLabs
	SectionImaging
)

// String returns the display name of the section.
func (s Section) String() string {
	switch s {
	case SectionDemographics:
		return "Patient Info"
	case SectionLabs:
		return "Lab Values"
	case SectionImaging:
		return "Ultrasound"
	default:
		return "Unknown"
	}
}

// Sections returns all sections in intake order.
func Sections() []Section {
	return []Section{SectionDemographics, SectionLabs, SectionImaging}
}

// Field describes a single intake field and its validation rule.
// Required and Min are fixed at load time and never change per record.
type Field struct {
	Name     string // transport key, e.g. "cycle_length_days"
	Label    string // display label, e.g. "Cycle Length"
	Unit     string // measurement unit, "" when unitless
	Section  Section
	Required bool
	Min      *float64 // nil when no lower bound applies
	Integer  bool     // whole-number input hint (counts, day counts)
	Example  string   // placeholder shown in the form
}

func minOf(v float64) *float64 { return &v }

// Registry of every non-image intake field, in section and transport order.
// Each field belongs to exactly one section (verified by tests).
var fields = []Field{
	{Name: "patient_name", Label: "Patient Name", Section: SectionDemographics, Required: true, Example: "Jane Doe"},
	{Name: "region", Label: "Region", Section: SectionDemographics, Required: true, Example: "City / Region"},
	{Name: "cycle_length_days", Label: "Cycle Length", Unit: "days", Section: SectionDemographics, Required: true, Min: minOf(1), Integer: true, Example: "28"},
	{Name: "cycles_per_year", Label: "Cycles Per Year", Section: SectionDemographics, Required: true, Min: minOf(0), Integer: true, Example: "12"},

	{Name: "total_testosterone", Label: "Total Testosterone", Unit: "ng/dL", Section: SectionLabs, Required: true, Example: "45"},
	{Name: "shbg", Label: "SHBG", Unit: "nmol/L", Section: SectionLabs, Required: true, Example: "40"},
	{Name: "fasting_insulin", Label: "Fasting Insulin", Unit: "μIU/mL", Section: SectionLabs, Required: true, Example: "10"},
	{Name: "fasting_glucose", Label: "Fasting Glucose", Unit: "mg/dL", Section: SectionLabs, Required: true, Example: "90"},
	{Name: "tsh", Label: "TSH", Unit: "mIU/L", Section: SectionLabs, Required: true, Example: "2.5"},
	{Name: "prolactin", Label: "Prolactin", Unit: "ng/mL", Section: SectionLabs, Required: true, Example: "15"},
	{Name: "crp", Label: "CRP", Unit: "mg/L", Section: SectionLabs, Required: true, Example: "1.0"},

	{Name: "follicle_count_left", Label: "Follicle Count (Left)", Section: SectionImaging, Required: true, Min: minOf(0), Integer: true, Example: "12"},
	{Name: "follicle_count_right", Label: "Follicle Count (Right)", Section: SectionImaging, Required: true, Min: minOf(0), Integer: true, Example: "10"},
	{Name: "ovarian_volume_left", Label: "Ovarian Volume (Left)", Unit: "mL", Section: SectionImaging, Required: true, Min: minOf(0), Example: "8.5"},
	{Name: "ovarian_volume_right", Label: "Ovarian Volume (Right)", Unit: "mL", Section: SectionImaging, Required: true, Min: minOf(0), Example: "9.0"},
}

// Fields returns every intake field in transport order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// SectionFields returns the fields of a single section, in form order.
func SectionFields(sec Section) []Field {
	var out []Field
	for _, f := range fields {
		if f.Section == sec {
			out = append(out, f)
		}
	}
	return out
}

// FieldByName looks up a field by its transport key.
func FieldByName(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CheckValue evaluates a raw input value against a field's rule and returns
// an error message, or "" when the value passes. Empty raw input fails the
// required check even though numeric coercion would read it as 0.
func CheckValue(f Field, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Required {
			return fmt.Sprintf("%s is required", strings.ToLower(f.Label))
		}
		return ""
	}
	if f.Min == nil {
		return ""
	}
	// Non-numeric text coerces to the 0 sentinel, same as the form inputs.
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = 0
	}
	if v < *f.Min {
		if *f.Min == 0 {
			return "cannot be negative"
		}
		return fmt.Sprintf("must be at least %s", strconv.FormatFloat(*f.Min, 'f', -1, 64))
	}
	return ""
}

// ValidateSection evaluates only the rules of the given section and records
// the results on the record. The returned map holds one message per failing
// field and is empty when the section is valid.
func ValidateSection(r *Record, sec Section) map[string]string {
	return validate(r, SectionFields(sec))
}

// ValidateAll evaluates every rule across all three sections.
func ValidateAll(r *Record) map[string]string {
	return validate(r, fields)
}

// SectionValid reports whether every rule of the section passes for the
// current record values. It recomputes from scratch on every call.
func SectionValid(r *Record, sec Section) bool {
	for _, f := range SectionFields(sec) {
		if CheckValue(f, r.Value(f.Name)) != "" {
			return false
		}
	}
	return true
}

func validate(r *Record, fs []Field) map[string]string {
	errs := make(map[string]string)
	for _, f := range fs {
		if msg := CheckValue(f, r.Value(f.Name)); msg != "" {
			errs[f.Name] = msg
			r.setErr(f.Name, msg)
		} else {
			r.clearErr(f.Name)
		}
	}
	return errs
}
