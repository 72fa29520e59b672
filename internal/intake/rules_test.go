package intake

import (
	"strings"
	"testing"
)

// fillValid populates every field with a clinically plausible value.
func fillValid(r *Record) {
	values := map[string]string{
		"patient_name":         "Jane Doe",
		"region":               "Lisbon",
		"cycle_length_days":    "40",
		"cycles_per_year":      "6",
		"total_testosterone":   "65",
		"shbg":                 "20",
		"fasting_insulin":      "15",
		"fasting_glucose":      "95",
		"tsh":                  "2.1",
		"prolactin":            "12",
		"crp":                  "1.2",
		"follicle_count_left":  "14",
		"follicle_count_right": "13",
		"ovarian_volume_left":  "11",
		"ovarian_volume_right": "10.5",
	}
	for name, v := range values {
		r.Set(name, v)
	}
}

func TestFieldRegistry_CoversEverySectionOnce(t *testing.T) {
	seen := make(map[string]int)
	total := 0
	for _, sec := range Sections() {
		for _, f := range SectionFields(sec) {
			seen[f.Name]++
			total++
			if f.Section != sec {
				t.Errorf("Field %s listed under section %v but declares %v", f.Name, sec, f.Section)
			}
		}
	}
	if total != len(Fields()) {
		t.Errorf("Expected %d fields across sections, got %d", len(Fields()), total)
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("Field %s appears in %d sections, want exactly 1", name, count)
		}
	}
	for _, f := range Fields() {
		if seen[f.Name] != 1 {
			t.Errorf("Field %s is not covered by any section", f.Name)
		}
	}
}

func TestCheckValue(t *testing.T) {
	cycleLength, _ := FieldByName("cycle_length_days")
	cyclesPerYear, _ := FieldByName("cycles_per_year")
	name, _ := FieldByName("patient_name")
	shbg, _ := FieldByName("shbg")

	tests := []struct {
		label   string
		field   Field
		raw     string
		wantErr bool
	}{
		{"required empty", name, "", true},
		{"required whitespace", name, "   ", true},
		{"required present", name, "Jane Doe", false},
		{"below minimum", cycleLength, "0", true},
		{"at minimum", cycleLength, "1", false},
		{"above minimum", cycleLength, "28", false},
		{"negative cycles", cyclesPerYear, "-1", true},
		{"zero cycles allowed", cyclesPerYear, "0", false},
		{"non-numeric coerces to sentinel and fails min", cycleLength, "abc", true},
		{"non-numeric passes zero minimum", cyclesPerYear, "abc", false},
		{"lab value no lower bound", shbg, "-5", false},
		{"empty lab required", shbg, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			msg := CheckValue(tc.field, tc.raw)
			if tc.wantErr && msg == "" {
				t.Errorf("Expected an error for %q, got none", tc.raw)
			}
			if !tc.wantErr && msg != "" {
				t.Errorf("Expected no error for %q, got %q", tc.raw, msg)
			}
		})
	}
}

func TestValidateSection_OnlyEvaluatesOwnFields(t *testing.T) {
	r := NewRecord()
	r.Set("patient_name", "Jane Doe")
	r.Set("region", "Lisbon")
	r.Set("cycle_length_days", "28")
	r.Set("cycles_per_year", "12")

	// Labs and imaging are untouched; demographics must still validate clean.
	errs := ValidateSection(r, SectionDemographics)
	if len(errs) != 0 {
		t.Errorf("Expected no demographics errors, got %v", errs)
	}

	errs = ValidateSection(r, SectionLabs)
	if len(errs) != 7 {
		t.Errorf("Expected 7 lab errors for an empty labs section, got %d", len(errs))
	}
	for name, msg := range errs {
		if !strings.Contains(msg, "required") {
			t.Errorf("Expected a required message for %s, got %q", name, msg)
		}
	}
}

func TestValidateAll_ValidReplacementClearsError(t *testing.T) {
	r := NewRecord()
	fillValid(r)
	r.Set("cycle_length_days", "0")

	errs := ValidateAll(r)
	if _, ok := errs["cycle_length_days"]; !ok {
		t.Fatal("Expected cycle_length_days to fail validation")
	}
	if r.Err("cycle_length_days") == "" {
		t.Error("Expected the error to be recorded on the record")
	}

	// Set clears the field error immediately, revalidation stays clean.
	r.Set("cycle_length_days", "40")
	if r.Err("cycle_length_days") != "" {
		t.Errorf("Expected Set to clear the field error, got %q", r.Err("cycle_length_days"))
	}
	if errs := ValidateAll(r); len(errs) != 0 {
		t.Errorf("Expected no errors after replacement, got %v", errs)
	}
}

func TestSectionValid_RecomputesOnDemand(t *testing.T) {
	r := NewRecord()
	fillValid(r)

	if !SectionValid(r, SectionImaging) {
		t.Fatal("Expected imaging to be valid")
	}
	r.Set("follicle_count_left", "-2")
	if SectionValid(r, SectionImaging) {
		t.Error("Expected imaging to turn invalid after a negative count")
	}
	r.Set("follicle_count_left", "14")
	if !SectionValid(r, SectionImaging) {
		t.Error("Expected imaging to be valid again after the fix")
	}
}

func TestRecord_NumberCoercion(t *testing.T) {
	r := NewRecord()
	r.Set("tsh", "2.5")
	if got := r.Number("tsh"); got != 2.5 {
		t.Errorf("Expected 2.5, got %v", got)
	}
	r.Set("tsh", "")
	if got := r.Number("tsh"); got != 0 {
		t.Errorf("Expected 0 sentinel for empty input, got %v", got)
	}
	r.Set("tsh", "n/a")
	if got := r.Number("tsh"); got != 0 {
		t.Errorf("Expected 0 sentinel for non-numeric input, got %v", got)
	}
}

func TestRecord_Reset(t *testing.T) {
	r := NewRecord()
	fillValid(r)
	r.Set("patient_name", "")
	ValidateAll(r)
	if !r.HasErrors() {
		t.Fatal("Expected errors before reset")
	}

	r.Reset()
	if r.HasErrors() {
		t.Error("Expected no errors after reset")
	}
	for _, f := range Fields() {
		if r.Value(f.Name) != "" {
			t.Errorf("Expected %s to be empty after reset, got %q", f.Name, r.Value(f.Name))
		}
	}
	if r.Attachment != nil {
		t.Error("Expected attachment to be discarded on reset")
	}
}
