package intake

import (
	"strconv"
	"strings"

	"github.com/pcoscompass/pcoscompass/internal/attach"
)

// PayloadField is a single transport entry: the field's wire key and its
// textual value.
type PayloadField struct {
	Name  string
	Value string
}

// Payload is the transport form of a record: an ordered list of entries plus
// the optional binary attachment carried as a distinct part.
type Payload struct {
	Fields     []PayloadField
	Attachment *attach.Attachment
}

// Get returns the value of the named entry and whether it is present.
func (p Payload) Get(name string) (string, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Assemble converts a record into its transport payload. Every field with a
// non-empty raw value yields one entry in registry order; numeric fields are
// serialized in decimal textual form after coercion. Assemble performs no
// validation and assumes ValidateAll reported no errors. Output is
// deterministic for a fixed record, with attachment bytes passed through
// untouched.
func Assemble(r *Record) Payload {
	p := Payload{Attachment: r.Attachment}
	for _, f := range fields {
		raw := strings.TrimSpace(r.Value(f.Name))
		if raw == "" {
			continue
		}
		value := raw
		if f.Name != "patient_name" && f.Name != "region" {
			value = strconv.FormatFloat(r.Number(f.Name), 'f', -1, 64)
		}
		p.Fields = append(p.Fields, PayloadField{Name: f.Name, Value: value})
	}
	return p
}
