// Package attach loads and inspects ultrasound image attachments for the
// intake form. JPEG and PNG stills are accepted directly; DICOM exports are
// parsed so the embedded patient metadata can be cross-checked against the
// intake record.
package attach

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// DefaultMaxSize is the attachment size cap applied when none is configured.
const DefaultMaxSize int64 = 10 << 20 // 10 MB

// ErrUnsupported is returned for files that are neither JPEG, PNG nor DICOM.
var ErrUnsupported = errors.New("unsupported image format (use JPEG, PNG or DICOM)")

// Format identifies the detected attachment encoding.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatDICOM
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	case FormatDICOM:
		return "DICOM"
	default:
		return "unknown"
	}
}

// TooLargeError reports an attachment exceeding the configured size cap.
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("image is %s, above the %s limit",
		humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Max)))
}

// Attachment is a loaded ultrasound image carried with the intake record.
// The bytes are passed through to the transport payload untouched.
type Attachment struct {
	Name   string // base file name
	Path   string // path the attachment was loaded from
	Format Format
	Data   []byte

	// Pixel dimensions, known for JPEG/PNG only.
	Width  int
	Height int

	// Embedded metadata, present for DICOM exports only.
	PatientName      string
	StudyDescription string
}

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int64 { return int64(len(a.Data)) }

// HumanSize returns the attachment size formatted for display.
func (a *Attachment) HumanSize() string { return humanize.IBytes(uint64(len(a.Data))) }

// Load reads an image file from disk, enforces the size cap and detects its
// format. maxSize <= 0 applies DefaultMaxSize.
func Load(path string, maxSize int64) (*Attachment, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if info.Size() > maxSize {
		return nil, &TooLargeError{Size: info.Size(), Max: maxSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	a := &Attachment{Name: filepath.Base(path), Path: path, Data: data}

	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		switch format {
		case "jpeg":
			a.Format = FormatJPEG
		case "png":
			a.Format = FormatPNG
		default:
			return nil, ErrUnsupported
		}
		a.Width = cfg.Width
		a.Height = cfg.Height
		return a, nil
	}

	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		return nil, ErrUnsupported
	}
	a.Format = FormatDICOM
	a.PatientName = dicomString(&ds, tag.PatientName)
	a.StudyDescription = dicomString(&ds, tag.StudyDescription)
	return a, nil
}

// dicomString extracts a single string value for a tag, "" when absent.
func dicomString(ds *dicom.Dataset, t tag.Tag) string {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return ""
	}
	if vals, ok := el.Value.GetValue().([]string); ok && len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}
