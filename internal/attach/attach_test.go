package attach

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, name string, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func TestLoad_PNG(t *testing.T) {
	path := writeTestImage(t, "scan.png", func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})

	a, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.Format != FormatPNG {
		t.Errorf("Expected PNG, got %s", a.Format)
	}
	if a.Width != 8 || a.Height != 6 {
		t.Errorf("Expected 8x6, got %dx%d", a.Width, a.Height)
	}
	if a.Name != "scan.png" {
		t.Errorf("Expected base name scan.png, got %s", a.Name)
	}
	if a.Size() == 0 {
		t.Error("Expected non-empty data")
	}
}

func TestLoad_JPEG(t *testing.T) {
	path := writeTestImage(t, "scan.jpg", func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})

	a, err := Load(path, 0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if a.Format != FormatJPEG {
		t.Errorf("Expected JPEG, got %s", a.Format)
	}
}

func TestLoad_RejectsOversize(t *testing.T) {
	path := writeTestImage(t, "scan.png", func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})

	_, err := Load(path, 10) // 10 bytes
	var tooLarge *TooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("Expected *TooLargeError, got %v", err)
	}
	if tooLarge.Max != 10 {
		t.Errorf("Expected the configured cap in the error, got %d", tooLarge.Max)
	}
}

func TestLoad_RejectsUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, 0)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Expected ErrUnsupported, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"), 0)
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestPreview_Deterministic(t *testing.T) {
	path := writeTestImage(t, "scan.png", func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})
	a, err := Load(path, 0)
	if err != nil {
		t.Fatal(err)
	}

	first := a.Preview(8)
	second := a.Preview(8)
	if first == "" {
		t.Fatal("Expected a non-empty preview for a decodable image")
	}
	if first != second {
		t.Error("Expected identical previews for the same attachment and width")
	}
}

func TestPreview_UnavailableCases(t *testing.T) {
	a := &Attachment{Format: FormatDICOM, Data: []byte{1, 2, 3}}
	if a.Preview(40) != "" {
		t.Error("Expected no preview for DICOM attachments")
	}

	broken := &Attachment{Format: FormatPNG, Data: []byte("garbage")}
	if broken.Preview(40) != "" {
		t.Error("Expected no preview for undecodable data")
	}
}
