package ui

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pcoscompass/pcoscompass/internal/attach"
)

func TestLoadFromYAML_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "intake.yaml")

	content := `
patient:
  name: "Jane Doe"
  region: "EU"
  cycle_length_days: 40
  cycles_per_year: 6
labs:
  total_testosterone: 65
  shbg: 20
  fasting_insulin: 15
  fasting_glucose: 95
  tsh: 2.1
  prolactin: 12
  crp: 1.2
imaging:
  follicle_count_left: 14
  follicle_count_right: 13
  ovarian_volume_left: 11
  ovarian_volume_right: 10.5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	record, err := LoadFromYAML(configPath, 0)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if record.PatientName != "Jane Doe" {
		t.Errorf("Expected patient name 'Jane Doe', got %s", record.PatientName)
	}
	if record.Region != "EU" {
		t.Errorf("Expected region EU, got %s", record.Region)
	}
	if got := record.Value("cycle_length_days"); got != "40" {
		t.Errorf("Expected cycle_length_days 40, got %s", got)
	}
	if got := record.Number("tsh"); got != 2.1 {
		t.Errorf("Expected tsh 2.1, got %v", got)
	}
	if got := record.Value("ovarian_volume_right"); got != "10.5" {
		t.Errorf("Expected ovarian_volume_right 10.5, got %s", got)
	}
	if record.Attachment != nil {
		t.Error("Expected no attachment for config without ultrasound_image")
	}
}

func TestLoadFromYAML_PartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "intake.yaml")

	content := `
patient:
  name: "Jane Doe"
labs:
  tsh: 2.1
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	record, err := LoadFromYAML(configPath, 0)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if got := record.Value("tsh"); got != "2.1" {
		t.Errorf("Expected tsh 2.1, got %s", got)
	}
	if got := record.Value("shbg"); got != "" {
		t.Errorf("Expected empty shbg, got %s", got)
	}
}

func TestLoadFromYAML_WithImage(t *testing.T) {
	tmpDir := t.TempDir()
	imagePath := filepath.Join(tmpDir, "scan.png")

	f, err := os.Create(imagePath)
	if err != nil {
		t.Fatalf("Failed to create image file: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
	f.Close()

	configPath := filepath.Join(tmpDir, "intake.yaml")
	content := "patient:\n  name: Jane\nimaging:\n  ultrasound_image: " + imagePath + "\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	record, err := LoadFromYAML(configPath, 0)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if record.Attachment == nil {
		t.Fatal("Expected attachment to be loaded")
	}
	if record.Attachment.Format != attach.FormatPNG {
		t.Errorf("Expected PNG attachment, got %s", record.Attachment.Format)
	}
	if record.Attachment.Path != imagePath {
		t.Errorf("Expected attachment path %s, got %s", imagePath, record.Attachment.Path)
	}
}

func TestLoadFromYAML_MissingImage(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "intake.yaml")

	content := "imaging:\n  ultrasound_image: /nonexistent/scan.png\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadFromYAML(configPath, 0); err == nil {
		t.Error("Expected error for missing ultrasound image")
	}
}

func TestLoadFromYAML_MissingFile(t *testing.T) {
	if _, err := LoadFromYAML("/nonexistent/intake.yaml", 0); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadFromYAML_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte("patient: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadFromYAML(configPath, 0); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestSaveToYAML_RoundTrip(t *testing.T) {
	record := sampleRecord()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "intake.yaml")

	if err := SaveToYAML(record, configPath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}

	loaded, err := LoadFromYAML(configPath, 0)
	if err != nil {
		t.Fatalf("LoadFromYAML failed: %v", err)
	}

	if loaded.PatientName != record.PatientName {
		t.Errorf("Expected patient name %s, got %s", record.PatientName, loaded.PatientName)
	}
	for _, name := range []string{"cycle_length_days", "tsh", "ovarian_volume_right"} {
		if loaded.Number(name) != record.Number(name) {
			t.Errorf("Expected %s %v, got %v", name, record.Number(name), loaded.Number(name))
		}
	}
}

func TestSaveToYAML_OmitsEmptyFields(t *testing.T) {
	record := sampleRecord()
	record.Set("tsh", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "intake.yaml")

	if err := SaveToYAML(record, configPath); err != nil {
		t.Fatalf("SaveToYAML failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read saved config: %v", err)
	}

	if strings.Contains(string(data), "tsh:") {
		t.Error("Expected empty tsh to be omitted from saved config")
	}
	if strings.Contains(string(data), "ultrasound_image:") {
		t.Error("Expected missing attachment to be omitted from saved config")
	}
}
