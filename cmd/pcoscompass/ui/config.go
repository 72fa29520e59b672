package ui

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/pcoscompass/pcoscompass/internal/attach"
	"github.com/pcoscompass/pcoscompass/internal/intake"
)

// Config is the YAML form of an intake record, grouped by section.
type Config struct {
	Patient PatientConfig `yaml:"patient"`
	Labs    LabsConfig    `yaml:"labs"`
	Imaging ImagingConfig `yaml:"imaging"`
}

// PatientConfig holds the demographics section.
type PatientConfig struct {
	Name            string   `yaml:"name"`
	Region          string   `yaml:"region"`
	CycleLengthDays *float64 `yaml:"cycle_length_days,omitempty"`
	CyclesPerYear   *float64 `yaml:"cycles_per_year,omitempty"`
}

// LabsConfig holds the laboratory section.
type LabsConfig struct {
	TotalTestosterone *float64 `yaml:"total_testosterone,omitempty"`
	SHBG              *float64 `yaml:"shbg,omitempty"`
	FastingInsulin    *float64 `yaml:"fasting_insulin,omitempty"`
	FastingGlucose    *float64 `yaml:"fasting_glucose,omitempty"`
	TSH               *float64 `yaml:"tsh,omitempty"`
	Prolactin         *float64 `yaml:"prolactin,omitempty"`
	CRP               *float64 `yaml:"crp,omitempty"`
}

// ImagingConfig holds the ultrasound section, including the optional image
// path.
type ImagingConfig struct {
	FollicleCountLeft  *float64 `yaml:"follicle_count_left,omitempty"`
	FollicleCountRight *float64 `yaml:"follicle_count_right,omitempty"`
	OvarianVolumeLeft  *float64 `yaml:"ovarian_volume_left,omitempty"`
	OvarianVolumeRight *float64 `yaml:"ovarian_volume_right,omitempty"`
	UltrasoundImage    string   `yaml:"ultrasound_image,omitempty"`
}

// numberSlot maps a numeric field name to its config slot, shared by load
// and save.
func (c *Config) numberSlot(name string) **float64 {
	switch name {
	case "cycle_length_days":
		return &c.Patient.CycleLengthDays
	case "cycles_per_year":
		return &c.Patient.CyclesPerYear
	case "total_testosterone":
		return &c.Labs.TotalTestosterone
	case "shbg":
		return &c.Labs.SHBG
	case "fasting_insulin":
		return &c.Labs.FastingInsulin
	case "fasting_glucose":
		return &c.Labs.FastingGlucose
	case "tsh":
		return &c.Labs.TSH
	case "prolactin":
		return &c.Labs.Prolactin
	case "crp":
		return &c.Labs.CRP
	case "follicle_count_left":
		return &c.Imaging.FollicleCountLeft
	case "follicle_count_right":
		return &c.Imaging.FollicleCountRight
	case "ovarian_volume_left":
		return &c.Imaging.OvarianVolumeLeft
	case "ovarian_volume_right":
		return &c.Imaging.OvarianVolumeRight
	}
	return nil
}

// LoadFromYAML reads an intake record from a YAML config file. A configured
// ultrasound image is loaded and attached; maxImageSize <= 0 applies the
// default cap.
func LoadFromYAML(path string, maxImageSize int64) (*intake.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	r := intake.NewRecord()
	r.Set("patient_name", cfg.Patient.Name)
	r.Set("region", cfg.Patient.Region)
	for _, f := range intake.Fields() {
		slot := cfg.numberSlot(f.Name)
		if slot == nil || *slot == nil {
			continue
		}
		r.Set(f.Name, strconv.FormatFloat(**slot, 'f', -1, 64))
	}

	if cfg.Imaging.UltrasoundImage != "" {
		a, err := attach.Load(cfg.Imaging.UltrasoundImage, maxImageSize)
		if err != nil {
			return nil, fmt.Errorf("loading ultrasound image: %w", err)
		}
		r.Attachment = a
	}
	return r, nil
}

// SaveToYAML writes the record to a YAML config file. Only non-empty fields
// are emitted, so a partially filled record round-trips faithfully.
func SaveToYAML(r *intake.Record, path string) error {
	var cfg Config
	cfg.Patient.Name = r.PatientName
	cfg.Patient.Region = r.Region
	for _, f := range intake.Fields() {
		slot := cfg.numberSlot(f.Name)
		if slot == nil || r.Value(f.Name) == "" {
			continue
		}
		v := r.Number(f.Name)
		*slot = &v
	}
	if r.Attachment != nil {
		cfg.Imaging.UltrasoundImage = r.Attachment.Path
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
