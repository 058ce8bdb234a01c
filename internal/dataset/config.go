package dataset

import (
	"fmt"
	"math"
	"os"

	"github.com/mrsinham/fibroforge/internal/modality"
	"gopkg.in/yaml.v3"
)

// Config holds every knob of dataset generation. It is passed
// explicitly into the orchestrator so tests can run tiny datasets
// without touching shared state.
type Config struct {
	Seed        int64  `yaml:"seed"`
	BaseDir     string `yaml:"base_dir"`
	ImagesDir   string `yaml:"images_dir"`
	MetadataDir string `yaml:"metadata_dir"`
	LabelsFile  string `yaml:"labels_file"`
	ImageExt    string `yaml:"image_ext"`

	NumPatients int `yaml:"num_patients"`

	// Modalities is the generation order; Resolutions must cover it.
	Modalities  []modality.Modality                      `yaml:"modalities"`
	Resolutions map[modality.Modality]modality.Resolution `yaml:"resolutions"`

	// Splits in declaration order; fractions must sum to 1.0.
	Splits []SplitRatio `yaml:"splits"`

	// Stages in severity order with their sampling probabilities.
	Stages     []Stage   `yaml:"stages"`
	StageProbs []float64 `yaml:"stage_probs"`

	// PositiveStages defines the binary-label partition.
	PositiveStages []Stage `yaml:"positive_stages"`

	AgeMean float64 `yaml:"age_mean"`
	AgeStd  float64 `yaml:"age_std"`
	AgeMin  int     `yaml:"age_min"`
	AgeMax  int     `yaml:"age_max"`
}

// DefaultConfig returns the standard dataset configuration.
func DefaultConfig() Config {
	return Config{
		Seed:        42,
		BaseDir:     "OpenMultiModalLiverCirrhosisDataset",
		ImagesDir:   "images",
		MetadataDir: "metadata",
		LabelsFile:  "labels.csv",
		ImageExt:    ".npy",
		NumPatients: 1000,
		Modalities:  modality.AllModalities(),
		Resolutions: modality.DefaultResolutions(),
		Splits: []SplitRatio{
			{Name: SplitTrain, Fraction: 0.70},
			{Name: SplitVal, Fraction: 0.15},
			{Name: SplitTest, Fraction: 0.15},
		},
		Stages: DefaultStages(),
		// Approximate real-world stage prevalence, F0 to F4.
		StageProbs:     []float64{0.30, 0.25, 0.20, 0.15, 0.10},
		PositiveStages: []Stage{F3, F4},
		AgeMean:        60,
		AgeStd:         10,
		AgeMin:         30,
		AgeMax:         85,
	}
}

// Validate checks the configuration invariants, returning a
// ConfigError on the first violation.
func (c *Config) Validate() error {
	if err := ValidateSplitRatios(c.Splits); err != nil {
		return err
	}
	if len(c.Stages) == 0 {
		return &ConfigError{Reason: "no fibrosis stages configured"}
	}
	if len(c.StageProbs) != len(c.Stages) {
		return &ConfigError{Reason: fmt.Sprintf("%d stage probabilities for %d stages", len(c.StageProbs), len(c.Stages))}
	}
	sum := 0.0
	for _, p := range c.StageProbs {
		if p < 0 {
			return &ConfigError{Reason: fmt.Sprintf("negative stage probability %g", p)}
		}
		sum += p
	}
	if math.Abs(sum-1.0) > ratioSumTolerance {
		return &ConfigError{Reason: fmt.Sprintf("stage probabilities must sum to 1.0, got %g", sum)}
	}
	for _, s := range c.PositiveStages {
		if StageIndex(c.Stages, s) < 0 {
			return &ConfigError{Reason: fmt.Sprintf("positive stage %q is not a configured stage", s)}
		}
	}
	if len(c.Modalities) == 0 {
		return &ConfigError{Reason: "no modalities configured"}
	}
	for _, m := range c.Modalities {
		res, ok := c.Resolutions[m]
		if !ok {
			return &ConfigError{Reason: fmt.Sprintf("no resolution configured for modality %q", m)}
		}
		if res.Rows <= 0 || res.Cols <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("invalid resolution (%d, %d) for modality %q", res.Rows, res.Cols, m)}
		}
	}
	if c.AgeStd <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("age standard deviation must be > 0, got %g", c.AgeStd)}
	}
	if c.AgeMin > c.AgeMax {
		return &ConfigError{Reason: fmt.Sprintf("age range [%d, %d] is empty", c.AgeMin, c.AgeMax)}
	}
	return nil
}

// IsPositive reports whether a stage falls in the positive partition.
func (c *Config) IsPositive(s Stage) bool {
	for _, p := range c.PositiveStages {
		if p == s {
			return true
		}
	}
	return false
}

// LoadConfig reads a YAML configuration file. Fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML.
func SaveConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
