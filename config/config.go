package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Dataset struct {
	FilePath string `yaml:"filePath"`
}

func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("dataset config is nil")
	}

	if d.FilePath == "" {
		return fmt.Errorf("dataset file path not passed in")
	}

	return nil
}

type Generator struct {
	BatchSize int    `yaml:"batchSize"`
	Shuffle   *bool  `yaml:"shuffle"`
	Seed      *int64 `yaml:"seed"`
}

func (g *Generator) Validate() error {
	if g.BatchSize < 0 {
		return fmt.Errorf("batch size must be positive, got %d", g.BatchSize)
	}

	return nil
}

type Training struct {
	Epochs      int    `yaml:"epochs"`
	OutputPath  string `yaml:"outputPath"`
	LogProgress bool   `yaml:"logProgress"`
}

func (t *Training) GenerateDefault() {
	if t.Epochs == 0 {
		t.Epochs = 1
	}
}

func (t *Training) Validate() error {
	if t.Epochs < 0 {
		return fmt.Errorf("epochs must be positive, got %d", t.Epochs)
	}

	return nil
}

type Reporting struct {
	Sentry *Sentry `yaml:"sentry"`
}

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Metrics struct {
	Namespace string   `yaml:"namespace"`
	Tags      []string `yaml:"tags"`
}

type Settings struct {
	Dataset   *Dataset   `yaml:"dataset"`
	Generator *Generator `yaml:"generator"`
	Training  *Training  `yaml:"training"`
	Reporting *Reporting `yaml:"reporting"`
	Metrics   *Metrics   `yaml:"metrics"`
}

// GenerateDefault fills in the optional sections so callers don't have to
// nil-check them; the generator section's own defaults (batch size, shuffle)
// are applied by the generator package.
func (s *Settings) GenerateDefault() {
	if s.Generator == nil {
		s.Generator = &Generator{}
	}

	if s.Training == nil {
		s.Training = &Training{}
	}
	s.Training.GenerateDefault()
}

func (s *Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("config is nil")
	}

	if err := s.Dataset.Validate(); err != nil {
		return fmt.Errorf("dataset validation failed: %w", err)
	}

	if s.Generator != nil {
		if err := s.Generator.Validate(); err != nil {
			return fmt.Errorf("generator validation failed: %w", err)
		}
	}

	if s.Training != nil {
		if err := s.Training.Validate(); err != nil {
			return fmt.Errorf("training validation failed: %w", err)
		}
	}

	return nil
}

func ReadConfig(fp string) (*Settings, error) {
	bytes, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err = yaml.Unmarshal(bytes, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if err = settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config file: %w", err)
	}

	settings.GenerateDefault()
	return &settings, nil
}
