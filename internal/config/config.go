package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/heat"
)

const (
	DefaultScenario    = "dirichlet"
	DefaultDim         = "both"
	DefaultA           = 110.0
	DefaultLength      = 50.0
	DefaultDuration    = 8.0
	DefaultNodes       = 50
	DefaultBoundary    = "fixed"
	DefaultRecordEvery = 1
)

type Config struct {
	Scenario      string  `yaml:"scenario"`
	Dim           string  `yaml:"dim"`
	A             float64 `yaml:"a"`
	Length        float64 `yaml:"length"`
	Duration      float64 `yaml:"duration"`
	Nodes         int     `yaml:"nodes"`
	Boundary      string  `yaml:"boundary"`
	Q             float64 `yaml:"q"`
	Initial       float64 `yaml:"initial"`
	BoundaryValue float64 `yaml:"boundary_value"`
	Dt            float64 `yaml:"dt"`
	StrictCFL     bool    `yaml:"strict_cfl"`
	ValidateField bool    `yaml:"validate_field"`
	Workers       int     `yaml:"workers"`
	RecordEvery   int     `yaml:"record_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Dim:           DefaultDim,
		A:             DefaultA,
		Length:        DefaultLength,
		Duration:      DefaultDuration,
		Nodes:         DefaultNodes,
		Boundary:      DefaultBoundary,
		Initial:       heat.DirichletInitial,
		BoundaryValue: heat.DirichletBoundary,
		RecordEvery:   DefaultRecordEvery,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dims expands the dim setting; "both" runs 1D and 2D side by side.
func (c *Config) Dims() ([]heat.Dim, error) {
	if c.Dim == "both" || c.Dim == "" {
		return []heat.Dim{heat.Dim1, heat.Dim2}, nil
	}
	d, err := heat.ParseDim(c.Dim)
	if err != nil {
		return nil, err
	}
	return []heat.Dim{d}, nil
}

// Paired reports whether the config asks for a side-by-side 1D/2D run.
func (c *Config) Paired() bool {
	return c.Dim == "both" || c.Dim == ""
}

// HeatConfig converts to the engine configuration for one dimensionality.
func (c *Config) HeatConfig(dim heat.Dim) (heat.Config, error) {
	kind, err := heat.ParseBoundaryKind(c.Boundary)
	if err != nil {
		return heat.Config{}, err
	}
	hc := heat.Config{
		A:             c.A,
		Length:        c.Length,
		Duration:      c.Duration,
		Nodes:         c.Nodes,
		Dim:           dim,
		Boundary:      kind,
		Q:             c.Q,
		Initial:       c.Initial,
		BoundaryValue: c.BoundaryValue,
		Dt:            c.Dt,
		StrictCFL:     c.StrictCFL,
		ValidateField: c.ValidateField,
		Workers:       c.Workers,
	}
	if err := hc.Validate(); err != nil {
		return heat.Config{}, fmt.Errorf("scenario %s: %w", c.Scenario, err)
	}
	return hc, nil
}

// Stride is the recording stride, at least 1.
func (c *Config) Stride() int {
	if c.RecordEvery < 1 {
		return 1
	}
	return c.RecordEvery
}
