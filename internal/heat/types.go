package heat

import (
	"fmt"
	"math"
)

// Snapshot is a copy of the field after one step, stamped with the elapsed
// time at the start of that step. It is never mutated after creation.
type Snapshot struct {
	Field Field
	Time  float64
	Step  int
}

// Observer is notified after every step.
type Observer interface {
	OnStep(g *Grid, s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(g *Grid, s Snapshot)

func (f ObserverFunc) OnStep(g *Grid, s Snapshot) { f(g, s) }

// Config describes one run.
type Config struct {
	A             float64
	Length        float64
	Duration      float64
	Nodes         int
	Dim           Dim
	Boundary      BoundaryKind
	Q             float64
	Initial       float64
	BoundaryValue float64

	// Dt overrides the derived step when positive.
	Dt float64
	// StrictCFL rejects a caller-supplied Dt above the stability bound.
	StrictCFL bool
	// ValidateField stops the run with ErrInstabilityRisk on NaN/Inf.
	ValidateField bool
	// Workers bounds the goroutines used per 2D step; 0 means NumCPU.
	Workers int
}

// Scenario preset values.
const (
	DirichletInitial  = 20.0
	DirichletBoundary = 100.0
	NeumannInitial    = 10.0

	// ColorMin and ColorMax bound the physical temperature range of both presets.
	ColorMin = 0.0
	ColorMax = 100.0
)

// DefaultConfig is the fixed-boundary plate: a=110, 50 mm, 8 s, 50 nodes.
func DefaultConfig() Config {
	return Config{
		A:             110,
		Length:        50,
		Duration:      8,
		Nodes:         50,
		Dim:           Dim1,
		Boundary:      BoundaryFixed,
		Initial:       DirichletInitial,
		BoundaryValue: DirichletBoundary,
	}
}

// Validate checks the configuration without building any state.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"a", c.A},
		{"length", c.Length},
		{"duration", c.Duration},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return &ConfigError{Field: p.name, Reason: fmt.Sprintf("must be positive and finite, got %g", p.v)}
		}
	}
	if c.Nodes < MinNodes {
		return &ConfigError{Field: "nodes", Reason: fmt.Sprintf("must be at least %d, got %d", MinNodes, c.Nodes)}
	}
	if c.Dim != Dim1 && c.Dim != Dim2 {
		return &ConfigError{Field: "dim", Reason: fmt.Sprintf("must be 1 or 2, got %d", int(c.Dim))}
	}
	if c.Boundary != BoundaryFixed && c.Boundary != BoundaryZeroFluxForcing {
		return &ConfigError{Field: "boundary", Reason: fmt.Sprintf("unsupported kind %d", int(c.Boundary))}
	}
	if c.Dt < 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return &ConfigError{Field: "dt", Reason: fmt.Sprintf("must be positive when set, got %g", c.Dt)}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"q", c.Q}, {"initial", c.Initial}, {"boundary_value", c.BoundaryValue}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigError{Field: f.name, Reason: "must be finite"}
		}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: fmt.Sprintf("must not be negative, got %d", c.Workers)}
	}
	return nil
}

// Dx is the grid spacing length/nodes.
func (c Config) Dx() float64 { return c.Length / float64(c.Nodes) }

// StepSize returns the caller's Dt or, when unset, the bound for c.Dim.
func (c Config) StepSize() float64 {
	if c.Dt > 0 {
		return c.Dt
	}
	return MaxStableDt(c.Dim, c.A, c.Dx())
}

// StepCount is ceil(duration/dt): the number of stamps 0, dt, 2dt, ... below
// duration. The ratio is corrected for rounding against the stamps themselves.
func StepCount(duration, dt float64) int {
	steps := int(math.Ceil(duration / dt))
	for float64(steps)*dt < duration {
		steps++
	}
	for steps > 0 && float64(steps-1)*dt >= duration {
		steps--
	}
	return steps
}

// Result is the full output of a completed run.
type Result struct {
	Config    Config
	Dt        float64
	Steps     int
	Snapshots []Snapshot
}

// Times returns the stamps of the recorded snapshots in order.
func (r *Result) Times() []float64 {
	t := make([]float64, len(r.Snapshots))
	for i, s := range r.Snapshots {
		t[i] = s.Time
	}
	return t
}

// Final returns the last snapshot, or false when nothing was recorded.
func (r *Result) Final() (Snapshot, bool) {
	if len(r.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return r.Snapshots[len(r.Snapshots)-1], true
}
