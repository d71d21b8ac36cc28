package heat

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// State is the lifecycle position of a Runner.
type State int

const (
	StateInitialized State = iota
	StateStepping
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateStepping:
		return "stepping"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Runner advances one grid through a fixed number of explicit steps.
type Runner struct {
	cfg       Config
	grid      *Grid
	prev      Field
	boundary  Boundary
	stencil   *Stencil
	dt        float64
	steps     int
	state     State
	observers []Observer
	log       *zap.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger; runners are silent by default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers an observer called after every step.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// NewRunner validates cfg and builds the initial grid with boundaries applied.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dt := cfg.StepSize()
	if cfg.StrictCFL {
		if err := CheckStable(cfg.Dim, cfg.A, cfg.Dx(), dt); err != nil {
			return nil, err
		}
	}

	boundary, err := NewBoundary(cfg.Boundary, cfg.BoundaryValue, cfg.Q)
	if err != nil {
		return nil, err
	}

	grid, err := NewGrid(cfg.Dim, cfg.Nodes, cfg.Length, cfg.Initial)
	if err != nil {
		return nil, err
	}
	boundary.Init(grid)

	r := &Runner{
		cfg:      cfg,
		grid:     grid,
		prev:     make(Field, len(grid.Field)),
		boundary: boundary,
		stencil:  NewStencil(cfg.Workers),
		dt:       dt,
		steps:    StepCount(cfg.Duration, dt),
		state:    StateInitialized,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Dt is the step size used by the run.
func (r *Runner) Dt() float64 { return r.dt }

// Steps is the number of snapshots the run produces.
func (r *Runner) Steps() int { return r.steps }

func (r *Runner) State() State { return r.state }

// Grid exposes the live grid. Callers must not modify it while stepping.
func (r *Runner) Grid() *Grid { return r.grid }

// Run steps to completion and returns every snapshot.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Config:    r.cfg,
		Dt:        r.dt,
		Steps:     r.steps,
		Snapshots: make([]Snapshot, 0, r.steps),
	}
	err := r.Stream(ctx, func(s Snapshot) error {
		result.Snapshots = append(result.Snapshots, s)
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// Stream steps to completion, handing each snapshot to fn instead of
// retaining it. A non-nil error from fn stops the run and is returned.
// A runner streams at most once: a stopped or canceled run is complete and
// cannot be resumed.
func (r *Runner) Stream(ctx context.Context, fn func(Snapshot) error) error {
	if r.state != StateInitialized {
		return ErrRunComplete
	}
	r.state = StateStepping

	r.log.Debug("heat run started",
		zap.Stringer("dim", r.cfg.Dim),
		zap.Stringer("boundary", r.cfg.Boundary),
		zap.Int("nodes", r.cfg.Nodes),
		zap.Float64("dt", r.dt),
		zap.Int("steps", r.steps))

	for i := 0; i < r.steps; i++ {
		select {
		case <-ctx.Done():
			r.state = StateComplete
			return ctx.Err()
		default:
		}

		t := float64(i) * r.dt
		r.step()

		if r.cfg.ValidateField && !r.grid.Field.IsValid() {
			r.state = StateComplete
			return &StepError{Step: i, Time: t, Wrapped: fmt.Errorf("%w: field diverged (NaN/Inf)", ErrInstabilityRisk)}
		}

		snap := Snapshot{Field: r.grid.Field.Clone(), Time: t, Step: i}
		for _, obs := range r.observers {
			obs.OnStep(r.grid, snap)
		}
		if err := fn(snap); err != nil {
			r.state = StateComplete
			return err
		}
	}

	r.state = StateComplete
	r.log.Debug("heat run complete", zap.Int("steps", r.steps), zap.Float64("elapsed", float64(r.steps)*r.dt))
	return nil
}

// step runs one stencil update followed by the boundary policy.
func (r *Runner) step() {
	copy(r.prev, r.grid.Field)
	r.stencil.Step(r.grid, r.prev, r.cfg.A, r.dt)
	r.boundary.Apply(r.grid, r.dt)
}
