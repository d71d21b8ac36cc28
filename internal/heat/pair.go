package heat

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair holds the results of a side-by-side 1D and 2D run.
type Pair struct {
	OneD *Result
	TwoD *Result
}

// PairOptions supplies runner options per dimensionality, so each side of a
// pair can carry its own observers.
type PairOptions func(dim Dim) []Option

// RunPair runs cfg in 1D and 2D concurrently. Unless cfg.Dt is set, both
// use CommonDt so their snapshots line up step for step. Observers passed in
// opts are shared by both runners and must be safe for concurrent use.
func RunPair(ctx context.Context, cfg Config, opts ...Option) (*Pair, error) {
	return RecordPair(ctx, cfg, 1, func(Dim) []Option { return opts })
}

// RecordPair is RunPair with a recording stride and per-dimension options.
// Both runners are built before either starts, so a configuration rejected
// for one dimensionality never leaves the other running.
func RecordPair(ctx context.Context, cfg Config, stride int, optsFor PairOptions) (*Pair, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Dt == 0 {
		cfg.Dt = CommonDt(cfg.A, cfg.Dx())
	}

	dims := [2]Dim{Dim1, Dim2}
	var runners [2]*Runner
	for i, dim := range dims {
		c := cfg
		c.Dim = dim
		var opts []Option
		if optsFor != nil {
			opts = optsFor(dim)
		}
		r, err := NewRunner(c, opts...)
		if err != nil {
			return nil, err
		}
		runners[i] = r
	}

	var results [2]*Result
	eg, egCtx := errgroup.WithContext(ctx)
	for i, r := range runners {
		eg.Go(func() error {
			res, err := Record(egCtx, r, stride)
			results[i] = res
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &Pair{OneD: results[0], TwoD: results[1]}, nil
}
