package heat

import "context"

// Record runs r to completion keeping every stride-th snapshot and always the
// last one. With stride <= 1 it is equivalent to r.Run.
func Record(ctx context.Context, r *Runner, stride int) (*Result, error) {
	if stride <= 1 {
		return r.Run(ctx)
	}

	result := &Result{
		Config:    r.cfg,
		Dt:        r.dt,
		Steps:     r.steps,
		Snapshots: make([]Snapshot, 0, r.steps/stride+1),
	}
	last := r.steps - 1
	err := r.Stream(ctx, func(s Snapshot) error {
		if s.Step%stride == 0 || s.Step == last {
			result.Snapshots = append(result.Snapshots, s)
		}
		return nil
	})
	return result, err
}
