package heat

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelMinRows is the interior row count below which splitting is not worth it.
const parallelMinRows = 32

// Stencil applies the explicit diffusion update to interior nodes. It reads
// only from prev, the field as it was before the step, and writes g.Field.
type Stencil struct {
	workers int
}

// NewStencil returns a stencil using up to workers goroutines per step.
// workers <= 0 selects runtime.NumCPU().
func NewStencil(workers int) *Stencil {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Stencil{workers: workers}
}

func (s *Stencil) Workers() int { return s.workers }

// Step updates g.Field from prev. prev must have the same length as g.Field
// and must not alias it.
func (s *Stencil) Step(g *Grid, prev Field, a, dt float64) {
	c := dt * a
	dx2 := g.Dx * g.Dx

	if g.Dim == Dim1 {
		step1D(g.Field, prev, c, dx2)
		return
	}

	interior := g.Nodes - 2
	if s.workers <= 1 || interior < parallelMinRows {
		step2DRows(g.Field, prev, g.Nodes, 1, g.Nodes-1, c, dx2)
		return
	}

	var eg errgroup.Group
	chunk := (interior + s.workers - 1) / s.workers
	for lo := 1; lo < g.Nodes-1; lo += chunk {
		hi := min(lo+chunk, g.Nodes-1)
		eg.Go(func() error {
			step2DRows(g.Field, prev, g.Nodes, lo, hi, c, dx2)
			return nil
		})
	}
	_ = eg.Wait()
}

func step1D(u, w Field, c, dx2 float64) {
	for i := 1; i < len(w)-1; i++ {
		u[i] = c*(w[i-1]-2*w[i]+w[i+1])/dx2 + w[i]
	}
}

// step2DRows updates rows [lo, hi) of an n×n field.
func step2DRows(u, w Field, n, lo, hi int, c, dx2 float64) {
	for i := lo; i < hi; i++ {
		for j := 1; j < n-1; j++ {
			k := i*n + j
			u[k] = c*((w[k-n]-2*w[k]+w[k+n])/dx2+(w[k-1]-2*w[k]+w[k+1])/dx2) + w[k]
		}
	}
}
