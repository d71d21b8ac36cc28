package render

import "github.com/san-kum/heatsim/internal/heat"

// Frame is one snapshot with the geometry needed to draw it.
type Frame struct {
	Field heat.Field
	Time  float64
	Dim   heat.Dim
	Nodes int
}

// Rows returns the number of display rows: 1 for 1D, nodes for 2D.
func (f Frame) Rows() int {
	if f.Dim == heat.Dim2 {
		return f.Nodes
	}
	return 1
}

// At returns the value at display position (row, col).
func (f Frame) At(row, col int) float64 {
	if f.Dim == heat.Dim2 {
		return f.Field[row*f.Nodes+col]
	}
	return f.Field[col]
}

// Center returns the center-node value.
func (f Frame) Center() float64 {
	c := f.Nodes / 2
	if f.Dim == heat.Dim2 {
		return f.Field[c*f.Nodes+c]
	}
	return f.Field[c]
}

// Profile returns the 1D field or the center row of a 2D field.
func (f Frame) Profile() []float64 {
	if f.Dim == heat.Dim2 {
		c := f.Nodes / 2
		return f.Field[c*f.Nodes : (c+1)*f.Nodes]
	}
	return f.Field
}

// Frames wraps snapshots of one run.
func Frames(dim heat.Dim, nodes int, snapshots []heat.Snapshot) []Frame {
	out := make([]Frame, len(snapshots))
	for i, s := range snapshots {
		out[i] = Frame{Field: s.Field, Time: s.Time, Dim: dim, Nodes: nodes}
	}
	return out
}

// FramesOf wraps every snapshot of a result.
func FramesOf(res *heat.Result) []Frame {
	return Frames(res.Config.Dim, res.Config.Nodes, res.Snapshots)
}

// Renderer displays a snapshot at its time stamp.
type Renderer interface {
	Render(f Frame) error
}

// RenderAll feeds frames to r in order.
func RenderAll(r Renderer, frames []Frame) error {
	for _, f := range frames {
		if err := r.Render(f); err != nil {
			return err
		}
	}
	return nil
}

// sample picks n evenly spaced indices out of [0, size).
func sample(size, n int) []int {
	if n <= 0 || n >= size {
		n = size
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i * size / n
	}
	return idx
}
