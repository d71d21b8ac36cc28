package heat

import (
	"fmt"
	"math"
)

// Dim is the number of spatial axes of a grid.
type Dim int

const (
	Dim1 Dim = 1
	Dim2 Dim = 2
)

func (d Dim) String() string {
	switch d {
	case Dim1:
		return "1d"
	case Dim2:
		return "2d"
	default:
		return fmt.Sprintf("dim(%d)", int(d))
	}
}

// ParseDim accepts "1", "1d", "2" or "2d".
func ParseDim(s string) (Dim, error) {
	switch s {
	case "1", "1d", "1D":
		return Dim1, nil
	case "2", "2d", "2D":
		return Dim2, nil
	}
	return 0, &ConfigError{Field: "dim", Reason: fmt.Sprintf("unknown dimensionality %q", s)}
}

// MinNodes is the smallest node count per axis that leaves an interior.
const MinNodes = 3

// Field is a row-major temperature array.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsValid reports whether every value is finite.
func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum adds the values in index order, so equal fields give equal sums.
func (f Field) Sum() float64 {
	s := 0.0
	for _, v := range f {
		s += v
	}
	return s
}

// Range returns the smallest and largest value.
func (f Field) Range() (lo, hi float64) {
	if len(f) == 0 {
		return 0, 0
	}
	lo, hi = f[0], f[0]
	for _, v := range f[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Grid owns the field and its spatial metadata.
type Grid struct {
	Dim    Dim
	Nodes  int
	Length float64
	Dx     float64
	Field  Field
}

// NewGrid allocates a grid with every node set to fill.
func NewGrid(dim Dim, nodes int, length, fill float64) (*Grid, error) {
	if dim != Dim1 && dim != Dim2 {
		return nil, &ConfigError{Field: "dim", Reason: fmt.Sprintf("must be 1 or 2, got %d", int(dim))}
	}
	if nodes < MinNodes {
		return nil, &ConfigError{Field: "nodes", Reason: fmt.Sprintf("must be at least %d, got %d", MinNodes, nodes)}
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, &ConfigError{Field: "length", Reason: fmt.Sprintf("must be positive, got %g", length)}
	}

	size := nodes
	if dim == Dim2 {
		size = nodes * nodes
	}
	field := make(Field, size)
	for i := range field {
		field[i] = fill
	}

	return &Grid{
		Dim:    dim,
		Nodes:  nodes,
		Length: length,
		Dx:     length / float64(nodes),
		Field:  field,
	}, nil
}

// Index returns the linear index of (row, col). 1D grids ignore row.
func (g *Grid) Index(row, col int) int {
	if g.Dim == Dim1 {
		return col
	}
	return row*g.Nodes + col
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 { return g.Field[g.Index(row, col)] }

// Center returns the index of the geometric center node, nodes/2 on every axis.
func (g *Grid) Center() int {
	c := g.Nodes / 2
	return g.Index(c, c)
}

// CellVolume is dx for 1D grids and dx² for 2D grids.
func (g *Grid) CellVolume() float64 {
	if g.Dim == Dim2 {
		return g.Dx * g.Dx
	}
	return g.Dx
}

// IsBoundary reports whether the linear index lies on the grid edge.
func (g *Grid) IsBoundary(idx int) bool {
	last := g.Nodes - 1
	if g.Dim == Dim1 {
		return idx == 0 || idx == last
	}
	row, col := idx/g.Nodes, idx%g.Nodes
	return row == 0 || row == last || col == 0 || col == last
}
