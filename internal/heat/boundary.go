package heat

import "fmt"

// BoundaryKind selects the boundary policy.
type BoundaryKind int

const (
	BoundaryFixed BoundaryKind = iota
	BoundaryZeroFluxForcing
)

func (k BoundaryKind) String() string {
	switch k {
	case BoundaryFixed:
		return "fixed"
	case BoundaryZeroFluxForcing:
		return "zeroflux"
	default:
		return fmt.Sprintf("boundary(%d)", int(k))
	}
}

// ParseBoundaryKind accepts the names used in config files and flags.
func ParseBoundaryKind(s string) (BoundaryKind, error) {
	switch s {
	case "fixed", "dirichlet":
		return BoundaryFixed, nil
	case "zeroflux", "neumann", "zeroflux_forcing":
		return BoundaryZeroFluxForcing, nil
	}
	return 0, &ConfigError{Field: "boundary", Reason: fmt.Sprintf("unknown boundary %q", s)}
}

// Boundary is applied once at initialization and once after every interior update.
type Boundary interface {
	Kind() BoundaryKind
	Init(g *Grid)
	Apply(g *Grid, dt float64)
}

// NewBoundary builds the policy for kind from the run configuration.
func NewBoundary(kind BoundaryKind, value, q float64) (Boundary, error) {
	switch kind {
	case BoundaryFixed:
		return &Fixed{Value: value}, nil
	case BoundaryZeroFluxForcing:
		return &ZeroFluxForcing{Q: q}, nil
	}
	return nil, &ConfigError{Field: "boundary", Reason: fmt.Sprintf("unsupported kind %d", int(kind))}
}

// Fixed holds every edge node at Value. The stencil never writes edges, so
// nothing happens per step.
type Fixed struct {
	Value float64
}

func (b *Fixed) Kind() BoundaryKind { return BoundaryFixed }

func (b *Fixed) Init(g *Grid) {
	n, u := g.Nodes, g.Field
	if g.Dim == Dim1 {
		u[0], u[n-1] = b.Value, b.Value
		return
	}
	for k := 0; k < n; k++ {
		u[k] = b.Value
		u[(n-1)*n+k] = b.Value
		u[k*n] = b.Value
		u[k*n+n-1] = b.Value
	}
}

func (b *Fixed) Apply(*Grid, float64) {}

// ZeroFluxForcing copies the adjacent interior value onto each edge and then
// adds Q·dt at the center node.
type ZeroFluxForcing struct {
	Q float64
}

func (b *ZeroFluxForcing) Kind() BoundaryKind { return BoundaryZeroFluxForcing }

func (b *ZeroFluxForcing) Init(*Grid) {}

func (b *ZeroFluxForcing) Apply(g *Grid, dt float64) {
	n, u := g.Nodes, g.Field
	if g.Dim == Dim1 {
		u[0] = u[1]
		u[n-1] = u[n-2]
	} else {
		// Rows first, then columns: corners end up with the column copy.
		copy(u[:n], u[n:2*n])
		copy(u[(n-1)*n:], u[(n-2)*n:(n-1)*n])
		for i := 0; i < n; i++ {
			row := u[i*n : (i+1)*n]
			row[0] = row[1]
			row[n-1] = row[n-2]
		}
	}
	u[g.Center()] += b.Q * dt
}
