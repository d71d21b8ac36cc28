package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

// Peak is the largest value seen in any snapshot.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak", max: math.Inf(-1)}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(_ *heat.Grid, s heat.Snapshot) {
	_, hi := s.Field.Range()
	p.max = math.Max(p.max, hi)
}

func (p *Peak) Value() float64 {
	if math.IsInf(p.max, -1) {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() { p.max = math.Inf(-1) }

// Trough is the smallest value seen in any snapshot.
type Trough struct {
	name string
	min  float64
}

func NewTrough() *Trough {
	return &Trough{name: "trough", min: math.Inf(1)}
}

func (t *Trough) Name() string { return t.name }

func (t *Trough) Observe(_ *heat.Grid, s heat.Snapshot) {
	lo, _ := s.Field.Range()
	t.min = math.Min(t.min, lo)
}

func (t *Trough) Value() float64 {
	if math.IsInf(t.min, 1) {
		return 0
	}
	return t.min
}

func (t *Trough) Reset() { t.min = math.Inf(1) }

// Center is the center-node temperature of the latest snapshot.
type Center struct {
	name  string
	value float64
}

func NewCenter() *Center {
	return &Center{name: "center"}
}

func (c *Center) Name() string { return c.name }

func (c *Center) Observe(g *heat.Grid, s heat.Snapshot) {
	c.value = s.Field[g.Center()]
}

func (c *Center) Value() float64 { return c.value }

func (c *Center) Reset() { c.value = 0 }
