package metrics

import "github.com/san-kum/heatsim/internal/heat"

// InColorRange is the fraction of snapshots whose values all lie in [lo, hi].
// Forcing runs leave the display range while perfectly stable, so this says
// nothing about stability; see Finite.
type InColorRange struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewInColorRange(lo, hi float64) *InColorRange {
	return &InColorRange{
		name: "in_color_range",
		lo:   lo,
		hi:   hi,
	}
}

func (c *InColorRange) Name() string {
	return c.name
}

func (c *InColorRange) Observe(_ *heat.Grid, snap heat.Snapshot) {
	c.samples++
	if !snap.Field.IsValid() {
		c.violations++
		return
	}
	lo, hi := snap.Field.Range()
	if lo < c.lo || hi > c.hi {
		c.violations++
	}
}

func (c *InColorRange) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *InColorRange) Reset() {
	c.violations = 0
	c.samples = 0
}

// Finite is the fraction of snapshots free of NaN and Inf.
type Finite struct {
	invalid int
	samples int
}

func NewFinite() *Finite { return &Finite{} }

func (f *Finite) Name() string { return "finite" }

func (f *Finite) Observe(_ *heat.Grid, snap heat.Snapshot) {
	f.samples++
	if !snap.Field.IsValid() {
		f.invalid++
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.invalid)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.invalid = 0
	f.samples = 0
}
