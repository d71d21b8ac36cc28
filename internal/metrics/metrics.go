package metrics

import "github.com/san-kum/heatsim/internal/heat"

// Metric accumulates a scalar over the snapshots of a run.
type Metric interface {
	Name() string
	Observe(g *heat.Grid, s heat.Snapshot)
	Value() float64
	Reset()
}

// Set fans every step out to its metrics. It implements heat.Observer.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics recorded with every stored run.
func Default() *Set {
	return NewSet(
		NewHeatContent(),
		NewHeatDrift(),
		NewPeak(),
		NewTrough(),
		NewCenter(),
		NewInColorRange(heat.ColorMin, heat.ColorMax),
		NewFinite(),
	)
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnStep(g *heat.Grid, snap heat.Snapshot) {
	for _, m := range s.metrics {
		m.Observe(g, snap)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Values maps metric names to their current values.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
