package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/heat"
)

// HeatContent is the integral ∑u·dxᵈ of the latest snapshot.
type HeatContent struct {
	name    string
	content float64
	samples int
}

func NewHeatContent() *HeatContent {
	return &HeatContent{name: "heat_content"}
}

func (h *HeatContent) Name() string { return h.name }

func (h *HeatContent) Observe(g *heat.Grid, s heat.Snapshot) {
	h.content = s.Field.Sum() * g.CellVolume()
	h.samples++
}

func (h *HeatContent) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.content
}

func (h *HeatContent) Reset() {
	h.content = 0
	h.samples = 0
}

// HeatDrift is the relative change of the field sum between the first and
// the latest snapshot.
type HeatDrift struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewHeatDrift() *HeatDrift {
	return &HeatDrift{name: "heat_drift"}
}

func (h *HeatDrift) Name() string { return h.name }

func (h *HeatDrift) Observe(_ *heat.Grid, s heat.Snapshot) {
	sum := s.Field.Sum()
	if h.samples == 0 {
		h.initial = sum
	}
	h.current = sum
	h.samples++
}

func (h *HeatDrift) Value() float64 {
	if h.samples == 0 || h.initial == 0 {
		return 0
	}
	return (h.current - h.initial) / math.Abs(h.initial)
}

func (h *HeatDrift) Reset() {
	h.initial = 0
	h.current = 0
	h.samples = 0
}
