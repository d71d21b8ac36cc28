package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/heatsim/internal/heat"
)

func testGrid(t *testing.T, dim heat.Dim, nodes int) *heat.Grid {
	t.Helper()
	g, err := heat.NewGrid(dim, nodes, float64(nodes)*0.5, 0)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

func TestHeatContent(t *testing.T) {
	g := testGrid(t, heat.Dim2, 4) // dx = 0.5
	m := NewHeatContent()

	field := make(heat.Field, 16)
	for i := range field {
		field[i] = 10
	}
	m.Observe(g, heat.Snapshot{Field: field})

	if expected := 160 * 0.25; math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected heat content %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero heat content after reset")
	}
}

func TestHeatDrift(t *testing.T) {
	g := testGrid(t, heat.Dim1, 3)
	m := NewHeatDrift()

	m.Observe(g, heat.Snapshot{Field: heat.Field{10, 10, 10}})
	m.Observe(g, heat.Snapshot{Field: heat.Field{10, 15, 20}})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected drift 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestExtrema(t *testing.T) {
	g := testGrid(t, heat.Dim1, 5)
	peak, trough, center := NewPeak(), NewTrough(), NewCenter()

	for _, f := range []heat.Field{{20, 30, 40, 30, 20}, {100, 35, 42, 35, 5}} {
		s := heat.Snapshot{Field: f}
		peak.Observe(g, s)
		trough.Observe(g, s)
		center.Observe(g, s)
	}

	if peak.Value() != 100 {
		t.Errorf("peak = %v, want 100", peak.Value())
	}
	if trough.Value() != 5 {
		t.Errorf("trough = %v, want 5", trough.Value())
	}
	if center.Value() != 42 {
		t.Errorf("center = %v, want 42", center.Value())
	}

	peak.Reset()
	if peak.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}

func TestInColorRange(t *testing.T) {
	g := testGrid(t, heat.Dim1, 3)
	s := NewInColorRange(0, 100)

	if s.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %v", s.Value())
	}

	s.Observe(g, heat.Snapshot{Field: heat.Field{0, 50, 100}})
	s.Observe(g, heat.Snapshot{Field: heat.Field{0, 101, 100}})
	s.Observe(g, heat.Snapshot{Field: heat.Field{0, math.NaN(), 100}})
	s.Observe(g, heat.Snapshot{Field: heat.Field{1, 2, 3}})

	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", s.Value())
	}
}

func TestFinite(t *testing.T) {
	g := testGrid(t, heat.Dim1, 3)
	f := NewFinite()

	f.Observe(g, heat.Snapshot{Field: heat.Field{0, 500, 100}})
	f.Observe(g, heat.Snapshot{Field: heat.Field{0, math.Inf(1), 100}})
	if f.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", f.Value())
	}

	f.Reset()
	if f.Value() != 1 {
		t.Errorf("expected 1 after reset, got %v", f.Value())
	}
}
