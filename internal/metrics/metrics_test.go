package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/heatsim/internal/heat"
)

func TestSet_AsRunnerObserver(t *testing.T) {
	cfg := heat.DefaultConfig()
	cfg.Nodes = 12
	cfg.Duration = 1

	set := Default()
	r, err := heat.NewRunner(cfg, heat.WithObserver(set))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	values := set.Values()
	for _, name := range []string{"heat_content", "heat_drift", "peak", "trough", "center", "in_color_range", "finite"} {
		if _, ok := values[name]; !ok {
			t.Errorf("metric %s not found", name)
		}
	}

	if values["in_color_range"] != 1 || values["finite"] != 1 {
		t.Errorf("plate run left [0,100]: in_color_range=%v finite=%v", values["in_color_range"], values["finite"])
	}
	if values["peak"] != heat.DirichletBoundary {
		t.Errorf("peak = %v, want boundary value", values["peak"])
	}
	final, _ := res.Final()
	if values["center"] != final.Field[cfg.Nodes/2] {
		t.Errorf("center = %v, want %v", values["center"], final.Field[cfg.Nodes/2])
	}
	if values["heat_drift"] <= 0 {
		t.Errorf("heating plate should gain heat, drift = %v", values["heat_drift"])
	}

	set.Reset()
	if set.Values()["peak"] != 0 {
		t.Error("reset did not clear peak")
	}
}

func TestDefault_ForcingRunLeavesColorRangeButStaysFinite(t *testing.T) {
	cfg := heat.DefaultConfig()
	cfg.A = 10
	cfg.Nodes = 10
	cfg.Duration = 5
	cfg.Boundary = heat.BoundaryZeroFluxForcing
	cfg.Q = 10000
	cfg.Initial = heat.NeumannInitial

	set := Default()
	r, err := heat.NewRunner(cfg, heat.WithObserver(set))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	values := set.Values()
	if values["finite"] != 1 {
		t.Errorf("stable forcing run reported finite=%v", values["finite"])
	}
	if values["in_color_range"] >= 1 {
		t.Errorf("source should push the center above 100, in_color_range=%v", values["in_color_range"])
	}
}
