package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/heatsim/internal/heat"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "dirichlet" {
		t.Errorf("expected scenario dirichlet, got %s", cfg.Scenario)
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Nodes < heat.MinNodes {
		t.Errorf("nodes %d leaves no interior", cfg.Nodes)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("neumann", "source")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Q != 10000 {
		t.Errorf("expected q 10000, got %f", cfg.Q)
	}
	if cfg.Initial != 10 {
		t.Errorf("expected initial 10, got %f", cfg.Initial)
	}

	cfg.Q = 1
	if Presets["neumann"]["source"].Q != 10000 {
		t.Error("GetPreset returned a shared pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("dirichlet", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "plate"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("dirichlet")
	if len(presets) == 0 {
		t.Error("expected presets for dirichlet")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
	if len(ListScenarios()) != 2 {
		t.Errorf("expected 2 scenarios, got %v", ListScenarios())
	}
}

func TestPresetsAreValid(t *testing.T) {
	for scenario, presets := range Presets {
		for name, cfg := range presets {
			dims, err := cfg.Dims()
			if err != nil {
				t.Errorf("%s/%s: %v", scenario, name, err)
				continue
			}
			for _, dim := range dims {
				if _, err := cfg.HeatConfig(dim); err != nil {
					t.Errorf("%s/%s %s: %v", scenario, name, dim, err)
				}
			}
		}
	}
}

func TestHeatConfig(t *testing.T) {
	cfg := GetPreset("neumann", "source")
	hc, err := cfg.HeatConfig(heat.Dim2)
	if err != nil {
		t.Fatalf("HeatConfig failed: %v", err)
	}
	if hc.Boundary != heat.BoundaryZeroFluxForcing {
		t.Errorf("expected zero-flux boundary, got %s", hc.Boundary)
	}
	if hc.Dim != heat.Dim2 || hc.Nodes != 100 || hc.A != 10 {
		t.Errorf("unexpected conversion: %+v", hc)
	}

	cfg.Nodes = 2
	if _, err := cfg.HeatConfig(heat.Dim1); !errors.Is(err, heat.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Boundary = "periodic"
	if _, err := cfg.HeatConfig(heat.Dim1); !errors.Is(err, heat.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestDims(t *testing.T) {
	tests := []struct {
		dim    string
		want   int
		paired bool
	}{
		{"both", 2, true},
		{"", 2, true},
		{"1", 1, false},
		{"2d", 1, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Dim = tt.dim
		dims, err := cfg.Dims()
		if err != nil {
			t.Fatalf("Dims(%q) failed: %v", tt.dim, err)
		}
		if len(dims) != tt.want || cfg.Paired() != tt.paired {
			t.Errorf("Dims(%q) = %v paired=%v", tt.dim, dims, cfg.Paired())
		}
	}

	cfg := DefaultConfig()
	cfg.Dim = "3"
	if _, err := cfg.Dims(); err == nil {
		t.Error("expected error for 3 dimensions")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heat.yaml")

	cfg := GetPreset("neumann", "quick")
	cfg.Workers = 3
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordEvery = 0
	if cfg.Stride() != 1 {
		t.Errorf("expected stride 1, got %d", cfg.Stride())
	}
	cfg.RecordEvery = 7
	if cfg.Stride() != 7 {
		t.Errorf("expected stride 7, got %d", cfg.Stride())
	}
}

func TestLoadOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("duration: 3\nnodes: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("neumann", "source")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Duration != 3 || cfg.Nodes != 30 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Q != 10000 || cfg.Boundary != "zeroflux" {
		t.Errorf("preset values lost: %+v", cfg)
	}
	if base.Duration != 20 {
		t.Error("base must not be modified")
	}

	if err := os.WriteFile(path, []byte("nodes: [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOver(path, base); err == nil {
		t.Error("expected parse error")
	}
}
