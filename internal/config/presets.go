package config

import (
	"sort"

	"github.com/san-kum/heatsim/internal/heat"
)

var Presets = map[string]map[string]*Config{
	"dirichlet": {
		"plate": {
			Scenario: "dirichlet", Dim: "both", A: 110, Length: 50, Duration: 8, Nodes: 50,
			Boundary: "fixed", Initial: heat.DirichletInitial, BoundaryValue: heat.DirichletBoundary,
			RecordEvery: 10,
		},
		"quick": {
			Scenario: "dirichlet", Dim: "both", A: 110, Length: 50, Duration: 1, Nodes: 20,
			Boundary: "fixed", Initial: heat.DirichletInitial, BoundaryValue: heat.DirichletBoundary,
			RecordEvery: 1,
		},
		"steady": {
			Scenario: "dirichlet", Dim: "1", A: 110, Length: 50, Duration: 60, Nodes: 50,
			Boundary: "fixed", Initial: heat.DirichletInitial, BoundaryValue: heat.DirichletBoundary,
			RecordEvery: 100,
		},
	},
	"neumann": {
		"source": {
			Scenario: "neumann", Dim: "both", A: 10, Length: 50, Duration: 20, Nodes: 100,
			Boundary: "zeroflux", Q: 10000, Initial: heat.NeumannInitial,
			RecordEvery: 25,
		},
		"quick": {
			Scenario: "neumann", Dim: "both", A: 10, Length: 50, Duration: 2, Nodes: 40,
			Boundary: "zeroflux", Q: 10000, Initial: heat.NeumannInitial,
			RecordEvery: 1,
		},
	},
}

// DefaultPresets names the preset used when only a scenario is given.
var DefaultPresets = map[string]string{
	"dirichlet": "plate",
	"neumann":   "source",
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListScenarios() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
