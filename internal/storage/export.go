package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/heatsim/internal/heat"
)

type ExportData struct {
	RunMetadata
	Times     []float64 `json:"times"`
	Snapshots []Values  `json:"snapshots"`
}

// ExportJSON writes a run's metadata and frames as one indented document.
func ExportJSON(w io.Writer, meta *RunMetadata, snapshots []heat.Snapshot) error {
	data := ExportData{
		RunMetadata: *meta,
		Times:       make([]float64, len(snapshots)),
		Snapshots:   make([]Values, len(snapshots)),
	}
	for i, s := range snapshots {
		data.Times[i] = s.Time
		data.Snapshots[i] = Values(s.Field)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
