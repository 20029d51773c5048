package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/iqmath/internal/sweep"
)

type ExportData struct {
	ID        string             `json:"id"`
	Kernel    string             `json:"kernel"`
	Start     int64              `json:"start"`
	Stop      int64              `json:"stop"`
	Step      int64              `json:"step"`
	Tolerance float64            `json:"tolerance"`
	Count     int                `json:"count"`
	Inputs    []int64            `json:"inputs"`
	Outputs   []int64            `json:"outputs"`
	Errors    []float64          `json:"errors"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run and its samples as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []sweep.Sample) error {
	data := ExportData{
		ID:        meta.ID,
		Kernel:    meta.Kernel,
		Start:     meta.Start,
		Stop:      meta.Stop,
		Step:      meta.Step,
		Tolerance: meta.Tolerance,
		Count:     len(samples),
		Inputs:    make([]int64, len(samples)),
		Outputs:   make([]int64, len(samples)),
		Errors:    make([]float64, len(samples)),
		Metrics:   meta.Metrics,
	}

	for i, s := range samples {
		data.Inputs[i] = s.Input
		data.Outputs[i] = s.Output
		data.Errors[i] = s.Error
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
