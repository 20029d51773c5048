package config

import (
	"math"
	"sort"

	"github.com/san-kum/iqmath/internal/sweep"
)

var Presets = map[string]map[string]*Config{
	"sin": {
		"full": {
			Kernel: "sin", Tolerance: 202,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 1},
		},
		"coarse": {
			Kernel: "sin", Tolerance: 202,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 32},
		},
		"negative": {
			Kernel: "sin", Tolerance: 202,
			Sweep: sweep.Config{Start: -65536, Stop: 0, Step: 7},
		},
	},
	"cos": {
		"full": {
			Kernel: "cos", Tolerance: 202,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 1},
		},
		"coarse": {
			Kernel: "cos", Tolerance: 202,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 32},
		},
	},
	"atan2": {
		"full": {
			Kernel: "atan2", Tolerance: 5, Radius: 30000,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 1},
		},
		"small": {
			Kernel: "atan2", Tolerance: 40, Radius: 500,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 1},
		},
	},
	"roundtrip": {
		"full": {
			Kernel: "roundtrip", Tolerance: 40,
			Sweep: sweep.Config{Start: 0, Stop: 32767, Step: 1},
		},
	},
	"sqrt": {
		"low": {
			Kernel: "sqrt", Tolerance: 0,
			Sweep: sweep.Config{Start: 0, Stop: 1 << 20, Step: 1},
		},
		"wide": {
			Kernel: "sqrt", Tolerance: 0,
			Sweep: sweep.Config{Start: 0, Stop: math.MaxUint32, Step: 4099},
		},
	},
}

func GetPreset(kernel, preset string) *Config {
	kernelPresets, ok := Presets[kernel]
	if !ok {
		return nil
	}
	cfg, ok := kernelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kernel string) []string {
	kernelPresets, ok := Presets[kernel]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kernelPresets))
	for name := range kernelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
