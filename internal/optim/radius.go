package optim

import (
	"context"
	"fmt"

	"github.com/san-kum/iqmath/internal/experiment"
	"github.com/san-kum/iqmath/internal/sweep"
)

// RadiusScan sweeps a radius-dependent kernel ("atan2" or "magnitude") at
// each radius and returns the radius with the largest max_abs_error plus
// every point. step thins the angle domain. Every radius is checked before
// any sweep runs.
func RadiusScan(ctx context.Context, kernel string, radii []int32, step int64) (Point, []Point, error) {
	var newKernel func(int32) sweep.Kernel
	switch kernel {
	case "atan2":
		newKernel = func(r int32) sweep.Kernel { return sweep.NewAtan2Kernel(r) }
	case "magnitude":
		newKernel = func(r int32) sweep.Kernel { return sweep.NewMagnitudeKernel(r) }
	default:
		return Point{}, nil, fmt.Errorf("%w: %s has no radius", sweep.ErrUnknownKernel, kernel)
	}

	grid := make([]float64, len(radii))
	for i, r := range radii {
		if err := sweep.CheckRadius(kernel, r); err != nil {
			return Point{}, nil, err
		}
		grid[i] = float64(r)
	}

	gs := NewGridSearch([]string{"radius"}, [][]float64{grid}, Maximize)
	return gs.Search(ctx, func(p map[string]float64) (*experiment.Experiment, error) {
		k := newKernel(int32(p["radius"]))
		dom := k.Domain()
		if step > 0 {
			dom.Step = step
		}

		reg := experiment.NewRegistry()
		exp := experiment.New(experiment.Config{Kernel: kernel, Range: dom})
		if err := exp.Setup(k, reg.DefaultMetrics(kernel, 0)); err != nil {
			return nil, err
		}
		return exp, nil
	}, "max_abs_error")
}
