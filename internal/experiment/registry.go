package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/iqmath/internal/metrics"
	"github.com/san-kum/iqmath/internal/sweep"
)

// DefaultRadius is the vector length used by the atan2 and magnitude kernels.
const DefaultRadius = 30000

type Registry struct {
	kernels map[string]func() sweep.Kernel
}

func NewRegistry() *Registry {
	r := &Registry{
		kernels: make(map[string]func() sweep.Kernel),
	}

	r.kernels["sin"] = func() sweep.Kernel { return sweep.SinKernel{} }
	r.kernels["cos"] = func() sweep.Kernel { return sweep.CosKernel{} }
	r.kernels["atan2"] = func() sweep.Kernel { return sweep.NewAtan2Kernel(DefaultRadius) }
	r.kernels["roundtrip"] = func() sweep.Kernel { return sweep.RoundTripKernel{} }
	r.kernels["sqrt"] = func() sweep.Kernel { return sweep.SqrtKernel{} }
	r.kernels["magnitude"] = func() sweep.Kernel { return sweep.NewMagnitudeKernel(DefaultRadius) }

	return r
}

// Register adds or replaces a kernel constructor.
func (r *Registry) Register(name string, fn func() sweep.Kernel) {
	r.kernels[name] = fn
}

func (r *Registry) GetKernel(name string) (sweep.Kernel, error) {
	fn, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sweep.ErrUnknownKernel, name)
	}
	return fn(), nil
}

// ListKernels returns the registered kernel names in sorted order.
func (r *Registry) ListKernels() []string {
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metrics suited to the kernel. tolerance is
// the error bound, in LSB, counted by the within_tolerance metric.
func (r *Registry) DefaultMetrics(kernel string, tolerance float64) []sweep.Metric {
	ms := []sweep.Metric{
		metrics.NewMaxAbsError(),
		metrics.NewRMSError(),
		metrics.NewMeanError(),
		metrics.NewWithinTolerance(tolerance),
	}
	if kernel == "sqrt" || kernel == "magnitude" {
		ms = append(ms, metrics.NewMonotonic())
	}
	return ms
}
