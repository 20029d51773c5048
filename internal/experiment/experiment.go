package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/iqmath/internal/sweep"
)

type Config struct {
	Kernel    string
	Range     sweep.Config
	Tolerance float64
}

type Experiment struct {
	cfg     Config
	sweeper *sweep.Sweeper
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(kernel sweep.Kernel, metrics []sweep.Metric) error {
	if kernel == nil {
		return fmt.Errorf("experiment: nil kernel")
	}
	e.sweeper = sweep.New(kernel)
	for _, m := range metrics {
		e.sweeper.AddMetric(m)
	}
	return nil
}

// SetupFromRegistry resolves the configured kernel and its default metrics.
func (e *Experiment) SetupFromRegistry(r *Registry) error {
	kernel, err := r.GetKernel(e.cfg.Kernel)
	if err != nil {
		return err
	}
	return e.Setup(kernel, r.DefaultMetrics(e.cfg.Kernel, e.cfg.Tolerance))
}

// Run sweeps the configured range, or the kernel's own domain when the
// range is left zero.
func (e *Experiment) Run(ctx context.Context) (*sweep.Result, error) {
	if e.sweeper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	cfg := e.cfg.Range
	if cfg == (sweep.Config{}) {
		cfg = e.sweeper.Kernel().Domain()
	}

	return e.sweeper.Run(ctx, cfg)
}
