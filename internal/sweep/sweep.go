package sweep

import (
	"context"
	"fmt"
	"sync/atomic"
)

// chunk is the minimum number of inputs handed to one worker.
const chunk = 4096

type Sweeper struct {
	kernel  Kernel
	metrics []Metric
}

func New(kernel Kernel) *Sweeper {
	return &Sweeper{
		kernel:  kernel,
		metrics: make([]Metric, 0),
	}
}

func (s *Sweeper) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Sweeper) Kernel() Kernel { return s.kernel }

// Run evaluates the kernel over cfg and returns every sample together with
// the final metric values.
func (s *Sweeper) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	n := int(cfg.Count())
	samples := make([]Sample, n)

	var canceled atomic.Bool
	ParallelFor(n, chunk, func(start, end int) {
		for i := start; i < end; i++ {
			if (i-start)%chunk == 0 && ctx.Err() != nil {
				canceled.Store(true)
				return
			}
			samples[i] = s.kernel.Eval(cfg.Start + int64(i)*cfg.Step)
		}
	})
	if canceled.Load() {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	}

	result := &Result{
		Kernel:  s.kernel.Name(),
		Config:  cfg,
		Samples: samples,
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for _, smp := range samples {
		for _, m := range s.metrics {
			m.Observe(smp)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Sweeper) validate(cfg Config) error {
	name := s.kernel.Name()
	if err := cfg.Validate(); err != nil {
		return &SweepError{Kernel: name, Input: cfg.Start, Wrapped: err}
	}
	if v, ok := s.kernel.(Validator); ok {
		if err := v.Validate(); err != nil {
			return &SweepError{Kernel: name, Input: cfg.Start, Wrapped: err}
		}
	}
	if b, ok := s.kernel.(Bounded); ok {
		lo, hi := b.Bounds()
		if cfg.Start < lo {
			return &SweepError{Kernel: name, Input: cfg.Start, Wrapped: ErrOutOfDomain}
		}
		if cfg.Stop > hi {
			return &SweepError{Kernel: name, Input: cfg.Stop, Wrapped: ErrOutOfDomain}
		}
	}
	return nil
}
