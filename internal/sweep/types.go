package sweep

// MaxSamples bounds the number of evaluations in one run.
const MaxSamples = 1 << 22

// Sample is one kernel evaluation. Error is Output - Reference in output
// LSB, folded onto the circle for angle-valued kernels.
type Sample struct {
	Input     int64
	Output    int64
	Reference float64
	Error     float64
}

// Kernel is a function under test.
type Kernel interface {
	Name() string
	// Domain returns the natural sweep range for the kernel.
	Domain() Config
	Eval(in int64) Sample
}

// Metric accumulates a statistic over samples observed in input order.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Config is an inclusive input range [Start, Stop] walked in Step increments.
type Config struct {
	Start int64 `json:"start" yaml:"start"`
	Stop  int64 `json:"stop" yaml:"stop"`
	Step  int64 `json:"step" yaml:"step"`
}

// Count returns the number of inputs in the range.
func (c Config) Count() int64 {
	if c.Step <= 0 || c.Stop < c.Start {
		return 0
	}
	return (c.Stop-c.Start)/c.Step + 1
}

// Validate reports whether the range can be swept.
func (c Config) Validate() error {
	if c.Step <= 0 || c.Stop < c.Start {
		return ErrInvalidRange
	}
	if c.Count() > MaxSamples {
		return ErrTooManySamples
	}
	return nil
}

type Result struct {
	Kernel  string
	Config  Config
	Samples []Sample
	Metrics map[string]float64
}

// Errors returns the per-sample errors in input order.
func (r *Result) Errors() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Error
	}
	return out
}

// Outputs returns the kernel outputs in input order.
func (r *Result) Outputs() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = float64(s.Output)
	}
	return out
}
