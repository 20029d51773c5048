package metrics

import (
	"math"

	"github.com/san-kum/iqmath/internal/sweep"
)

// MaxAbsError tracks the largest |error| seen.
type MaxAbsError struct {
	name  string
	worst float64
	at    int64
}

func NewMaxAbsError() *MaxAbsError {
	return &MaxAbsError{name: "max_abs_error"}
}

func (m *MaxAbsError) Name() string { return m.name }

func (m *MaxAbsError) Observe(s sweep.Sample) {
	if e := math.Abs(s.Error); e > m.worst {
		m.worst = e
		m.at = s.Input
	}
}

func (m *MaxAbsError) Value() float64 { return m.worst }

// At returns the input where the largest error occurred.
func (m *MaxAbsError) At() int64 { return m.at }

func (m *MaxAbsError) Reset() {
	m.worst = 0
	m.at = 0
}

// RMSError is the root mean square of the error.
type RMSError struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSError() *RMSError {
	return &RMSError{name: "rms_error"}
}

func (r *RMSError) Name() string { return r.name }

func (r *RMSError) Observe(s sweep.Sample) {
	r.sumSq += s.Error * s.Error
	r.samples++
}

func (r *RMSError) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSError) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// MeanError is the signed average error, i.e. the bias of the kernel.
type MeanError struct {
	name    string
	sum     float64
	samples int
}

func NewMeanError() *MeanError {
	return &MeanError{name: "mean_error"}
}

func (m *MeanError) Name() string { return m.name }

func (m *MeanError) Observe(s sweep.Sample) {
	m.sum += s.Error
	m.samples++
}

func (m *MeanError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanError) Reset() {
	m.sum = 0
	m.samples = 0
}

// WithinTolerance is the fraction of samples with |error| <= Tolerance.
type WithinTolerance struct {
	name      string
	Tolerance float64
	hits      int
	samples   int
}

func NewWithinTolerance(tolerance float64) *WithinTolerance {
	return &WithinTolerance{
		name:      "within_tolerance",
		Tolerance: tolerance,
	}
}

func (w *WithinTolerance) Name() string { return w.name }

func (w *WithinTolerance) Observe(s sweep.Sample) {
	w.samples++
	if math.Abs(s.Error) <= w.Tolerance {
		w.hits++
	}
}

func (w *WithinTolerance) Value() float64 {
	if w.samples == 0 {
		return 1.0
	}
	return float64(w.hits) / float64(w.samples)
}

func (w *WithinTolerance) Reset() {
	w.hits = 0
	w.samples = 0
}
