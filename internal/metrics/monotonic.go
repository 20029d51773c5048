package metrics

import "github.com/san-kum/iqmath/internal/sweep"

// Monotonic counts the places where the output decreased between
// consecutive samples. A non-decreasing kernel scores 0.
type Monotonic struct {
	name       string
	prev       int64
	started    bool
	violations int
}

func NewMonotonic() *Monotonic {
	return &Monotonic{name: "monotonic_violations"}
}

func (m *Monotonic) Name() string { return m.name }

func (m *Monotonic) Observe(s sweep.Sample) {
	if m.started && s.Output < m.prev {
		m.violations++
	}
	m.prev = s.Output
	m.started = true
}

func (m *Monotonic) Value() float64 { return float64(m.violations) }

func (m *Monotonic) Reset() {
	m.prev = 0
	m.started = false
	m.violations = 0
}
