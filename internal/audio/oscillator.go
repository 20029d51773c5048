package audio

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/iqmath/iq"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// phaseShift drops a 32-bit accumulator to a Q15 turn.
	phaseShift = 32 - iq.Q
)

var ErrInvalidFrequency = errors.New("audio: frequency must be in (0, rate/2]")

// Oscillator is a numerically controlled oscillator. A 32-bit phase
// accumulator advances by a fixed step per sample and its top 15 bits index
// the sine table, so the phase wraps exactly once per turn.
type Oscillator struct {
	phase      uint32
	step       uint32
	freq       float64
	sampleRate float64
	Amplitude  float64
}

func NewOscillator(freq, sampleRate float64) (*Oscillator, error) {
	o := &Oscillator{sampleRate: sampleRate, Amplitude: 1}
	if err := o.SetFrequency(freq); err != nil {
		return nil, err
	}
	return o, nil
}

// SetFrequency retunes the oscillator without resetting its phase.
func (o *Oscillator) SetFrequency(freq float64) error {
	if !finite(o.sampleRate) || !finite(freq) || o.sampleRate <= 0 || freq <= 0 || freq > o.sampleRate/2 {
		return fmt.Errorf("%w: %g Hz at %g Hz", ErrInvalidFrequency, freq, o.sampleRate)
	}
	o.freq = freq
	o.step = uint32(math.Round(freq / o.sampleRate * (1 << 32)))
	return nil
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func (o *Oscillator) Frequency() float64  { return o.freq }
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// Theta is the Q15 angle of the next sample.
func (o *Oscillator) Theta() int32 {
	return int32(o.phase >> phaseShift)
}

// Next returns the current Q15 sample and advances the phase.
func (o *Oscillator) Next() int32 {
	v := iq.Sin(o.Theta())
	o.phase += o.step
	return v
}

// Fill writes len(buf) samples scaled by Amplitude.
func (o *Oscillator) Fill(buf []float32) {
	for i := range buf {
		buf[i] = float32(iq.Q15ToFloat(o.Next()) * o.Amplitude)
	}
}

func (o *Oscillator) Reset() {
	o.phase = 0
}
