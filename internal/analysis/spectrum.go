package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/san-kum/iqmath/iq"
)

// PowerSpectrum returns the magnitude of the first len(data)/2 FFT bins.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// WindowedSpectrum applies a Hann window before the transform. Use it for
// records that are not coherently sampled.
func WindowedSpectrum(data []float64) []float64 {
	x := make([]float64, len(data))
	copy(x, data)
	window.Apply(x, window.Hann)
	return PowerSpectrum(x)
}

// SineWave samples iq.Sin over exactly cycles periods in n points, so the
// fundamental lands on bin cycles.
func SineWave(n, cycles int) []float64 {
	out := make([]float64, n)
	for i := range out {
		theta := int64(i) * int64(cycles) * int64(iq.One) / int64(n)
		out[i] = float64(iq.Sin(int32(theta)))
	}
	return out
}

// Summary describes the spectral purity of a record.
type Summary struct {
	Fundamental int     `json:"fundamental"`
	Amplitude   float64 `json:"amplitude"`
	// THD is harmonic power relative to the fundamental, in dB.
	THD float64 `json:"thd_db"`
	// SFDR is the fundamental over the largest other non-DC bin, in dB.
	SFDR float64 `json:"sfdr_db"`
	// Spur is the bin of the largest non-fundamental component.
	Spur int `json:"spur"`
}

// THD returns the power of the harmonics of fundamental relative to the
// fundamental, in dB.
func THD(ps []float64, fundamental int) float64 {
	if fundamental <= 0 || fundamental >= len(ps) {
		return math.NaN()
	}
	var harm float64
	for k := 2 * fundamental; k < len(ps); k += fundamental {
		harm += ps[k] * ps[k]
	}
	return db(math.Sqrt(harm) / ps[fundamental])
}

// SFDR returns the ratio of the fundamental to the largest other non-DC bin
// in dB, along with that bin.
func SFDR(ps []float64, fundamental int) (float64, int) {
	if fundamental <= 0 || fundamental >= len(ps) {
		return math.NaN(), 0
	}
	var spur float64
	bin := 0
	for k := 1; k < len(ps); k++ {
		if k == fundamental {
			continue
		}
		if ps[k] > spur {
			spur = ps[k]
			bin = k
		}
	}
	return db(ps[fundamental] / spur), bin
}

// Analyze computes a Summary for a magnitude spectrum whose fundamental is
// at bin fundamental. Amplitude is scaled back to the time domain.
func Analyze(ps []float64, fundamental int) Summary {
	s := Summary{Fundamental: fundamental}
	if fundamental <= 0 || fundamental >= len(ps) {
		return s
	}

	s.Amplitude = ps[fundamental] / float64(len(ps))
	s.THD = THD(ps, fundamental)
	s.SFDR, s.Spur = SFDR(ps, fundamental)
	return s
}

// PeakBin returns the index of the largest non-DC bin.
func PeakBin(ps []float64) int {
	best := 0
	for k := 1; k < len(ps); k++ {
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	return best
}

func db(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(ratio)
}
