package analysis_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/iqmath/internal/analysis"
)

var _ = Describe("Spectrum", func() {
	Describe("SineWave", func() {
		It("starts at zero and peaks at the table maximum", func() {
			wave := analysis.SineWave(1024, 1)
			Expect(wave).To(HaveLen(1024))
			Expect(wave[0]).To(BeNumerically("==", 0))
			Expect(wave[256]).To(BeNumerically("==", 32767))
			Expect(wave[768]).To(BeNumerically("==", -32767))
		})
	})

	Describe("PowerSpectrum", func() {
		It("returns half the record length", func() {
			Expect(analysis.PowerSpectrum(make([]float64, 256))).To(HaveLen(128))
		})

		It("puts the fundamental on the cycle bin", func() {
			for _, cycles := range []int{1, 8, 31} {
				ps := analysis.PowerSpectrum(analysis.SineWave(1024, cycles))
				Expect(analysis.PeakBin(ps)).To(Equal(cycles))
			}
		})

		It("has no DC component for whole cycles", func() {
			ps := analysis.PowerSpectrum(analysis.SineWave(1024, 8))
			Expect(ps[0]).To(BeNumerically("<", 1))
		})
	})

	Describe("Analyze", func() {
		var summary analysis.Summary

		BeforeEach(func() {
			summary = analysis.Analyze(analysis.PowerSpectrum(analysis.SineWave(1024, 8)), 8)
		})

		It("recovers the Q15 amplitude", func() {
			Expect(summary.Amplitude).To(BeNumerically("~", 32767, 200))
		})

		It("reports table-limited spectral purity", func() {
			Expect(summary.SFDR).To(BeNumerically(">", 48))
			Expect(summary.SFDR).To(BeNumerically("<", 60))
			Expect(summary.THD).To(BeNumerically("<", -46))
			Expect(summary.THD).To(BeNumerically(">", -58))
			Expect(summary.Spur).NotTo(Equal(8))
		})

		It("ignores an out of range fundamental", func() {
			s := analysis.Analyze([]float64{1, 2, 3}, 5)
			Expect(s.Amplitude).To(BeZero())
		})
	})

	Describe("WindowedSpectrum", func() {
		It("keeps the peak for a non-coherent tone", func() {
			wave := make([]float64, 1024)
			for i := range wave {
				wave[i] = math.Sin(2 * math.Pi * 20.5 * float64(i) / 1024)
			}
			peak := analysis.PeakBin(analysis.WindowedSpectrum(wave))
			Expect(peak).To(BeElementOf(20, 21))
		})

		It("does not modify its input", func() {
			wave := analysis.SineWave(64, 2)
			before := append([]float64(nil), wave...)
			analysis.WindowedSpectrum(wave)
			Expect(wave).To(Equal(before))
		})
	})
})

var _ = Describe("THD and SFDR", func() {
	It("reject a fundamental outside the spectrum", func() {
		Expect(math.IsNaN(analysis.THD([]float64{1, 2}, 0))).To(BeTrue())
		v, bin := analysis.SFDR([]float64{1, 2}, 7)
		Expect(math.IsNaN(v)).To(BeTrue())
		Expect(bin).To(BeZero())
	})

	It("measure a synthetic spectrum", func() {
		ps := []float64{0, 1000, 10, 1, 0}
		Expect(analysis.THD(ps, 1)).To(BeNumerically("~", 20*math.Log10(math.Sqrt(101)/1000), 1e-9))
		v, bin := analysis.SFDR(ps, 1)
		Expect(v).To(BeNumerically("~", 40, 1e-9))
		Expect(bin).To(Equal(2))
	})
})
