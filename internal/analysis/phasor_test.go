package analysis_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/iqmath/internal/analysis"
)

var _ = Describe("PhasorTrace", func() {
	It("samples one full turn", func() {
		trace := analysis.TracePhasor(256)
		Expect(trace.Points).To(HaveLen(128))
		Expect(trace.Points[0]).To(Equal(analysis.Point{X: 32767, Y: 0}))
	})

	It("rejects a non-positive step", func() {
		Expect(analysis.TracePhasor(0)).To(BeNil())
	})

	It("stays within one percent of the unit circle", func() {
		for _, r := range analysis.TracePhasor(64).Radii() {
			Expect(r).To(BeNumerically("~", 32768, 330))
		}
	})

	It("renders an ASCII locus with axes", func() {
		out := analysis.TraceToASCII(analysis.TracePhasor(128), 40, 20)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		Expect(lines).To(HaveLen(20))
		Expect(out).To(ContainSubstring("•"))
		Expect(out).To(ContainSubstring("│"))
		Expect(out).To(ContainSubstring("─"))
	})

	It("renders nothing for an empty trace", func() {
		Expect(analysis.TraceToASCII(nil, 40, 20)).To(BeEmpty())
	})
})
