// Package analysis provides spectral and geometric checks of the Q15 kernels.
//
// The package characterises waveforms produced from the sine table:
//
//   - [PowerSpectrum]: magnitude spectrum via go-dsp's real FFT
//   - [SineWave]: a coherently sampled record of the table sine
//   - [Analyze]: fundamental, THD and SFDR of a record
//   - [TracePhasor]: the sin/cos locus over one turn, with [TraceToASCII]
//
// # Spectral Purity
//
// Quantising sine into a 256-entry quarter table leaves spurs around -54 dBc:
//
//	wave := analysis.SineWave(1024, 8)
//	s := analysis.Analyze(analysis.PowerSpectrum(wave), 8)
//	fmt.Printf("SFDR %.1f dB\n", s.SFDR)
package analysis
