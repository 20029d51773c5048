// Package iq provides Q15 fixed-point trigonometry and square root for code
// that must avoid floating point, such as motor-control and signal-processing
// loops on small processors.
//
// A fixed-point scalar is an int32 holding real*2^15. Angles use the same
// scale with one full turn equal to [One] (32768), so 90 degrees is [Quarter]:
//
//   - [SinCos], [Sin], [Cos]: quarter-wave table lookup with quadrant folding
//   - [Atan2]: 13-step shift-and-add vector rotation, result in [0, One)
//   - [Sqrt]: floor of the square root of a uint32, two bits per step
//   - [Clarke], [Park] and their inverses: frame transforms built on [Phasor]
//
// # Example
//
//	theta := iq.Q15(0.125) // 45 degrees
//	s, c := iq.SinCos(theta)
//	back := iq.Atan2(s, c) // ~4096
//
// # Thread Safety
//
// Every function is pure and reads only constant tables; all of them may be
// called concurrently without synchronization.
//
// # Overflow
//
// Nothing in this package checks for overflow. Arithmetic wraps the way Go
// integer arithmetic does, and callers are expected to keep values within the
// ranges documented on each function.
package iq
