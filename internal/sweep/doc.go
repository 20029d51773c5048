// Package sweep measures the fixed-point kernels against float64 references.
//
// The package defines the pieces of an accuracy run:
//
//   - [Sample]: one kernel evaluation and its error against the reference
//   - [Kernel]: a named function under test with its natural input domain
//   - [Metric]: an accumulator observing samples in input order
//   - [Sweeper]: evaluates a kernel over a [Config] range
//
// # Example
//
//	sw := sweep.New(sweep.SinKernel{})
//	sw.AddMetric(metrics.NewMaxAbsError())
//	result, _ := sw.Run(ctx, sweep.Config{Start: 0, Stop: iq.One, Step: 1})
//
// # Thread Safety
//
// Kernels must be safe for concurrent use; Run evaluates chunks of the range
// in parallel. Metrics are fed sequentially after evaluation, so they need no
// locking. A Sweeper itself is NOT safe for concurrent Run calls.
package sweep
