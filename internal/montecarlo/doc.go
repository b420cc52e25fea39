// Package montecarlo implements the sampling core of the π estimator: a
// Worker draws uniform points in the square [-1,1]×[-1,1] and counts how many
// land inside the unit circle, and Aggregate turns a set of worker snapshots
// into an estimate.
//
// Each Worker has exactly one writer, the goroutine running Sample. Readers
// call Snapshot concurrently; counts are published with atomic stores so a
// reader that observes Finished also observes the final counts.
package montecarlo
