// Package aggregate reduces per-file and per-event tables to one row per
// calendar date, with mean and percentile statistics per numeric metric.
//
// The percentile uses linear interpolation between order statistics and the
// standard deviation uses the sample (n-1) form, matching the conventions of
// the downstream analysis tooling. Every reduction asserts that the summed
// per-date counts account for every contributing input record and fails the
// run otherwise.
package aggregate
