// Package join merges the per-day tables produced by the pipeline on their
// date key. Inputs are loaded through an explicit schema mapping, merged with
// a caller-chosen join kind, then annotated with heuristic anomaly flags and
// summarized by a pairwise correlation matrix.
package join
