// Package exporter provides the tabular output layer for the traffic dataset
// pipeline.
//
// CSVWriter handles whole-table writes with optional append and UTF-8 BOM;
// StreamWriter writes row-by-row for inputs too large to buffer (the log
// flattener streams millions of rows through it). Reader loads a CSV back with
// required-column validation, which is the schema boundary for the joiner.
//
// ReportWriter renders the joined master table and its correlation matrix into
// a single xlsx workbook for hand-off.
package exporter
