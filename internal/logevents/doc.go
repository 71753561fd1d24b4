// Package logevents stream-parses newline-delimited traffic log JSON files
// into a flat per-event CSV and extracts sensor-reported sound readings.
package logevents
