// Package dataset discovers and validates the dated capture folders that make
// up the traffic dataset.
//
// Folder names follow YYYY-MM-DD with an optional _h or _l quality suffix.
// Names matching that shape but failing calendar or year-range validation are
// retained as invalid records with a reason code; anything else is ignored.
// The package also derives the per-date file-count table, the image/audio
// pairing report, and a scan-vs-disk validation check.
package dataset
