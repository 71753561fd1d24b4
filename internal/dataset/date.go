package dataset

import (
	"fmt"
	"regexp"
	"time"

	"trafficpulse/pkg/contracts/domain"
)

// folderPattern is the dated-folder naming shape: YYYY-MM-DD, YYYY-MM-DD_h,
// YYYY-MM-DD_l. It checks the shape only; calendar validity is separate.
var folderPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(_[hl])?$`)

// datePrefixPattern matches a 10-character date prefix inside arbitrary
// strings (log fields, path components).
var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// FolderName is a parsed dated-folder name.
type FolderName struct {
	DateStr string
	Quality domain.Quality
}

// IsValidFolderName reports whether name matches the dated-folder pattern.
// It does not check that the date portion is a real calendar date.
func IsValidFolderName(name string) bool {
	return folderPattern.MatchString(name)
}

// ParseFolderName splits a pattern-matching folder name into its date string
// and quality tag. Returns an error for names outside the pattern.
func ParseFolderName(name string) (FolderName, error) {
	if !folderPattern.MatchString(name) {
		return FolderName{}, fmt.Errorf("folder name %q does not match YYYY-MM-DD[_h|_l]", name)
	}

	parsed := FolderName{DateStr: name[:10], Quality: domain.QualityUnspecified}
	if len(name) > 10 {
		switch name[11] {
		case 'h':
			parsed.Quality = domain.QualityHigh
		case 'l':
			parsed.Quality = domain.QualityLow
		}
	}
	return parsed, nil
}

// InferDate extracts a calendar date from the leading 10 characters of an
// arbitrary string. This is the one shared date-inference routine: folder
// names, log timestamps, and image path components all go through it.
// The second return is false when the prefix is not a real calendar date.
func InferDate(s string) (time.Time, bool) {
	if !datePrefixPattern.MatchString(s) {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// YearInRange reports whether the date's year falls inside the inclusive
// configured range.
func YearInRange(d time.Time, yearMin, yearMax int) bool {
	return d.Year() >= yearMin && d.Year() <= yearMax
}
