package extract

import (
	"io/fs"
	"math/rand"
	"path/filepath"
	"sort"
	"strings"

	"trafficpulse/internal/errors"
	"trafficpulse/internal/exporter"
)

// LoadCalendar reads a CSV carrying a date column and returns the set of
// YYYY-MM-DD strings found in it. Extraction is then restricted to files
// whose inferred date is a member.
func LoadCalendar(filePath string) (map[string]bool, error) {
	table, err := exporter.ReadCSV(filePath, "date")
	if err != nil {
		return nil, err
	}

	dates := make(map[string]bool, len(table.Rows))
	for i := range table.Rows {
		if d := table.Cell(i, "date"); len(d) >= 10 {
			dates[d[:10]] = true
		}
	}
	return dates, nil
}

// CollectFiles walks root for files whose extension is in extensions and
// returns their slash-separated paths relative to root, sorted. A non-nil
// calendar restricts results to files whose date is in the set.
func CollectFiles(root string, extensions map[string]bool, calendar map[string]bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if calendar != nil && !calendar[dateOf(rel)] {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.FileSystemError(err)
	}
	sort.Strings(files)
	return files, nil
}

// dateOf extracts the YYYY-MM-DD prefix of a relative path's top folder.
// Quality suffixes (_h, _l) are dropped by taking only ten characters.
func dateOf(relPath string) string {
	top := relPath
	if i := strings.IndexByte(top, '/'); i >= 0 {
		top = top[:i]
	}
	if len(top) < 10 {
		return top
	}
	return top[:10]
}

// Sample applies the per-day and total caps to an already-sorted file list
// using a deterministic seeded source. A zero cap disables that cap. The
// returned list is re-sorted so downstream output stays stable.
func Sample(files []string, maxPerDay, maxTotal int, seed int64) []string {
	if maxPerDay <= 0 && maxTotal <= 0 {
		return files
	}

	rng := rand.New(rand.NewSource(seed))

	byDay := make(map[string][]string)
	var days []string
	for _, f := range files {
		d := dateOf(f)
		if _, seen := byDay[d]; !seen {
			days = append(days, d)
		}
		byDay[d] = append(byDay[d], f)
	}
	sort.Strings(days)

	var sampled []string
	for _, d := range days {
		group := byDay[d]
		if maxPerDay > 0 && len(group) > maxPerDay {
			group = append([]string(nil), group...)
			rng.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
			group = group[:maxPerDay]
		}
		sampled = append(sampled, group...)
		if maxTotal > 0 && len(sampled) >= maxTotal {
			sampled = sampled[:maxTotal]
			break
		}
	}
	sort.Strings(sampled)
	return sampled
}
