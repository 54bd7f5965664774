// Package pattern parses two-column XRD pattern files (.xy): whitespace
// delimited rows of (angle, intensity) pairs.
package pattern

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrNoData is returned when the content holds no row with at least two
// numeric columns.
var ErrNoData = errors.New("pattern: no two-column numeric data")

// Series holds parallel angle/intensity columns of one pattern file.
type Series struct {
	Angles      []float64
	Intensities []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Angles) }

// Parse reads whitespace-delimited numeric rows from raw text. Column 1 is
// the angle, column 2 the intensity; extra columns are ignored. Malformed
// lines (comments, headers, partial rows) are skipped rather than aborting
// the parse. Parse fails only when the content is not text or no valid row
// remains.
func Parse(raw string) (Series, error) {
	if !utf8.ValidString(raw) {
		return Series{}, ErrNoData
	}
	var s Series
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		angle, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			continue
		}
		intensity, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		s.Angles = append(s.Angles, angle)
		s.Intensities = append(s.Intensities, intensity)
	}
	if s.Len() == 0 {
		return Series{}, ErrNoData
	}
	return s, nil
}

// patternExts are the recognized pattern-file suffixes, stripped from
// filenames when labeling a series.
var patternExts = []string{".xy"}

// StripExtension removes a single trailing recognized pattern-file suffix,
// case-insensitively. Filenames without one are returned unchanged.
func StripExtension(filename string) string {
	lower := strings.ToLower(filename)
	for _, ext := range patternExts {
		if strings.HasSuffix(lower, ext) && len(filename) > len(ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}

// AngleSpan scans every content for parseable angle values and returns the
// global min/max across all of them. ok is false when no file yields a
// valid angle; malformed files are tolerated the same way Parse tolerates
// them.
func AngleSpan(contents []string) (min, max float64, ok bool) {
	for _, raw := range contents {
		s, err := Parse(raw)
		if err != nil {
			continue
		}
		for _, a := range s.Angles {
			if !ok {
				min, max, ok = a, a, true
				continue
			}
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
	}
	return min, max, ok
}
