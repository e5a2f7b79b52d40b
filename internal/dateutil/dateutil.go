// Package dateutil formats the build date printed on install pages.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used for a bare "auto".
const DefaultFormat = "YYYY-MM-DD"

// Presets are named formats accepted after "auto:" (case-insensitive).
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// fields maps a run of one date letter to its time layout.
var fields = map[string]string{
	"YYYY": "2006",
	"YY":   "06",
	"MMMM": "January",
	"MMM":  "Jan",
	"MM":   "01",
	"M":    "1",
	"DD":   "02",
	"D":    "2",
}

// Format renders t with a format such as "DD/MM/YYYY". Runs of Y, M or D
// are date fields, text in brackets is literal ("[Built] YYYY"), and any
// other character is copied as-is.
func Format(format string, t time.Time) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		switch c {
		case '[':
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2

		case 'Y', 'M', 'D':
			j := i
			for j < len(format) && format[j] == c {
				j++
			}
			layout, ok := fields[format[i:j]]
			if !ok {
				return "", fmt.Errorf("%w: %q is not a date field", ErrInvalidDateFormat, format[i:j])
			}
			// Each field is formatted alone so literals never reach time.Format.
			b.WriteString(t.Format(layout))
			i = j

		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// Resolve turns a date setting into display text:
//   - "" stays empty (no date)
//   - "auto" is today in DefaultFormat
//   - "auto:FORMAT" is today in FORMAT or a preset name
//   - anything else is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	prefix, format, hasFormat := strings.Cut(value, ":")
	if !strings.EqualFold(prefix, "auto") {
		return value, nil
	}
	if !hasFormat {
		return Format(DefaultFormat, now)
	}
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	return Format(format, now)
}
