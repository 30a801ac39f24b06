package types

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for JSON timestamps
const TimestampLayout = time.RFC3339Nano

// TableTimestampLayout is the layout of the comparison table "data" column.
// It keeps the space separator pandas uses so the CSV stays readable by the
// dashboard's spreadsheet tooling.
const TableTimestampLayout = "2006-01-02 15:04:05.999999999Z07:00"

// layouts accepted when reading; the naive ones come from files written by
// earlier dashboard releases, which stored local time without an offset
var timestampLayouts = []string{
	time.RFC3339Nano,
	TableTimestampLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatTimestamp renders t for JSON storage
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses any timestamp this package writes plus the legacy
// naive forms. Naive values are interpreted in local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// NextTimestamp returns now, or the instant right after prev when the clock
// has not moved past it. Successive stamps are therefore strictly increasing.
func NextTimestamp(now, prev time.Time) time.Time {
	if prev.IsZero() || now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
