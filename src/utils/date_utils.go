package utils

import (
	"strings"
	"time"
)

// Layouts seen across broker activity exports. Tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"Jan 2, 2006",
}

// ParseDate parses a date string against the known layouts. Returns the
// zero time and false when no layout matches; callers degrade the row
// rather than failing the import.
func ParseDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
