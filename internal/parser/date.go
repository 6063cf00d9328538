package parser

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Four-digit year layouts come before the
// two-digit one so "2/12/2019" is never read as year 20.
var dateLayouts = []string{
	"2/1/2006 15:04",
	"2/1/06 15:04",
	"2-Jan-2006 15:04",
	"2-1-2006 15:04",
	"2/Jan/2006 15:04",
}

// DateFormats lists the accepted shapes in user-facing notation.
var DateFormats = []string{
	"D/M/YYYY H:mm",
	"D/M/YY H:mm",
	"D-Mon-YYYY H:mm",
	"D-M-YYYY H:mm",
	"D/Mon/YYYY H:mm",
}

// ParseDate parses a date-time expression in one of the accepted shapes,
// interpreting it in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
