// time.go
package time

import (
	"strings"
	"time"
)

// ShortDur shortens the string representation of a time.Duration from
// d.String(), dropping trailing zero units (e.g. "1m0s" becomes "1m").
func ShortDur(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// Since returns the shortened elapsed time from start, rounded to the
// millisecond so log lines stay readable.
func Since(start time.Time) string {
	return ShortDur(time.Since(start).Round(time.Millisecond))
}
