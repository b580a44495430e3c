// Package dates handles calendar dates as plain "YYYY-MM-DD" strings.
// Dates are never compared as instants; timestamp comparison is not
// timezone-safe and shifts bookings across midnight.
package dates

import (
	"regexp"
	"strconv"
	"time"
)

const Layout = "2006-01-02"

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	epochRe = regexp.MustCompile(`^\d{10,13}$`)
)

// Valid reports whether s is a real calendar date in YYYY-MM-DD form.
func Valid(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

// FromTime derives the calendar date using the timestamp's own location,
// never a UTC shift. A date stored at local midnight normalizes to the same
// day regardless of the reader's offset.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}

// Normalize converts legacy date representations to the canonical string.
// Accepted inputs: "YYYY-MM-DD" (returned as-is), "YYYY-MM-DDT..." datetime
// strings (calendar part kept), RFC3339 timestamps (own-offset calendar
// day), and unix epoch second or millisecond digits (local calendar day).
// Anything else is returned unchanged for the caller to validate.
func Normalize(s string) string {
	if len(s) >= 10 && dateRe.MatchString(s[:10]) {
		return s[:10]
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t)
	}
	if epochRe.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			if len(s) == 13 {
				return FromTime(time.UnixMilli(n))
			}
			return FromTime(time.Unix(n, 0))
		}
	}
	return s
}
