/*
* Utility functions for formatting output.
 */
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Print string with max length, truncating with ellipsis.
func Abbrev(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-1] + "…"
}

// Number renders n with thousands separators.
func Number(n int) string {
	return humanize.Comma(int64(n))
}

func GitEmail(email string) string {
	return fmt.Sprintf("<%s>", email)
}

// RelativeTime gives a rough, human-readable description of how long before
// now t occurred.
func RelativeTime(now time.Time, t time.Time) string {
	if t.IsZero() || t.After(now) {
		return ""
	}

	d := now.Sub(t)
	day := 24 * time.Hour

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "min.")
	case d < day:
		return plural(int(d.Hours()), "hr.")
	case d < 30*day:
		return plural(int(d.Hours()/24), "day")
	case d < 365*day:
		return plural(int(d.Hours()/(24*30)), "month")
	default:
		return plural(int(d.Hours()/(24*365)), "year")
	}
}

func plural(n int, unit string) string {
	if n != 1 && (unit == "day" || unit == "month" || unit == "year") {
		unit = unit + "s"
	}

	return fmt.Sprintf("%d %s ago", n, unit)
}
