// Package timefmt renders tracking timestamps for the dashboard.
//
// All absolute times are displayed in the Africa/Cairo zone with an explicit
// "(Egypt)" suffix, matching what the tracking backend records. Relative times
// are coarse human strings ("3 minutes ago").
package timefmt

import (
	"fmt"
	"time"
	_ "time/tzdata" // Africa/Cairo must resolve on hosts without a zoneinfo database
)

// Never is rendered in place of a missing timestamp.
const Never = "Never"

const (
	displayLayout = "01/02/2006, 15:04:05"
	displaySuffix = " (Egypt)"
)

var cairo = mustLoad("Africa/Cairo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("timefmt: load location %s: %v", name, err))
	}
	return loc
}

// Location returns the zone used for display.
func Location() *time.Location {
	return cairo
}

// FormatDate renders t in the display zone, or Never when t is nil or zero.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Never
	}
	return t.In(cairo).Format(displayLayout) + displaySuffix
}

// TimeAgo describes how long before now the instant t happened.
// Clock skew that puts t after now is reported as "In the future".
func TimeAgo(now, t time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		return "In the future"
	}

	seconds := int64(d / time.Second)
	switch {
	case seconds < 60:
		return plural(seconds, "second")
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	default:
		return plural(seconds/86400, "day")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
