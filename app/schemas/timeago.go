package schemas

import (
	"fmt"
	"time"
)

// TimeAgo renders the elapsed time since t using the largest unit that
// fits: years, months, weeks, days, hours, minutes, seconds.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	days := int(diff.Hours()) / 24
	secs := int(diff.Seconds()) % 86400

	years := days / 365
	months := days / 30
	weeks := days / 7
	hours := secs / 3600
	minutes := secs / 60

	var n int
	var unit string
	switch {
	case years > 0:
		n, unit = years, plural(years, "year", "years")
	case months > 0:
		n, unit = months, plural(months, "month", "months")
	case weeks > 0:
		n, unit = weeks, plural(weeks, "week", "weeks")
	case days > 0:
		n, unit = days, plural(days, "day", "days")
	case hours > 0:
		n, unit = hours, plural(hours, "hour", "hours")
	case minutes > 0:
		n, unit = minutes, plural(minutes, "min", "minutes")
	default:
		n, unit = secs, "secs"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
