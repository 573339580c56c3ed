package render

import (
	"strconv"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// PrettyDuration buckets elapsed minutes into a relative phrase. Negative
// input is treated as zero.
func PrettyDuration(minutes int) string {
	m := max(minutes, 0)

	switch {
	case m == 0:
		return "just now"
	case m == 1:
		return "a minute ago"
	case m < minutesPerHour:
		return "about " + strconv.Itoa(m) + " minutes"
	case m < minutesPerDay:
		h := m / minutesPerHour
		hours := strconv.Itoa(h) + " hours "
		if h == 1 {
			hours = "1 hour "
		}
		return hours + strconv.Itoa(m%minutesPerHour) + " minutes"
	default:
		d := m / minutesPerDay
		days := strconv.Itoa(d) + " days "
		if d == 1 {
			days = "1 day "
		}
		rest := m % minutesPerDay
		return days + strconv.Itoa(rest/minutesPerHour) + " hours " + strconv.Itoa(rest%minutesPerHour) + " minutes"
	}
}

// ElapsedMinutes returns the whole minutes between t and now.
func ElapsedMinutes(now, t time.Time) int {
	return int(now.Sub(t) / time.Minute)
}

// Freshness renders how long ago t happened relative to now.
func Freshness(now, t time.Time) string {
	if t.IsZero() {
		return UnknownValue
	}
	return PrettyDuration(ElapsedMinutes(now, t))
}
