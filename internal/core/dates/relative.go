package dates

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, using the
// calendar dates in each time's own location. DST shifts do not matter.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Relative labels the calendar day of t relative to the day of now:
// "today", "tomorrow", "yesterday", or a phrase like "3 days from now".
func Relative(t, now time.Time) string {
	days := DaysBetween(now, t)
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	case -1:
		return "yesterday"
	}

	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return humanize.RelTime(base.AddDate(0, 0, days), base, "ago", "from now")
}

// RelativeTime labels t relative to now with sub-day precision, used for
// due dates.
func RelativeTime(t, now time.Time) string {
	if DaysBetween(now, t) == 0 {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return Relative(t, now)
}
