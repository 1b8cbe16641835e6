package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
)

// Slash dates are month first.
var (
	yearLayouts    = []string{"2006-01-02", "1/2/2006", "1/2/06"}
	noYearLayouts  = []string{"1/2"}
	numericToken   = regexp.MustCompile(`\d+(?:[/.-]\d+)+`)
	clockOnlyRegex = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// resolveNumeric handles phrases that start with a numeric date, optionally
// followed by a time of day. ok is false when the first word is not a
// numeric date.
func (r *Resolver) resolveNumeric(text string, ref time.Time) (time.Time, bool, error) {
	if ts, err := time.Parse(time.RFC3339, text); err == nil {
		return ts.In(r.loc), true, nil
	}

	datePart, clockPart, _ := strings.Cut(text, " ")
	clockPart = strings.TrimSpace(clockPart)

	day, ok := parseNumericDate(datePart, ref, r.loc)
	if !ok {
		return time.Time{}, false, nil
	}

	if clockPart == "" {
		return withClock(day, EndOfWorkday, 0, 0), true, nil
	}

	if clockOnlyRegex.MatchString(clockPart) {
		c, err := time.Parse("15:04", clockPart)
		if err != nil {
			return time.Time{}, true, err
		}
		return withClock(day, c.Hour(), c.Minute(), 0), true, nil
	}

	res, err := r.clock.Parse(clockPart, day)
	if err != nil {
		return time.Time{}, true, err
	}
	if res == nil || !covers(clockPart, res) {
		return time.Time{}, true, fmt.Errorf("no time of day in %q", clockPart)
	}
	h, m, s := res.Time.Clock()
	return withClock(day, h, m, s), true, nil
}

func parseNumericDate(s string, ref time.Time, loc *time.Location) (time.Time, bool) {
	for _, layout := range yearLayouts {
		if d, err := time.ParseInLocation(layout, s, loc); err == nil {
			return d, true
		}
	}

	for _, layout := range noYearLayouts {
		d, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		// Without a year the next occurrence is meant.
		d = time.Date(ref.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		if d.Before(Day(ref)) {
			d = d.AddDate(1, 0, 0)
		}
		return d, true
	}

	return time.Time{}, false
}

// covers reports whether every numeric date token in text lies inside the
// span the parser consumed.
func covers(text string, res *when.Result) bool {
	start, end := res.Index, res.Index+len(res.Text)
	for _, span := range numericToken.FindAllStringIndex(text, -1) {
		if span[0] < start || span[1] > end {
			return false
		}
	}
	return true
}

func withClock(day time.Time, hour, minute, second int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, second, 0, day.Location())
}
