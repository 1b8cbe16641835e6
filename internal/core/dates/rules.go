package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/en"
)

// nextPeriod handles "next week", "next month" and "next year". A weekday
// already in the phrase ("friday next week") takes precedence.
func nextPeriod() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:\W|^)(next\s+(week|month|year))(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, _ *rules.Options, ref time.Time) (bool, error) {
			if c.Weekday != nil {
				return false, nil
			}

			switch strings.ToLower(m.Captures[1]) {
			case "week":
				c.Duration += 7 * 24 * time.Hour
			case "month":
				month := int(ref.Month()) + 1
				c.Month = &month
			case "year":
				year := ref.Year() + 1
				c.Year = &year
			}
			return true, nil
		},
	}
}

// clockOffset matches phrases that move the clock rather than the day:
// "now", "in 2 hours", "within half an hour". It only marks the phrase as
// carrying a time of day; the phrase parser computes the value.
func clockOffset() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile("(?i)(?:\\W|^)(now|(?:within|in)\\s*" +
			"(?:" + en.INTEGER_WORDS_PATTERN + "|[0-9]+|an?(?:\\s*few)?|half(?:\\s*an?)?)\\s*" +
			"(?:seconds?|min(?:ute)?s?|hours?))(?:\\W|$)"),
		Applier: func(*rules.Match, *rules.Context, *rules.Options, time.Time) (bool, error) {
			return true, nil
		},
	}
}
