// Package dates turns free-text date phrases into zone-aware timestamps and
// formats timestamps as short relative labels.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrAmbiguousDate is returned when a phrase has no date interpretation.
var ErrAmbiguousDate = errors.New("date phrase unclear")

// EndOfWorkday is the hour used when a phrase names a day but no time.
const EndOfWorkday = 18

// Resolver interprets date phrases relative to a reference time and anchors
// the result in a fixed location.
type Resolver struct {
	loc    *time.Location
	phrase *when.Parser
	clock  *when.Parser
	offset *when.Parser
	now    func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver returns a Resolver for loc. A nil loc means time.Local.
func NewResolver(loc *time.Location, opts ...ResolverOption) *Resolver {
	if loc == nil {
		loc = time.Local
	}

	phrase := when.New(nil)
	phrase.Add(en.All...)
	phrase.Add(common.All...)
	phrase.Add(nextPeriod())

	// Only rules that pin a time of day. A phrase matching none of these is
	// treated as date-only.
	clock := when.New(nil)
	clock.Add(
		en.HourMinute(rules.Override),
		en.Hour(rules.Override),
		en.CasualTime(rules.Override),
	)

	offset := when.New(nil)
	offset.Add(clockOffset())

	r := &Resolver{
		loc:    loc,
		phrase: phrase,
		clock:  clock,
		offset: offset,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Location returns the location results are anchored in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Now returns the current time in the resolver's location.
func (r *Resolver) Now() time.Time {
	return r.now().In(r.loc)
}

// Resolve interprets text relative to ref. Numeric dates are read month
// first. Phrases without a time of day resolve to 18:00:00 on the named day.
func (r *Resolver) Resolve(text string, ref time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty phrase", ErrAmbiguousDate)
	}

	ref = ref.In(r.loc)

	if t, ok, err := r.resolveNumeric(text, ref); ok {
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", ErrAmbiguousDate, text, err)
		}
		return t, nil
	}

	res, err := r.phrase.Parse(text, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrAmbiguousDate, text, err)
	}
	if res == nil || !covers(text, res) {
		return time.Time{}, errUnclear(text)
	}

	naive := res.Time
	hour, minute, second := naive.Clock()
	if !r.hasClock(text, ref) {
		hour, minute, second = EndOfWorkday, 0, 0
	}

	// Re-anchor the wall clock in loc regardless of the zone the parser
	// returned.
	y, m, d := naive.Date()
	return time.Date(y, m, d, hour, minute, second, 0, r.loc), nil
}

// hasClock reports whether text names a time of day or a sub-day offset.
func (r *Resolver) hasClock(text string, ref time.Time) bool {
	for _, p := range []*when.Parser{r.clock, r.offset} {
		if res, err := p.Parse(text, ref); err == nil && res != nil {
			return true
		}
	}
	return false
}

func errUnclear(text string) error {
	return fmt.Errorf("%w: %q", ErrAmbiguousDate, text)
}

// ResolveNow interprets text relative to the current time.
func (r *Resolver) ResolveNow(text string) (time.Time, error) {
	return r.Resolve(text, r.Now())
}

// IsPast reports whether t is before now. A nil t is never past.
func IsPast(t *time.Time, now time.Time) bool {
	if t == nil {
		return false
	}
	return t.Before(now)
}

// LoadLocation resolves a timezone override. An empty name means the
// system's local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
