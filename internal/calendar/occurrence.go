package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Frequency of a lunar recurrence.
type Frequency string

const (
	Yearly  Frequency = "yearly"
	Monthly Frequency = "monthly"
)

// MaxOccurrenceSpanDays bounds how far Occurrences walks from the rule start.
const MaxOccurrenceSpanDays = 366 * 100

// ErrSpanTooLarge is returned when an expansion would walk more than
// MaxOccurrenceSpanDays days.
var ErrSpanTooLarge = errors.New("occurrence span too large")

// Rule describes an event that repeats on a lunar day, such as a death
// anniversary (yearly) or the first day of every lunar month (monthly).
type Rule struct {
	Frequency Frequency
	Day       int       // lunar day, 1-30
	Month     int       // lunar month for yearly rules, 1-12
	Start     time.Time // first possible occurrence; zero means the range start
	Interval  int       // keep every Nth occurrence, defaults to 1
	Count     int       // stop after Count occurrences, 0 for no limit
}

// Validate checks that the rule can be expanded.
func (r Rule) Validate() error {
	switch r.Frequency {
	case Yearly:
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("%w: month %d", ErrInvalidLunarDate, r.Month)
		}
	case Monthly:
	default:
		return fmt.Errorf("unknown frequency %q", r.Frequency)
	}
	if r.Day < 1 || r.Day > 30 {
		return fmt.Errorf("%w: day %d", ErrInvalidLunarDate, r.Day)
	}
	if r.Interval < 0 || r.Count < 0 {
		return errors.New("interval and count must not be negative")
	}
	return nil
}

func (r Rule) matches(d LunarDate) bool {
	if d.Leap || d.Day != r.Day {
		return false
	}
	return r.Frequency == Monthly || d.Month == r.Month
}

// Occurrences expands rule into the solar dates between from and to,
// inclusive, in ascending order.
//
// Interval and Count are counted from rule.Start, so the phase of an
// "every other year" rule does not depend on the requested range. Leap months
// are skipped, and a lunar day 30 only occurs in 30-day months.
func Occurrences(ctx context.Context, oracle Oracle, rule Rule, from, to time.Time) ([]time.Time, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	from, to = DateOnly(from, nil), DateOnly(to, nil)
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", FormatDate(to), FormatDate(from))
	}

	start := from
	if !rule.Start.IsZero() {
		start = DateOnly(rule.Start, nil)
	}
	if DaysBetween(start, to) > MaxOccurrenceSpanDays {
		return nil, fmt.Errorf("%w: %s to %s", ErrSpanTooLarge, FormatDate(start), FormatDate(to))
	}

	interval := rule.Interval
	if interval == 0 {
		interval = 1
	}

	var result []time.Time
	seen := 0
	for d := start; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Day() == 1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		lunar, err := oracle.SolarToLunar(d)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", FormatDate(d), err)
		}
		if !rule.matches(lunar) {
			continue
		}

		n := seen
		seen++
		if n%interval != 0 {
			continue
		}
		if rule.Count > 0 && n/interval >= rule.Count {
			break
		}
		if !d.Before(from) {
			result = append(result, d)
		}
	}
	return result, nil
}
