package calendar

import (
	"fmt"
	"time"
)

// MaxSearchDays bounds the forward search in LunarToSolar.
const MaxSearchDays = 365

// LunarToSolar finds the Gregorian date of a lunar date.
//
// The search starts on January 1 of the lunar year and walks forward one day
// at a time for at most MaxSearchDays days, asking the oracle for each
// candidate. The first exact day/month/year match is returned with exact set
// to true. Leap months are not disambiguated; the first match wins.
//
// When the search is exhausted the lunar triple is reinterpreted as a
// Gregorian date and exact is false. This happens for late lunar months whose
// days fall in the following Gregorian year.
func LunarToSolar(oracle Oracle, target LunarDate) (date time.Time, exact bool, err error) {
	if err := target.Validate(); err != nil {
		return time.Time{}, false, err
	}

	start := time.Date(target.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxSearchDays; i++ {
		candidate := start.AddDate(0, 0, i)
		got, err := oracle.SolarToLunar(candidate)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("search %s: %w", target, err)
		}
		if got.Same(target) {
			return candidate, true, nil
		}
	}

	return time.Date(target.Year, time.Month(target.Month), target.Day, 0, 0, 0, 0, time.UTC), false, nil
}
