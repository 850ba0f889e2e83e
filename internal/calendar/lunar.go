// Package calendar is the boundary between Gregorian dates and the Vietnamese
// lunar calendar. Solar to lunar conversion is delegated to an Oracle; the
// inverse direction is computed locally by a bounded search.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConversion is returned when the oracle cannot convert a date.
	ErrConversion = errors.New("lunar conversion failed")

	// ErrInvalidLunarDate is returned for lunar dates outside the supported
	// ranges (day 1-30, month 1-12, year 1-9999).
	ErrInvalidLunarDate = errors.New("invalid lunar date")
)

// Supported lunar year range.
const (
	MinYear = 1
	MaxYear = 9999
)

// LunarDate is a day of the lunar calendar.
type LunarDate struct {
	Day   int  `json:"day"`
	Month int  `json:"month"`
	Year  int  `json:"year"`
	Leap  bool `json:"leap,omitempty"`
}

// Validate checks the lunar date against the supported ranges.
func (d LunarDate) Validate() error {
	switch {
	case d.Day < 1 || d.Day > 30:
		return fmt.Errorf("%w: day %d", ErrInvalidLunarDate, d.Day)
	case d.Month < 1 || d.Month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidLunarDate, d.Month)
	case d.Year < MinYear || d.Year > MaxYear:
		return fmt.Errorf("%w: year %d", ErrInvalidLunarDate, d.Year)
	}
	return nil
}

// Same reports whether d and other name the same day, month and year. The
// leap flag is ignored.
func (d LunarDate) Same(other LunarDate) bool {
	return d.Day == other.Day && d.Month == other.Month && d.Year == other.Year
}

func (d LunarDate) String() string {
	s := fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
	if d.Leap {
		s += " (nhuận)"
	}
	return s
}

// Oracle converts Gregorian dates to lunar dates.
type Oracle interface {
	SolarToLunar(date time.Time) (LunarDate, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(date time.Time) (LunarDate, error)

// SolarToLunar calls f.
func (f OracleFunc) SolarToLunar(date time.Time) (LunarDate, error) {
	return f(date)
}
