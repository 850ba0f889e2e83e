package calendar

import "time"

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// ParseDateString parses a date in YYYY-MM-DD format.
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// DateOnly returns midnight UTC of t's calendar date in loc. A nil loc keeps
// t's own location.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end, nil).Sub(DateOnly(start, nil)).Hours() / 24)
}
