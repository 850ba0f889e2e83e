// Package almanac assembles the per-day verdict for a Gregorian date: the
// lunar date, the Can-Chi of year, month, day and hour, the 12 Trực
// classification, the Lục Hắc Đạo override and the star score.
package almanac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/canchi"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
	"github.com/zapponejosh/lich-api/internal/logger"
)

// Errors returned for bad range requests.
var (
	ErrInvalidRange  = errors.New("invalid date range")
	ErrRangeTooLarge = errors.New("date range too large")
	ErrInvalidHour   = canchi.ErrInvalidHour
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Options configures a Service. Zero values select the defaults.
type Options struct {
	Location     *time.Location // defines "today"; defaults to UTC
	MemoSize     int            // day Can-Chi memo capacity; 0 disables it
	MaxRangeDays int            // longest Range or ICS span; defaults to 90
	CalendarName string         // X-WR-CALNAME of exported feeds
	Clock        Clock
}

// DefaultMaxRangeDays bounds range requests when Options leaves it unset.
const DefaultMaxRangeDays = 90

// Service computes almanac data on top of a lunar oracle. It is safe for
// concurrent use.
type Service struct {
	oracle       calendar.Oracle
	days         *canchi.Calculator
	clock        Clock
	loc          *time.Location
	maxRangeDays int
	calendarName string
}

// NewService returns a Service backed by oracle.
func NewService(oracle calendar.Oracle, opts Options) *Service {
	s := &Service{
		oracle:       oracle,
		clock:        opts.Clock,
		loc:          opts.Location,
		maxRangeDays: opts.MaxRangeDays,
		calendarName: opts.CalendarName,
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.maxRangeDays <= 0 {
		s.maxRangeDays = DefaultMaxRangeDays
	}
	if s.calendarName == "" {
		s.calendarName = DefaultCalendarName
	}
	s.days = canchi.NewCalculator(opts.MemoSize)
	return s
}

// Location returns the time zone that defines "today".
func (s *Service) Location() *time.Location { return s.loc }

// MaxRangeDays returns the longest span Range accepts, in days.
func (s *Service) MaxRangeDays() int { return s.maxRangeDays }

// Now returns the current time in the service location.
func (s *Service) Now() time.Time { return s.clock.Now().In(s.loc) }

// Today returns the verdict for the current date and hour in the service
// location.
func (s *Service) Today(ctx context.Context) (*DayInfo, error) {
	now := s.Now()
	return s.DayAt(ctx, calendar.DateOnly(now, nil), now.Hour())
}

// Day returns the verdict for date, with the hour Can-Chi of the current
// hour in the service location.
func (s *Service) Day(ctx context.Context, date time.Time) (*DayInfo, error) {
	return s.DayAt(ctx, date, s.Now().Hour())
}

// DayAt returns the verdict for date with the hour Can-Chi of hour (0-23).
func (s *Service) DayAt(ctx context.Context, date time.Time, hour int) (*DayInfo, error) {
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	date = calendar.DateOnly(date, nil)

	lunar, err := s.solarToLunar(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.buildDay(date, lunar, hour)
}

// Range returns one verdict per day from start to end inclusive. The hour
// Can-Chi of every day is taken at noon.
func (s *Service) Range(ctx context.Context, start, end time.Time) ([]DayInfo, error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	start, end = calendar.DateOnly(start, nil), calendar.DateOnly(end, nil)

	days := make([]DayInfo, 0, calendar.DaysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := s.DayAt(ctx, d, 12)
		if err != nil {
			return nil, err
		}
		days = append(days, *info)
	}

	logger.Debug(ctx, "computed day range",
		logger.Date("start", start),
		logger.Date("end", end),
		slog.Int("days", len(days)),
	)
	return days, nil
}

func (s *Service) checkRange(start, end time.Time) error {
	n := calendar.DaysBetween(start, end)
	if n < 0 {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, calendar.FormatDate(end), calendar.FormatDate(start))
	}
	if n+1 > s.maxRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d", ErrRangeTooLarge, n+1, s.maxRangeDays)
	}
	return nil
}

// Hours returns the twelve 2-hour windows of date.
func (s *Service) Hours(ctx context.Context, date time.Time) ([12]hoangdao.HourlyZodiac, error) {
	date = calendar.DateOnly(date, nil)
	lunar, err := s.solarToLunar(ctx, date)
	if err != nil {
		return [12]hoangdao.HourlyZodiac{}, err
	}
	q := hoangdao.DetermineDayQuality(lunar, s.days.Day(date))
	return hoangdao.HourlyZodiacs(q), nil
}

// LunarInfo is a solar date with its lunar date and Can-Chi designations.
type LunarInfo struct {
	Solar       string             `json:"solar"`
	Lunar       calendar.LunarDate `json:"lunar"`
	YearCanChi  canchi.Pair        `json:"yearCanChi"`
	MonthCanChi canchi.Pair        `json:"monthCanChi"`
	DayCanChi   canchi.Pair        `json:"dayCanChi"`
}

// Lunar converts date to the lunar calendar.
func (s *Service) Lunar(ctx context.Context, date time.Time) (*LunarInfo, error) {
	date = calendar.DateOnly(date, nil)
	lunar, err := s.solarToLunar(ctx, date)
	if err != nil {
		return nil, err
	}
	year, month, err := yearMonthCanChi(lunar)
	if err != nil {
		return nil, err
	}
	return &LunarInfo{
		Solar:       calendar.FormatDate(date),
		Lunar:       lunar,
		YearCanChi:  year,
		MonthCanChi: month,
		DayCanChi:   s.days.Day(date),
	}, nil
}

// Solar converts a lunar date back to the Gregorian calendar. exact is false
// when the bounded search missed and the lunar triple was reinterpreted as a
// Gregorian date.
func (s *Service) Solar(ctx context.Context, lunar calendar.LunarDate) (date time.Time, exact bool, err error) {
	date, exact, err = calendar.LunarToSolar(s.oracle, lunar)
	if err != nil {
		logger.Warn(ctx, "lunar to solar conversion failed", slog.String("lunar", lunar.String()), slog.Any("error", err))
		return time.Time{}, false, err
	}
	if !exact {
		logger.Warn(ctx, "lunar to solar conversion is approximate",
			slog.String("lunar", lunar.String()),
			logger.Date("fallback", date),
		)
	}
	return date, exact, nil
}

// Occurrences expands a lunar recurrence into solar dates.
func (s *Service) Occurrences(ctx context.Context, rule calendar.Rule, from, to time.Time) ([]time.Time, error) {
	dates, err := calendar.Occurrences(ctx, s.oracle, rule, from, to)
	if err != nil {
		if errors.Is(err, calendar.ErrConversion) {
			logger.Warn(ctx, "lunar conversion failed", slog.Any("error", err))
		}
		return nil, err
	}
	return dates, nil
}

func (s *Service) solarToLunar(ctx context.Context, date time.Time) (calendar.LunarDate, error) {
	lunar, err := s.oracle.SolarToLunar(date)
	if err != nil {
		logger.Warn(ctx, "lunar conversion failed",
			logger.Date("date", date),
			slog.Any("error", err),
		)
		return calendar.LunarDate{}, fmt.Errorf("convert %s: %w", calendar.FormatDate(date), err)
	}
	return lunar, nil
}

func yearMonthCanChi(lunar calendar.LunarDate) (year, month canchi.Pair, err error) {
	year, err = canchi.YearCanChi(lunar.Year)
	if err != nil {
		return canchi.Pair{}, canchi.Pair{}, err
	}
	month, err = canchi.MonthCanChi(lunar.Month, year.Stem)
	if err != nil {
		return canchi.Pair{}, canchi.Pair{}, err
	}
	return year, month, nil
}
