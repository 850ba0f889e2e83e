package almanac

import (
	"errors"
	"time"

	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/canchi"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
	"github.com/zapponejosh/lich-api/internal/luchacdao"
	"github.com/zapponejosh/lich-api/internal/stars"
)

// DayInfo is the full verdict for one Gregorian date.
type DayInfo struct {
	Date    string             `json:"date"`
	Weekday string             `json:"weekday"`
	Lunar   calendar.LunarDate `json:"lunar"`

	YearCanChi  canchi.Pair `json:"yearCanChi"`
	MonthCanChi canchi.Pair `json:"monthCanChi"`
	DayCanChi   canchi.Pair `json:"dayCanChi"`
	Hour        int         `json:"hour"`
	HourCanChi  canchi.Pair `json:"hourCanChi"`

	ZodiacHour     hoangdao.ZodiacHour `json:"zodiacHour"`
	Tier           hoangdao.Tier       `json:"tier"`
	DayType        hoangdao.DayType    `json:"dayType"`
	Unlucky        *UnluckyInfo        `json:"unlucky,omitempty"`
	Description    string              `json:"description"`
	Suitable       []string            `json:"suitable"`
	Taboo          []string            `json:"taboo"`
	LuckyDirection string              `json:"luckyDirection,omitempty"`
	LuckyColor     string              `json:"luckyColor,omitempty"`

	Stars StarInfo `json:"stars"`

	// Score and EnhancedDayType come from the star-weighted path. DayType
	// above is the Trực projection and is what calendar badges use.
	Score           float64          `json:"score"`
	EnhancedDayType hoangdao.DayType `json:"enhancedDayType"`

	VeryAuspicious   bool `json:"veryAuspicious"`
	VeryInauspicious bool `json:"veryInauspicious"`

	quality hoangdao.DayQuality
}

// Quality returns the underlying day-quality verdict.
func (d *DayInfo) Quality() hoangdao.DayQuality { return d.quality }

// UnluckyInfo describes a Lục Hắc Đạo match.
type UnluckyInfo struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
	Color       string `json:"color"`
}

func newUnluckyInfo(t luchacdao.Type) *UnluckyInfo {
	if !t.IsUnlucky() {
		return nil
	}
	return &UnluckyInfo{
		Name:        t.Name(),
		Slug:        t.Slug(),
		Description: t.Description(),
		Severity:    t.Severity(),
		Color:       t.Color(),
	}
}

// StarInfo reports the star catalog for the day. Available is false when
// the lunar month has no reference data yet, which is different from a day
// with no stars.
type StarInfo struct {
	Available bool             `json:"available"`
	Good      []stars.GoodStar `json:"good"`
	Bad       []stars.BadStar  `json:"bad"`
	NetScore  float64          `json:"netScore"`
	Summary   string           `json:"summary,omitempty"`
}

var weekdays = [7]string{"Chủ nhật", "Thứ hai", "Thứ ba", "Thứ tư", "Thứ năm", "Thứ sáu", "Thứ bảy"}

func (s *Service) buildDay(date time.Time, lunar calendar.LunarDate, hour int) (*DayInfo, error) {
	year, month, err := yearMonthCanChi(lunar)
	if err != nil {
		return nil, err
	}
	day := s.days.Day(date)
	hourPair, err := canchi.HourCanChi(hour, day.Stem)
	if err != nil {
		return nil, err
	}

	q := hoangdao.DetermineDayQuality(lunar, day)

	starData, err := stars.Detect(lunar.Month, day)
	if err != nil && !errors.Is(err, stars.ErrDataUnavailable) {
		return nil, err
	}
	info := StarInfo{Available: err == nil, Good: []stars.GoodStar{}, Bad: []stars.BadStar{}}
	if starData != nil {
		info.Good = starData.Good
		info.Bad = starData.Bad
		info.NetScore = starData.NetScore()
		info.Summary = stars.Summary(starData)
	}

	return &DayInfo{
		Date:             calendar.FormatDate(date),
		Weekday:          weekdays[date.Weekday()],
		Lunar:            lunar,
		YearCanChi:       year,
		MonthCanChi:      month,
		DayCanChi:        day,
		Hour:             hour,
		HourCanChi:       hourPair,
		ZodiacHour:       q.ZodiacHour,
		Tier:             q.ZodiacHour.Quality(),
		DayType:          q.DayType(),
		Unlucky:          newUnluckyInfo(q.Unlucky),
		Description:      q.Description(),
		Suitable:         q.Suitable,
		Taboo:            q.Taboo,
		LuckyDirection:   q.LuckyDirection,
		LuckyColor:       q.LuckyColor,
		Stars:            info,
		Score:            stars.Score(q.ZodiacHour, q.Unlucky, starData),
		EnhancedDayType:  stars.EnhancedQuality(q.ZodiacHour, q.Unlucky, starData),
		VeryAuspicious:   q.IsVeryAuspicious(),
		VeryInauspicious: q.IsVeryInauspicious(),
		quality:          q,
	}, nil
}
