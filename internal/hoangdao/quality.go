// Package hoangdao classifies lunar days with the 12 Trực cycle and merges
// the Lục Hắc Đạo override into a single day-quality verdict.
package hoangdao

import (
	"fmt"

	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/canchi"
	"github.com/zapponejosh/lich-api/internal/luchacdao"
)

// DayType is the three-way projection used for calendar badges.
type DayType string

const (
	Good       DayType = "good"
	NeutralDay DayType = "neutral"
	Bad        DayType = "bad"
)

// monthOffset is the Trực of day 1 for each lunar month. Reference data,
// not derivable from the month branch.
var monthOffset = [13]ZodiacHour{
	1:  Thanh,
	2:  Tru,
	3:  Chap,
	4:  Khai,
	5:  Man,
	6:  Pha,
	7:  Dinh,
	8:  Thu,
	9:  Tru,
	10: Pha,
	11: Be,
	12: Dinh,
}

// specialAuspicious is the subset special dates draw from, indexed by
// (day+month) % 4.
var specialAuspicious = [4]ZodiacHour{Tru, Dinh, Nguy, Khai}

type monthDay struct{ month, day int }

var festivals = map[monthDay]bool{
	{1, 1}:   true, // Tết Nguyên Đán
	{1, 15}:  true, // Tết Nguyên Tiêu
	{3, 3}:   true, // Tết Hàn Thực
	{5, 5}:   true, // Tết Đoan Ngọ
	{7, 15}:  true, // Vu Lan
	{8, 15}:  true, // Trung Thu
	{10, 10}: true, // Tết Thường Tân
}

// Rest-only activity lists used when a Lục Hắc Đạo type applies.
var (
	unluckySuitable = []string{"Nghỉ ngơi", "Cầu an", "Tụng kinh"}
	unluckyTaboo    = []string{"Mọi việc quan trọng"}
)

// IsSpecialAuspicious reports whether the lunar day short-circuits the
// regular rotation: Tết, Rằm, Mồng 1 and the fixed festivals.
func IsSpecialAuspicious(day, month int) bool {
	switch {
	case month == 1 && day >= 1 && day <= 3:
		return true
	case day == 15, day == 1:
		return true
	}
	return festivals[monthDay{month, day}]
}

// CalculateZodiacHour returns the Trực of a lunar date.
//
// Special dates pick from Trừ, Định, Nguy and Khai by (day+month) % 4.
// Every other day is (monthOffset[month] + day - 1) % 12. Months outside
// 1..12 have no offset and rotate from Kiến.
func CalculateZodiacHour(d calendar.LunarDate) ZodiacHour {
	if IsSpecialAuspicious(d.Day, d.Month) {
		return specialAuspicious[(d.Day+d.Month)%len(specialAuspicious)]
	}
	var offset ZodiacHour
	if d.Month >= 1 && d.Month <= 12 {
		offset = monthOffset[d.Month]
	}
	return offset.Add(d.Day - 1)
}

// MapToDayType projects a Trực onto good, neutral or bad by its tier.
func MapToDayType(z ZodiacHour) DayType {
	switch z.Quality() {
	case VeryAuspicious:
		return Good
	case Neutral:
		return NeutralDay
	default:
		return Bad
	}
}

// DayQuality is the verdict for one day.
type DayQuality struct {
	Lunar          calendar.LunarDate `json:"lunar"`
	ZodiacHour     ZodiacHour         `json:"zodiacHour"`
	DayCanChi      canchi.Pair        `json:"dayCanChi"`
	Unlucky        luchacdao.Type     `json:"unlucky,omitempty"`
	Suitable       []string           `json:"suitable"`
	Taboo          []string           `json:"taboo"`
	LuckyDirection string             `json:"luckyDirection,omitempty"`
	LuckyColor     string             `json:"luckyColor,omitempty"`
}

// DetermineDayQuality classifies a lunar day. The day branch comes from the
// typed Can-Chi pair. A Lục Hắc Đạo match replaces the activity lists with
// a rest-only set but leaves the Trực untouched.
func DetermineDayQuality(d calendar.LunarDate, dayCanChi canchi.Pair) DayQuality {
	z := CalculateZodiacHour(d)
	q := DayQuality{
		Lunar:          d,
		ZodiacHour:     z,
		DayCanChi:      dayCanChi,
		Unlucky:        luchacdao.Calculate(d.Month, dayCanChi.Branch),
		Suitable:       z.SuitableActivities(),
		Taboo:          z.TabooActivities(),
		LuckyDirection: z.LuckyDirection(),
		LuckyColor:     z.LuckyColor(),
	}
	if q.Unlucky.IsUnlucky() {
		q.Suitable = append([]string(nil), unluckySuitable...)
		q.Taboo = append([]string(nil), unluckyTaboo...)
	}
	return q
}

// DayType is the badge for the day, from the Trực alone.
func (q DayQuality) DayType() DayType {
	return MapToDayType(q.ZodiacHour)
}

// IsVeryAuspicious reports a very auspicious Trực with no unlucky override.
func (q DayQuality) IsVeryAuspicious() bool {
	return q.ZodiacHour.Quality() == VeryAuspicious && !q.Unlucky.IsUnlucky()
}

// IsVeryInauspicious reports an inauspicious Trực or any unlucky override.
func (q DayQuality) IsVeryInauspicious() bool {
	return q.ZodiacHour.Quality() == Inauspicious || q.Unlucky.IsUnlucky()
}

// Description prefers the unlucky type's description, then a special-date
// description, then the Trực's own.
func (q DayQuality) Description() string {
	if q.Unlucky.IsUnlucky() {
		return q.Unlucky.Description()
	}
	if s := SpecialDateDescription(q.Lunar.Day, q.Lunar.Month); s != "" {
		return s
	}
	return q.ZodiacHour.Description()
}

// SpecialDateDescription returns the text for Tết, Rằm, Mồng 1 and the
// second half of the ghost month, or "" for an ordinary day.
func SpecialDateDescription(day, month int) string {
	switch {
	case month == 1 && day == 1:
		return "Tết Nguyên Đán - Ngày đại cát"
	case month == 1 && day >= 2 && day <= 3:
		return "Tết Nguyên Đán - Ngày tốt lành"
	case day == 15:
		return fmt.Sprintf("Rằm tháng %d - Ngày lễ, ngày tốt", month)
	case day == 1:
		return fmt.Sprintf("Mồng 1 tháng %d - Ngày mới, ngày tốt", month)
	case month == 7 && day > 15:
		return "Tháng 7 âm lịch - Nên cẩn trọng"
	}
	return ""
}
