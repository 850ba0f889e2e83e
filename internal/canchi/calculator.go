package canchi

import (
	"fmt"
	"time"
)

// Calibration offsets for the Canh-first stem ordering. The day stem offset is
// the traditional +9 plus a +4 correction for the enum order.
const (
	dayStemOffset   = 13
	dayBranchOffset = 1
	yearBranchShift = 8
)

// Year bounds accepted by YearCanChi.
const (
	MinYear = 1
	MaxYear = 9999
)

// Five Tigers: stem of lunar month 1, indexed by yearStem % 5.
//
//	Ất/Canh  -> Mậu
//	Bính/Tân -> Canh
//	Đinh/Nhâm -> Nhâm
//	Mậu/Quý  -> Giáp
//	Giáp/Kỷ  -> Bính
var firstMonthStem = [5]Stem{Mau, Canh, Nham, Giap, Binh}

// Five Rats: stem of the Tý hour, indexed by dayStem % 5.
//
//	Ất/Canh  -> Bính
//	Bính/Tân -> Mậu
//	Đinh/Nhâm -> Canh
//	Mậu/Quý  -> Nhâm
//	Giáp/Kỷ  -> Giáp
var firstHourStem = [5]Stem{Binh, Mau, Canh, Nham, Giap}

// JulianDayNumber returns the integer Julian Day Number of the calendar date
// of t (Fliegel-Van Flandern). Only year, month and day are used.
func JulianDayNumber(t time.Time) int {
	y, m, d := t.Date()
	return jdn(y, int(m), d)
}

func jdn(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// DayCanChi returns the Can-Chi of the calendar date of t.
//
// Examples:
//   - 2024-01-01: Giáp Tý
//   - 2025-11-24: Đinh Dậu
func DayCanChi(t time.Time) Pair {
	n := JulianDayNumber(t)
	return Pair{
		Stem:   Stem(mod(n+dayStemOffset, StemCount)),
		Branch: Branch(mod(n+dayBranchOffset, BranchCount)),
	}
}

// YearCanChi returns the Can-Chi of a lunar year.
//
// Examples:
//   - 1900: Canh Tý
//   - 2024: Giáp Thìn
//   - 2025: Ất Tỵ
func YearCanChi(lunarYear int) (Pair, error) {
	if lunarYear < MinYear || lunarYear > MaxYear {
		return Pair{}, fmt.Errorf("%w: %d", ErrInvalidYear, lunarYear)
	}
	return Pair{
		Stem:   Stem(lunarYear % StemCount),
		Branch: Branch((lunarYear + yearBranchShift) % BranchCount),
	}, nil
}

// MonthCanChi returns the Can-Chi of a lunar month using the Five Tigers rule.
// Month 1 is always a Dần month.
func MonthCanChi(lunarMonth int, yearStem Stem) (Pair, error) {
	if lunarMonth < 1 || lunarMonth > 12 {
		return Pair{}, fmt.Errorf("%w: %d", ErrInvalidMonth, lunarMonth)
	}
	if !yearStem.Valid() {
		return Pair{}, fmt.Errorf("%w: year stem %d", ErrInvalidPair, int(yearStem))
	}
	base := firstMonthStem[int(yearStem)%5]
	return Pair{
		Stem:   base.Add(lunarMonth - 1),
		Branch: Branch((lunarMonth + 1) % BranchCount),
	}, nil
}

// HourIndex maps a clock hour (0-23) to its 2-hour window, 0 (Tý) to 11 (Hợi).
// Hour 23 already belongs to the next day's Tý window.
func HourIndex(hour int) int {
	if hour == 23 {
		return 0
	}
	return ((hour + 1) / 2) % BranchCount
}

// HourCanChi returns the Can-Chi of a clock hour using the Five Rats rule.
func HourCanChi(hour int, dayStem Stem) (Pair, error) {
	if hour < 0 || hour > 23 {
		return Pair{}, fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	if !dayStem.Valid() {
		return Pair{}, fmt.Errorf("%w: day stem %d", ErrInvalidPair, int(dayStem))
	}
	idx := HourIndex(hour)
	base := firstHourStem[int(dayStem)%5]
	return Pair{
		Stem:   base.Add(idx),
		Branch: Branch(idx),
	}, nil
}
