package stars

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zapponejosh/lich-api/internal/canchi"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
	"github.com/zapponejosh/lich-api/internal/luchacdao"
)

// ErrDataUnavailable means no star data has been entered for the month yet.
// It is distinct from a month with data but no stars on the given day.
var ErrDataUnavailable = errors.New("star data not available for month")

// DayStarData is the set of stars present on one day Can-Chi of a month.
type DayStarData struct {
	CanChi canchi.Pair `json:"canChi"`
	Good   []GoodStar  `json:"good"`
	Bad    []BadStar   `json:"bad"`
}

// NetScore sums good and bad weights. Bad weights are already negative.
func (d DayStarData) NetScore() float64 {
	var score float64
	for _, s := range d.Good {
		score += s.Weight()
	}
	for _, s := range d.Bad {
		score += s.Weight()
	}
	return score
}

// HasGood reports whether star is present. A nil receiver has no stars.
func (d *DayStarData) HasGood(star GoodStar) bool {
	if d == nil {
		return false
	}
	for _, s := range d.Good {
		if s == star {
			return true
		}
	}
	return false
}

// HasBad reports whether star is present. A nil receiver has no stars.
func (d *DayStarData) HasBad(star BadStar) bool {
	if d == nil {
		return false
	}
	for _, s := range d.Bad {
		if s == star {
			return true
		}
	}
	return false
}

// monthData maps lunar month -> day Can-Chi -> stars. Month 9 is the only
// month transcribed from Lịch Vạn Niên so far, and it holds a single row.
var monthData = map[int]map[canchi.Pair]DayStarData{
	9: {
		{Stem: canchi.Giap, Branch: canchi.Ti}: {
			CanChi: canchi.Pair{Stem: canchi.Giap, Branch: canchi.Ti},
			Good:   []GoodStar{ThienAn},
			Bad:    []BadStar{HoaTai, ThienHoa, ThoOn, HoangSa, PhiMaSat, NguQuy, QuaTu},
		},
	},
}

// Detect returns the stars for a day Can-Chi in a lunar month.
//
// A month without reference data returns ErrDataUnavailable. A month with
// data but no row for the pair returns nil, nil.
func Detect(month int, pair canchi.Pair) (*DayStarData, error) {
	data, ok := monthData[month]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDataUnavailable, month)
	}
	d, ok := data[pair]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// Completeness reports how many of the 60 day Can-Chi rows are entered for
// a month.
func Completeness(month int) (completed, total int) {
	return len(monthData[month]), 60
}

// Summary renders the stars as "Sao tốt: ... | Sao xấu: ...". It returns ""
// when there is nothing to show.
func Summary(d *DayStarData) string {
	if d == nil {
		return ""
	}
	var parts []string
	if len(d.Good) > 0 {
		names := make([]string, len(d.Good))
		for i, s := range d.Good {
			names[i] = s.Name()
		}
		parts = append(parts, "Sao tốt: "+strings.Join(names, ", "))
	}
	if len(d.Bad) > 0 {
		names := make([]string, len(d.Bad))
		for i, s := range d.Bad {
			names[i] = s.Name()
		}
		parts = append(parts, "Sao xấu: "+strings.Join(names, ", "))
	}
	return strings.Join(parts, " | ")
}

// baseScore weights each Trực for the star-weighted path.
func baseScore(z hoangdao.ZodiacHour) float64 {
	switch z {
	case hoangdao.Tru, hoangdao.Dinh, hoangdao.Nguy, hoangdao.Chap:
		return 2.0
	case hoangdao.Thanh, hoangdao.Khai:
		return -0.3
	case hoangdao.Pha, hoangdao.Be:
		return -3.0
	default:
		return 0
	}
}

// Score is the star-weighted day score: a base per Trực, minus a penalty
// scaled from the unlucky type's severity (0.5 to 2.5), plus the star net
// score. A nil d contributes nothing.
func Score(z hoangdao.ZodiacHour, unlucky luchacdao.Type, d *DayStarData) float64 {
	score := baseScore(z)
	if unlucky.IsUnlucky() {
		score -= float64(unlucky.Severity()) / 5 * 2.5
	}
	if d != nil {
		score += d.NetScore()
	}
	return score
}

// EnhancedQuality buckets Score into good (>= 1), neutral (>= -1) or bad.
// It is independent of hoangdao.MapToDayType.
func EnhancedQuality(z hoangdao.ZodiacHour, unlucky luchacdao.Type, d *DayStarData) hoangdao.DayType {
	switch score := Score(z, unlucky, d); {
	case score >= 1:
		return hoangdao.Good
	case score >= -1:
		return hoangdao.NeutralDay
	default:
		return hoangdao.Bad
	}
}
