package calendar

import (
	"fmt"
	"time"

	lunargo "github.com/6tail/lunar-go/calendar"
)

// LunarGoOracle converts dates with github.com/6tail/lunar-go.
type LunarGoOracle struct{}

// NewLunarGoOracle returns the default oracle.
func NewLunarGoOracle() *LunarGoOracle {
	return &LunarGoOracle{}
}

// SolarToLunar converts the calendar date of t. Out-of-range years and
// panics inside the conversion library are reported as ErrConversion.
func (o *LunarGoOracle) SolarToLunar(t time.Time) (ld LunarDate, err error) {
	y, m, d := t.Date()
	if y < MinYear || y > MaxYear {
		return LunarDate{}, fmt.Errorf("%w: year %d out of range", ErrConversion, y)
	}

	defer func() {
		if r := recover(); r != nil {
			ld = LunarDate{}
			err = fmt.Errorf("%w: %s: %v", ErrConversion, FormatDate(t), r)
		}
	}()

	lunar := lunargo.NewSolarFromYmd(y, int(m), d).GetLunar()
	if lunar == nil {
		return LunarDate{}, fmt.Errorf("%w: %s", ErrConversion, FormatDate(t))
	}

	month := lunar.GetMonth()
	leap := month < 0
	if leap {
		month = -month
	}

	return LunarDate{
		Day:   lunar.GetDay(),
		Month: month,
		Year:  lunar.GetYear(),
		Leap:  leap,
	}, nil
}
