package canchi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJulianDayNumber(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{date(2000, time.January, 1), 2451545},
		{date(2006, time.January, 2), 2453738},
		{date(2024, time.January, 1), 2460311},
		{date(2025, time.November, 24), 2461004},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, JulianDayNumber(tt.date))
		})
	}
}

func TestDayCanChi_ReferenceDates(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date(2024, time.January, 1), "Giáp Tý"},
		{date(2024, time.February, 10), "Giáp Thìn"},
		{date(2000, time.January, 1), "Mậu Ngọ"},
		{date(2025, time.November, 2), "Ất Hợi"},
		{date(2025, time.November, 3), "Bính Tý"},
		{date(2025, time.November, 15), "Mậu Tý"},
		{date(2025, time.November, 20), "Quý Tỵ"},
		{date(2025, time.November, 24), "Đinh Dậu"},
		{date(2025, time.November, 28), "Tân Sửu"},
		{date(2025, time.December, 1), "Giáp Thìn"},
		{date(2025, time.December, 8), "Tân Hợi"},
		{date(2025, time.December, 12), "Ất Mão"},
		{date(2025, time.December, 15), "Mậu Ngọ"},
		{date(2026, time.January, 1), "Ất Hợi"},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			got := DayCanChi(tt.date)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.Authentic(), "day pairs must be authentic")
		})
	}
}

func TestDayCanChi_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, time.November, 24, 0, 5, 0, 0, time.UTC)
	night := time.Date(2025, time.November, 24, 23, 55, 0, 0, time.UTC)
	assert.Equal(t, DayCanChi(morning), DayCanChi(night))
}

func TestDayCanChi_PeriodSixty(t *testing.T) {
	start := date(1900, time.January, 1)
	for i := 0; i < 3000; i += 7 {
		d := start.AddDate(0, 0, i)
		require.Equal(t, DayCanChi(d), DayCanChi(d.AddDate(0, 0, 60)), "date %s", d.Format("2006-01-02"))
	}
}

func TestDayCanChi_AdvancesOneStepPerDay(t *testing.T) {
	d := date(2025, time.January, 1)
	prev := DayCanChi(d)
	for i := 1; i < 120; i++ {
		cur := DayCanChi(d.AddDate(0, 0, i))
		assert.Equal(t, prev.Stem.Add(1), cur.Stem)
		assert.Equal(t, prev.Branch.Add(1), cur.Branch)
		assert.Equal(t, (prev.Index60()+1)%60, cur.Index60())
		prev = cur
	}
}

func TestYearCanChi(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{1, "Tân Dậu"},
		{1800, "Canh Thân"},
		{1840, "Canh Tý"},
		{1850, "Canh Tuất"},
		{1899, "Kỷ Hợi"},
		{1900, "Canh Tý"},
		{1960, "Canh Tý"},
		{1984, "Giáp Tý"},
		{2020, "Canh Tý"},
		{2024, "Giáp Thìn"},
		{2025, "Ất Tỵ"},
		{2026, "Bính Ngọ"},
		{9999, "Kỷ Hợi"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := YearCanChi(tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestYearCanChi_Invalid(t *testing.T) {
	for _, year := range []int{0, -1, -100, 10000, 99999} {
		_, err := YearCanChi(year)
		assert.ErrorIs(t, err, ErrInvalidYear, "year %d", year)
	}
}

func TestMonthCanChi(t *testing.T) {
	tests := []struct {
		name     string
		month    int
		yearStem Stem
		want     string
	}{
		{"Ất year month 9", 9, At, "Bính Tuất"},
		{"Ất year month 10", 10, At, "Đinh Hợi"},
		{"Ất year month 11", 11, At, "Mậu Tý"},
		{"Ất year month 1", 1, At, "Mậu Dần"},
		{"Giáp year month 1", 1, Giap, "Bính Dần"},
		{"Kỷ year month 1", 1, Ky, "Bính Dần"},
		{"Bính year month 1", 1, Binh, "Canh Dần"},
		{"Đinh year month 1", 1, Dinh, "Nhâm Dần"},
		{"Mậu year month 1", 1, Mau, "Giáp Dần"},
		{"Giáp year month 12", 12, Giap, "Đinh Sửu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthCanChi(tt.month, tt.yearStem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMonthCanChi_Invalid(t *testing.T) {
	_, err := MonthCanChi(0, Giap)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = MonthCanChi(13, Giap)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = MonthCanChi(1, Stem(10))
	assert.ErrorIs(t, err, ErrInvalidPair)
}

func TestHourIndex(t *testing.T) {
	tests := []struct {
		hour int
		want Branch
	}{
		{0, Ti}, {1, Suu}, {2, Suu}, {3, Dan}, {11, Ngo}, {12, Ngo},
		{13, Mui}, {21, Hoi}, {22, Hoi}, {23, Ti},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Branch(HourIndex(tt.hour)), "hour %d", tt.hour)
	}
}

func TestHourCanChi(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		dayStem Stem
		want    string
	}{
		{"Giáp day midnight", 0, Giap, "Giáp Tý"},
		{"Giáp day noon", 12, Giap, "Canh Ngọ"},
		{"Kỷ day 23h", 23, Ky, "Giáp Tý"},
		{"Ất day midnight", 0, At, "Bính Tý"},
		{"Canh day 1h", 1, Canh, "Đinh Sửu"},
		{"Bính day midnight", 0, Binh, "Mậu Tý"},
		{"Đinh day midnight", 0, Dinh, "Canh Tý"},
		{"Mậu day midnight", 0, Mau, "Nhâm Tý"},
		{"Quý day 22h", 22, Quy, "Quý Hợi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HourCanChi(tt.hour, tt.dayStem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.True(t, got.Authentic())
		})
	}
}

func TestHourCanChi_Invalid(t *testing.T) {
	_, err := HourCanChi(-1, Giap)
	assert.ErrorIs(t, err, ErrInvalidHour)
	_, err = HourCanChi(24, Giap)
	assert.ErrorIs(t, err, ErrInvalidHour)
}

func TestCalculator_Memo(t *testing.T) {
	c := NewCalculator(3)
	d := date(2025, time.November, 24)

	for i := 0; i < 3; i++ {
		assert.Equal(t, DayCanChi(d.AddDate(0, 0, i)), c.Day(d.AddDate(0, 0, i)))
	}
	assert.Equal(t, 3, c.Len())

	// Repeat lookups hit the memo.
	c.Day(d)
	assert.Equal(t, 3, c.Len())

	// Overflow clears everything before storing the new entry.
	got := c.Day(d.AddDate(0, 0, 10))
	assert.Equal(t, DayCanChi(d.AddDate(0, 0, 10)), got)
	assert.Equal(t, 1, c.Len())
}

func TestCalculator_Disabled(t *testing.T) {
	c := NewCalculator(0)
	d := date(2024, time.January, 1)
	assert.Equal(t, "Giáp Tý", c.Day(d).String())
	assert.Equal(t, 0, c.Len())
}

func TestCalculator_Concurrent(t *testing.T) {
	c := NewCalculator(DefaultMemoCapacity)
	d := date(2020, time.January, 1)

	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func(w int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				day := d.AddDate(0, 0, w*500+i)
				if c.Day(day) != DayCanChi(day) {
					t.Errorf("mismatch at %s", day.Format("2006-01-02"))
				}
			}
		}(w)
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	assert.LessOrEqual(t, c.Len(), DefaultMemoCapacity)
}
