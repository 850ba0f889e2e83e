package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/lich-api/internal/almanac"
	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type monthStart struct {
	start time.Time
	month int
	year  int
}

// Lunar month starts of Ất Tỵ 2025. The last row only closes the table.
var referenceMonths = []monthStart{
	{date(2024, time.December, 31), 12, 2024},
	{date(2025, time.January, 29), 1, 2025},
	{date(2025, time.February, 28), 2, 2025},
	{date(2025, time.March, 29), 3, 2025},
	{date(2025, time.April, 28), 4, 2025},
	{date(2025, time.May, 27), 5, 2025},
	{date(2025, time.June, 25), 6, 2025},
	{date(2025, time.August, 23), 7, 2025},
	{date(2025, time.September, 22), 8, 2025},
	{date(2025, time.October, 21), 9, 2025},
	{date(2025, time.November, 20), 10, 2025},
	{date(2025, time.December, 20), 11, 2025},
	{date(2026, time.January, 19), 12, 2025},
	{date(2026, time.February, 17), 1, 2026},
	{date(2026, time.March, 19), 0, 0},
}

// tableOracle fails outside referenceMonths. The leap month of 2025 is
// folded into month 6, which none of these tests depend on.
func tableOracle(t time.Time) (calendar.LunarDate, error) {
	t = calendar.DateOnly(t, nil)
	last := len(referenceMonths) - 1
	if t.Before(referenceMonths[0].start) || !t.Before(referenceMonths[last].start) {
		return calendar.LunarDate{}, calendar.ErrConversion
	}
	i := sort.Search(last, func(i int) bool { return referenceMonths[i].start.After(t) }) - 1
	m := referenceMonths[i]
	return calendar.LunarDate{
		Day:   calendar.DaysBetween(m.start, t) + 1,
		Month: m.month,
		Year:  m.year,
	}, nil
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type testEnv struct {
	handlers *Handlers
	router   http.Handler
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := almanac.NewService(calendar.OracleFunc(tableOracle), almanac.Options{
		Location:     time.FixedZone("ICT", 7*3600),
		MemoSize:     100,
		MaxRangeDays: 90,
		Clock:        fixedClock(time.Date(2025, time.November, 23, 20, 0, 0, 0, time.UTC)),
	})
	handlers := NewHandlers(svc, logger)

	return &testEnv{
		handlers: handlers,
		router:   SetupRoutes(handlers, logger),
	}
}

func (env *testEnv) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, http.MethodGet, path)
}

type envelope[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorInfo `json:"error"`
	Meta    *Meta      `json:"meta"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

type dayJSON struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Hour       int    `json:"hour"`
	DayCanChi  string `json:"dayCanChi"`
	HourCanChi string `json:"hourCanChi"`
	YearCanChi string `json:"yearCanChi"`
	ZodiacHour string `json:"zodiacHour"`
	DayType    string `json:"dayType"`
	Unlucky    *struct {
		Slug string `json:"slug"`
	} `json:"unlucky"`
	Lunar calendar.LunarDate `json:"lunar"`
}

// =============================================================================
// HEALTH & ROUTING
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[map[string]string](t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Data["status"])
	assert.Equal(t, "ICT", resp.Data["timezone"])
}

func TestRouting_NotFoundAndMethod(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, rr).Error.Code)

	rr = env.do(t, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMiddleware_RequestID(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/health")
	_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, id, rr.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.NotEqual(t, "not-a-uuid", rr.Header().Get(RequestIDHeader))
}

func TestMiddleware_CORSPreflight(t *testing.T) {
	env := setupTest(t)

	rr := env.do(t, http.MethodOptions, "/api/v1/truc")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMiddleware_Recovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode[any](t, rr).Error.Code)
}

// =============================================================================
// DAYS
// =============================================================================

func TestGetToday(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/days/today")
	require.Equal(t, http.StatusOK, rr.Code)

	day := decode[dayJSON](t, rr).Data
	assert.Equal(t, "2025-11-24", day.Date)
	assert.Equal(t, 3, day.Hour)
	assert.Equal(t, "Nhâm Dần", day.HourCanChi)
}

func TestGetDay(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/days/2025-11-24?hour=0")
	require.Equal(t, http.StatusOK, rr.Code)

	day := decode[dayJSON](t, rr).Data
	assert.Equal(t, "Thứ hai", day.Weekday)
	assert.Equal(t, calendar.LunarDate{Day: 5, Month: 10, Year: 2025}, day.Lunar)
	assert.Equal(t, "Ất Tỵ", day.YearCanChi)
	assert.Equal(t, "Đinh Dậu", day.DayCanChi)
	assert.Equal(t, "Canh Tý", day.HourCanChi)
	assert.Equal(t, "Khai", day.ZodiacHour)
	assert.Equal(t, "neutral", day.DayType)
	require.NotNil(t, day.Unlucky)
	assert.Equal(t, "chu-tuoc-hac-dao", day.Unlucky.Slug)
}

func TestGetDay_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"bad date", "/api/v1/days/2025-13-01", http.StatusBadRequest},
		{"not a date", "/api/v1/days/yesterday", http.StatusBadRequest},
		{"hour too large", "/api/v1/days/2025-11-24?hour=24", http.StatusBadRequest},
		{"negative hour", "/api/v1/days/2025-11-24?hour=-1", http.StatusBadRequest},
		{"hour not a number", "/api/v1/days/2025-11-24?hour=noon", http.StatusBadRequest},
		{"oracle failure", "/api/v1/days/2020-01-01", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.get(t, tt.path)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.False(t, decode[any](t, rr).Success)
		})
	}
}

func TestGetDayHours(t *testing.T) {
	env := setupTest(t)

	type hourJSON struct {
		Branch     string `json:"branch"`
		CanChi     string `json:"canChi"`
		Auspicious bool   `json:"auspicious"`
	}

	rr := env.get(t, "/api/v1/days/2025-11-24/hours")
	require.Equal(t, http.StatusOK, rr.Code)
	all := decode[[]hourJSON](t, rr)
	require.Len(t, all.Data, 12)
	assert.Equal(t, 12, all.Meta.Count)
	assert.Equal(t, "Canh Tý", all.Data[0].CanChi)

	rr = env.get(t, "/api/v1/days/2025-11-24/hours?auspicious=true")
	require.Equal(t, http.StatusOK, rr.Code)
	lucky := decode[[]hourJSON](t, rr).Data

	var branches []string
	for _, h := range lucky {
		assert.True(t, h.Auspicious)
		branches = append(branches, h.Branch)
	}
	assert.Equal(t, []string{"Tý", "Dần", "Mão", "Ngọ", "Mùi", "Dậu"}, branches)

	rr = env.get(t, "/api/v1/days/2025-11-24/hours?auspicious=maybe")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetDayRange(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/days?start=2025-11-20&end=2025-11-26")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[[]dayJSON](t, rr)
	require.Len(t, resp.Data, 7)
	assert.Equal(t, 7, resp.Meta.Count)
	assert.Equal(t, "2025-11-20", resp.Data[0].Date)
	assert.Equal(t, 1, resp.Data[0].Lunar.Day)
	assert.Equal(t, "2025-11-26", resp.Data[6].Date)
	for _, d := range resp.Data {
		assert.Equal(t, 12, d.Hour)
	}
}

func TestGetDayRange_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing end", "/api/v1/days?start=2025-11-20"},
		{"missing both", "/api/v1/days"},
		{"bad format", "/api/v1/days?start=20-11-2025&end=2025-11-26"},
		{"reversed", "/api/v1/days?start=2025-11-26&end=2025-11-20"},
		{"too large", "/api/v1/days?start=2025-01-01&end=2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.get(t, tt.path)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Equal(t, "BAD_REQUEST", decode[any](t, rr).Error.Code)
		})
	}
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func TestGetLunar(t *testing.T) {
	env := setupTest(t)

	type lunarJSON struct {
		Solar       string             `json:"solar"`
		Lunar       calendar.LunarDate `json:"lunar"`
		YearCanChi  string             `json:"yearCanChi"`
		MonthCanChi string             `json:"monthCanChi"`
		DayCanChi   string             `json:"dayCanChi"`
	}

	rr := env.get(t, "/api/v1/lunar/2025-11-24")
	require.Equal(t, http.StatusOK, rr.Code)

	info := decode[lunarJSON](t, rr).Data
	assert.Equal(t, "2025-11-24", info.Solar)
	assert.Equal(t, calendar.LunarDate{Day: 5, Month: 10, Year: 2025}, info.Lunar)
	assert.Equal(t, "Ất Tỵ", info.YearCanChi)
	assert.Equal(t, "Đinh Hợi", info.MonthCanChi)
	assert.Equal(t, "Đinh Dậu", info.DayCanChi)

	rr = env.get(t, "/api/v1/lunar/2025-02-30")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetSolar(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/solar?day=10&month=10&year=2025")
	require.Equal(t, http.StatusOK, rr.Code)

	res := decode[SolarResult](t, rr).Data
	assert.Equal(t, "2025-11-29", res.Date)
	assert.True(t, res.Exact)
	assert.Equal(t, calendar.LunarDate{Day: 10, Month: 10, Year: 2025}, res.Lunar)
}

func TestGetSolar_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing month", "/api/v1/solar?day=10&year=2025"},
		{"day too large", "/api/v1/solar?day=31&month=10&year=2025"},
		{"month too large", "/api/v1/solar?day=1&month=13&year=2025"},
		{"year too large", "/api/v1/solar?day=1&month=1&year=10000"},
		{"not a number", "/api/v1/solar?day=ten&month=10&year=2025"},
		{"bad leap flag", "/api/v1/solar?day=1&month=1&year=2025&leap=sometimes"},
		{"leap month", "/api/v1/solar?day=10&month=6&year=2025&leap=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.get(t, tt.path)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestGetOccurrences(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{
			name: "monthly first day",
			path: "/api/v1/occurrences?frequency=monthly&day=1&from=2025-11-01&to=2026-01-31",
			want: []string{"2025-11-20", "2025-12-20", "2026-01-19"},
		},
		{
			name: "yearly defaults",
			path: "/api/v1/occurrences?day=15&month=8&from=2025-01-01&to=2025-12-31",
			want: []string{"2025-10-06"},
		},
		{
			name: "monthly with count",
			path: "/api/v1/occurrences?frequency=monthly&day=15&from=2025-09-01&to=2026-01-31&count=2",
			want: []string{"2025-09-06", "2025-10-06"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.get(t, tt.path)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, tt.want, decode[OccurrencesResult](t, rr).Data.Dates)
		})
	}
}

func TestGetOccurrences_Errors(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		path string
	}{
		{"yearly without month", "/api/v1/occurrences?day=15&from=2025-01-01&to=2025-12-31"},
		{"unknown frequency", "/api/v1/occurrences?frequency=daily&day=1&from=2025-01-01&to=2025-12-31"},
		{"missing range", "/api/v1/occurrences?frequency=monthly&day=1"},
		{"unknown format", "/api/v1/occurrences?frequency=monthly&day=1&from=2025-01-01&to=2025-02-01&format=xml"},
		{"negative interval", "/api/v1/occurrences?frequency=monthly&day=1&from=2025-01-01&to=2025-02-01&interval=-1"},
		{"span too large", "/api/v1/occurrences?frequency=monthly&day=1&from=2025-01-01&to=2025-02-01&start=1800-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.get(t, tt.path)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestGetOccurrences_ICS(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/occurrences?frequency=monthly&day=1&from=2025-11-01&to=2026-01-31&format=ics&name=C%C3%BAng%20m%C3%B9ng%201")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, rr.Body.String(), "Cúng mùng 1")
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func TestListTruc(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/truc")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[[]TrucView](t, rr)
	require.Len(t, resp.Data, 12)
	assert.Equal(t, "kien", resp.Data[0].Slug)
	assert.Equal(t, "Kiến", resp.Data[0].Name)
	assert.Equal(t, 0, resp.Data[0].Index)
}

func TestGetTruc(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		slug    string
		want    string
		dayType hoangdao.DayType
	}{
		{"khai", "Khai", hoangdao.NeutralDay},
		{"chap", "Chấp", hoangdao.Good},
		{"kien", "Kiến", hoangdao.Bad},
		{"tru", "Trừ", hoangdao.Good},
		{"Tr%E1%BB%AB", "Trừ", hoangdao.Good},
		{"be", "Bế", hoangdao.Bad},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			rr := env.get(t, "/api/v1/truc/"+tt.slug)
			require.Equal(t, http.StatusOK, rr.Code)
			view := decode[TrucView](t, rr).Data
			assert.Equal(t, tt.want, view.Name)
			assert.Equal(t, tt.dayType, view.DayType)
		})
	}

	rr := env.get(t, "/api/v1/truc/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListUnlucky(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/unlucky?month=10")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[[]UnluckyView](t, rr)
	var branches []string
	for _, v := range resp.Data {
		assert.Equal(t, 10, v.Month)
		branches = append(branches, v.Branch.Name())
	}
	assert.Equal(t, []string{"Tý", "Sửu", "Tỵ", "Thân", "Dậu"}, branches)

	for _, path := range []string{"/api/v1/unlucky", "/api/v1/unlucky?month=0", "/api/v1/unlucky?month=13", "/api/v1/unlucky?month=x"} {
		rr := env.get(t, path)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestGetCalendarICS(t *testing.T) {
	env := setupTest(t)

	rr := env.get(t, "/api/v1/calendar.ics?start=2025-11-24&end=2025-11-25")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "lich.ics")
	assert.Contains(t, rr.Body.String(), "BEGIN:VEVENT")

	rr = env.get(t, "/api/v1/calendar.ics?start=2025-11-25&end=2025-11-24")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
