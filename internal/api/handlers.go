package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lich-api/internal/almanac"
	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/canchi"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
	"github.com/zapponejosh/lich-api/internal/luchacdao"
	"github.com/zapponejosh/lich-api/internal/logger"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	svc    *almanac.Service
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(svc *almanac.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{
		"status":   "healthy",
		"timezone": h.svc.Location().String(),
	})
}

// GetToday handles GET /api/v1/days/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.svc.Today(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute today")
		return
	}
	WriteSuccess(w, day)
}

// GetDay handles GET /api/v1/days/{date}
// Query params: hour (optional, 0-23)
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	q := dayQuery{Date: chi.URLParam(r, "date")}
	if raw := r.URL.Query().Get("hour"); raw != "" {
		var hour int
		if err := queryInt(r.URL.Query(), "hour", &hour); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
		q.Hour = &hour
	}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	date, _ := calendar.ParseDateString(q.Date)

	var (
		day *almanac.DayInfo
		err error
	)
	if q.Hour != nil {
		day, err = h.svc.DayAt(r.Context(), date, *q.Hour)
	} else {
		day, err = h.svc.Day(r.Context(), date)
	}
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute day")
		return
	}
	WriteSuccess(w, day)
}

// GetDayHours handles GET /api/v1/days/{date}/hours
// Query params: auspicious (optional, true keeps Hoàng Đạo windows only)
func (h *Handlers) GetDayHours(w http.ResponseWriter, r *http.Request) {
	q := dayQuery{Date: chi.URLParam(r, "date")}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}
	onlyAuspicious, err := queryBool(r.URL.Query(), "auspicious")
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	date, _ := calendar.ParseDateString(q.Date)
	hours, err := h.svc.Hours(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute hours")
		return
	}

	windows := hours[:]
	if onlyAuspicious {
		windows = hoangdao.AuspiciousOnly(windows)
	}
	WriteList(w, windows, len(windows))
}

// GetDayRange handles GET /api/v1/days
// Query params: start, end (YYYY-MM-DD, inclusive)
func (h *Handlers) GetDayRange(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	days, err := h.svc.Range(r.Context(), start, end)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to compute range")
		return
	}
	WriteList(w, days, len(days))
}

// GetLunar handles GET /api/v1/lunar/{date}
func (h *Handlers) GetLunar(w http.ResponseWriter, r *http.Request) {
	q := dayQuery{Date: chi.URLParam(r, "date")}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	date, _ := calendar.ParseDateString(q.Date)
	info, err := h.svc.Lunar(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to convert date")
		return
	}
	WriteSuccess(w, info)
}

// SolarResult is the response of GET /api/v1/solar.
type SolarResult struct {
	Date  string             `json:"date"`
	Exact bool               `json:"exact"`
	Lunar calendar.LunarDate `json:"lunar"`
}

// GetSolar handles GET /api/v1/solar
// Query params: day, month, year (required). Leap months are rejected.
func (h *Handlers) GetSolar(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var q solarQuery
	if err := errors.Join(
		queryInt(params, "day", &q.Day),
		queryInt(params, "month", &q.Month),
		queryInt(params, "year", &q.Year),
	); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	leap, err := queryBool(params, "leap")
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if leap {
		WriteBadRequest(w, "leap months are not supported")
		return
	}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	lunar := calendar.LunarDate{Day: q.Day, Month: q.Month, Year: q.Year}
	date, exact, err := h.svc.Solar(r.Context(), lunar)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to convert lunar date")
		return
	}
	WriteSuccess(w, SolarResult{
		Date:  calendar.FormatDate(date),
		Exact: exact,
		Lunar: lunar,
	})
}

// OccurrencesResult is the JSON response of GET /api/v1/occurrences.
type OccurrencesResult struct {
	Frequency calendar.Frequency `json:"frequency"`
	Day       int                `json:"day"`
	Month     int                `json:"month,omitempty"`
	Dates     []string           `json:"dates"`
}

// GetOccurrences handles GET /api/v1/occurrences
// Query params: frequency (yearly|monthly, default yearly), day, month,
// from, to, start, interval, count, format (json|ics), name
func (h *Handlers) GetOccurrences(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := occurrenceQuery{
		Frequency: strings.ToLower(params.Get("frequency")),
		From:      params.Get("from"),
		To:        params.Get("to"),
		Start:     params.Get("start"),
		Format:    params.Get("format"),
		Name:      params.Get("name"),
	}
	if q.Frequency == "" {
		q.Frequency = string(calendar.Yearly)
	}
	if err := errors.Join(
		queryInt(params, "day", &q.Day),
		queryInt(params, "month", &q.Month),
		queryInt(params, "interval", &q.Interval),
		queryInt(params, "count", &q.Count),
	); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	from, _ := calendar.ParseDateString(q.From)
	to, _ := calendar.ParseDateString(q.To)
	rule := calendar.Rule{
		Frequency: calendar.Frequency(q.Frequency),
		Day:       q.Day,
		Month:     q.Month,
		Interval:  q.Interval,
		Count:     q.Count,
	}
	if rule.Frequency == calendar.Monthly {
		rule.Month = 0
	}
	if q.Start != "" {
		rule.Start, _ = calendar.ParseDateString(q.Start)
	}

	if q.Format == "ics" {
		name := q.Name
		if name == "" {
			name = defaultRuleName(rule)
		}
		data, err := h.svc.RecurrenceICS(r.Context(), name, rule, from, to)
		if err != nil {
			h.writeServiceError(w, r, err, "Failed to export occurrences")
			return
		}
		WriteCalendar(w, "occurrences.ics", data)
		return
	}

	dates, err := h.svc.Occurrences(r.Context(), rule, from, to)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to expand occurrences")
		return
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = calendar.FormatDate(d)
	}
	WriteSuccess(w, OccurrencesResult{
		Frequency: rule.Frequency,
		Day:       rule.Day,
		Month:     rule.Month,
		Dates:     out,
	})
}

func defaultRuleName(rule calendar.Rule) string {
	if rule.Frequency == calendar.Monthly {
		return fmt.Sprintf("Ngày %d âm lịch hằng tháng", rule.Day)
	}
	return fmt.Sprintf("Ngày %d/%d âm lịch", rule.Day, rule.Month)
}

// TrucView describes one of the 12 Trực.
type TrucView struct {
	Slug           string           `json:"slug"`
	Name           string           `json:"name"`
	Index          int              `json:"index"`
	Tier           hoangdao.Tier    `json:"tier"`
	DayType        hoangdao.DayType `json:"dayType"`
	Description    string           `json:"description"`
	Suitable       []string         `json:"suitable"`
	Taboo          []string         `json:"taboo"`
	LuckyDirection string           `json:"luckyDirection,omitempty"`
	LuckyColor     string           `json:"luckyColor,omitempty"`
}

func newTrucView(z hoangdao.ZodiacHour) TrucView {
	return TrucView{
		Slug:           z.Slug(),
		Name:           z.Name(),
		Index:          int(z),
		Tier:           z.Quality(),
		DayType:        hoangdao.MapToDayType(z),
		Description:    z.Description(),
		Suitable:       z.SuitableActivities(),
		Taboo:          z.TabooActivities(),
		LuckyDirection: z.LuckyDirection(),
		LuckyColor:     z.LuckyColor(),
	}
}

// ListTruc handles GET /api/v1/truc
func (h *Handlers) ListTruc(w http.ResponseWriter, r *http.Request) {
	all := hoangdao.ZodiacHours()
	views := make([]TrucView, len(all))
	for i, z := range all {
		views[i] = newTrucView(z)
	}
	WriteList(w, views, len(views))
}

// GetTruc handles GET /api/v1/truc/{slug}
func (h *Handlers) GetTruc(w http.ResponseWriter, r *http.Request) {
	z, ok := hoangdao.ParseSlug(chi.URLParam(r, "slug"))
	if !ok {
		WriteNotFound(w, "Trực not found")
		return
	}
	WriteSuccess(w, newTrucView(z))
}

// UnluckyView is one Lục Hắc Đạo entry of a month.
type UnluckyView struct {
	Month       int           `json:"month"`
	Branch      canchi.Branch `json:"branch"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Severity    int           `json:"severity"`
	Color       string        `json:"color"`
}

// ListUnlucky handles GET /api/v1/unlucky
// Query params: month (required, 1-12)
func (h *Handlers) ListUnlucky(w http.ResponseWriter, r *http.Request) {
	var q monthQuery
	if err := queryInt(r.URL.Query(), "month", &q.Month); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	entries := luchacdao.ForMonth(q.Month)
	views := make([]UnluckyView, len(entries))
	for i, e := range entries {
		views[i] = UnluckyView{
			Month:       e.Month,
			Branch:      e.Branch,
			Name:        e.Type.Name(),
			Slug:        e.Type.Slug(),
			Description: e.Type.Description(),
			Severity:    e.Type.Severity(),
			Color:       e.Type.Color(),
		}
	}
	WriteList(w, views, len(views))
}

// GetCalendarICS handles GET /api/v1/calendar.ics
// Query params: start, end (YYYY-MM-DD, inclusive)
func (h *Handlers) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	data, err := h.svc.CalendarICS(r.Context(), start, end)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to export calendar")
		return
	}
	WriteCalendar(w, "lich.ics", data)
}

// Helper functions

func (h *Handlers) parseRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	q := rangeQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if err := validate.Struct(q); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return time.Time{}, time.Time{}, false
	}
	start, _ = calendar.ParseDateString(q.Start)
	end, _ = calendar.ParseDateString(q.End)
	return start, end, true
}

// isClientError reports whether err was caused by the request.
func isClientError(err error) bool {
	for _, target := range []error{
		canchi.ErrInvalidYear,
		canchi.ErrInvalidMonth,
		canchi.ErrInvalidHour,
		canchi.ErrInvalidPair,
		calendar.ErrInvalidLunarDate,
		calendar.ErrSpanTooLarge,
		almanac.ErrInvalidRange,
		almanac.ErrRangeTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case isClientError(err):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, context.Canceled):
		logger.Warn(r.Context(), "request cancelled", slog.String("path", r.URL.Path))
	default:
		h.logger.Error(msg,
			slog.Any("error", err),
			slog.String("path", r.URL.Path),
			slog.String("request_id", logger.RequestID(r.Context())),
		)
		WriteInternalError(w, msg)
	}
}
