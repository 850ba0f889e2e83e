package almanac

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/zapponejosh/lich-api/internal/calendar"
)

// iCalendar constants for exported feeds.
const (
	DefaultCalendarName = "Lịch Vạn Niên"

	icalVersion = "2.0"
	icalProdID  = "-//lich-api//Almanac//VI"
	icalScale   = "GREGORIAN"
	icalMethod  = "PUBLISH"
	icalDomain  = "lich-api"

	propXWRCalName = "X-WR-CALNAME"
	propCategories = "CATEGORIES"
)

// uidNamespace seeds deterministic event UIDs so re-exported feeds update
// existing events instead of duplicating them.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(icalDomain))

func eventUID(kind string, date time.Time) string {
	return uuid.NewSHA1(uidNamespace, []byte(kind+"/"+calendar.FormatDate(date))).String() + "@" + icalDomain
}

func (s *Service) newCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, icalVersion)
	cal.Props.SetText(ical.PropProductID, icalProdID)
	cal.Props.SetText(propXWRCalName, name)
	cal.Props.SetText(ical.PropCalendarScale, icalScale)
	cal.Props.SetText(ical.PropMethod, icalMethod)
	return cal
}

func (s *Service) newEvent(uid string, date time.Time, summary, description string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(s.clock.Now().UTC())
	event.Props.Set(stamp)
	event.Props.SetText(ical.PropSummary, summary)
	if description != "" {
		event.Props.SetText(ical.PropDescription, description)
	}

	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetDate(date)
	event.Props.Set(start)
	end := ical.NewProp(ical.PropDateTimeEnd)
	end.SetDate(date.AddDate(0, 0, 1))
	event.Props.Set(end)
	return event
}

func encodeCalendar(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeEmptyCalendar writes cal with no components, in the layout of
// ical.Encoder, which refuses empty calendars.
func encodeEmptyCalendar(cal *ical.Calendar) []byte {
	var buf bytes.Buffer
	buf.WriteString("BEGIN:" + ical.CompCalendar + "\r\n")

	names := make([]string, 0, len(cal.Props))
	for name := range cal.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, prop := range cal.Props[name] {
			buf.WriteString(prop.Name)
			params := make([]string, 0, len(prop.Params))
			for param := range prop.Params {
				params = append(params, param)
			}
			sort.Strings(params)
			for _, param := range params {
				buf.WriteString(";" + param + "=" + strings.Join(prop.Params[param], ","))
			}
			buf.WriteString(":" + prop.Value + "\r\n")
		}
	}

	buf.WriteString("END:" + ical.CompCalendar + "\r\n")
	return buf.Bytes()
}

// DaySummary is the one-line event title for a day, for example
// "5/10 Đinh Dậu - Khai (Chu Tước Hắc Đạo)".
func DaySummary(d *DayInfo) string {
	summary := fmt.Sprintf("%d/%d %s - %s", d.Lunar.Day, d.Lunar.Month, d.DayCanChi, d.ZodiacHour)
	if d.Unlucky != nil {
		summary += " (" + d.Unlucky.Name + ")"
	}
	return summary
}

func dayDescription(d *DayInfo) string {
	lines := []string{
		d.Description,
		"Năm " + d.YearCanChi.String() + ", tháng " + d.MonthCanChi.String() + ", ngày " + d.DayCanChi.String(),
		"Nên: " + strings.Join(d.Suitable, ", "),
		"Kiêng: " + strings.Join(d.Taboo, ", "),
	}
	if d.LuckyDirection != "" {
		lines = append(lines, "Hướng tốt: "+d.LuckyDirection)
	}
	if d.LuckyColor != "" {
		lines = append(lines, "Màu may mắn: "+d.LuckyColor)
	}
	if d.Stars.Summary != "" {
		lines = append(lines, d.Stars.Summary)
	}
	return strings.Join(lines, "\n")
}

// CalendarICS exports one all-day event per date from start to end
// inclusive. The span is limited like Range.
func (s *Service) CalendarICS(ctx context.Context, start, end time.Time) ([]byte, error) {
	days, err := s.Range(ctx, start, end)
	if err != nil {
		return nil, err
	}

	cal := s.newCalendar(s.calendarName)
	for i := range days {
		d := &days[i]
		date, err := calendar.ParseDateString(d.Date)
		if err != nil {
			return nil, err
		}
		event := s.newEvent(eventUID("day", date), date, DaySummary(d), dayDescription(d))
		event.Props.SetText(propCategories, string(d.DayType))
		cal.Children = append(cal.Children, event.Component)
	}
	return encodeCalendar(cal)
}

// RecurrenceICS exports the occurrences of a lunar rule as all-day events
// titled name.
func (s *Service) RecurrenceICS(ctx context.Context, name string, rule calendar.Rule, from, to time.Time) ([]byte, error) {
	dates, err := s.Occurrences(ctx, rule, from, to)
	if err != nil {
		return nil, err
	}

	cal := s.newCalendar(name)
	for _, date := range dates {
		lunar := fmt.Sprintf("%d/%d âm lịch", rule.Day, rule.Month)
		if rule.Frequency == calendar.Monthly {
			lunar = fmt.Sprintf("Ngày %d âm lịch", rule.Day)
		}
		event := s.newEvent(eventUID("rule/"+name, date), date, name, lunar)
		cal.Children = append(cal.Children, event.Component)
	}
	if len(cal.Children) == 0 {
		return encodeEmptyCalendar(cal), nil
	}
	return encodeCalendar(cal)
}
