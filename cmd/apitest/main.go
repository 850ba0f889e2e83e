// Command apitest is a smoke runner for a live lich API server. It checks the
// health endpoint, reference dates of the Ất Tỵ year and the error paths.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Meta    *struct {
		Count int `json:"count"`
	} `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type LunarDate struct {
	Day   int  `json:"day"`
	Month int  `json:"month"`
	Year  int  `json:"year"`
	Leap  bool `json:"leap,omitempty"`
}

// DayResponse is the subset of /api/v1/days/{date} this runner checks.
type DayResponse struct {
	Date        string    `json:"date"`
	Weekday     string    `json:"weekday"`
	Lunar       LunarDate `json:"lunar"`
	YearCanChi  string    `json:"yearCanChi"`
	MonthCanChi string    `json:"monthCanChi"`
	DayCanChi   string    `json:"dayCanChi"`
	HourCanChi  string    `json:"hourCanChi"`
	ZodiacHour  string    `json:"zodiacHour"`
	DayType     string    `json:"dayType"`
	Unlucky     *struct {
		Name string `json:"name"`
	} `json:"unlucky,omitempty"`
	Score           float64 `json:"score"`
	EnhancedDayType string  `json:"enhancedDayType"`
}

type HourResponse struct {
	Branch     string `json:"branch"`
	CanChi     string `json:"canChi"`
	Auspicious bool   `json:"auspicious"`
}

type SolarResponse struct {
	Date  string `json:"date"`
	Exact bool   `json:"exact"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status   string `json:"status"`
	Timezone string `json:"timezone"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Lich API Smoke Test")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testToday()
	tr.testReferenceDays()
	tr.testHours()
	tr.testConversions()
	tr.testDateRange()
	tr.testReferenceData()
	tr.testCalendarExport()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	resp, err := tr.get("/health")
	if err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	var health HealthResponse
	if err := json.Unmarshal(resp.Data, &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (timezone %s)", health.Timezone))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testToday() {
	tr.printSection("Today")

	var day DayResponse
	if err := tr.getData("/api/v1/days/today", &day); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today %s: %d/%d %s, %s (%s)",
		day.Date, day.Lunar.Day, day.Lunar.Month, day.DayCanChi, day.ZodiacHour, day.DayType))
}

func (tr *TestRunner) testReferenceDays() {
	tr.printSection("Reference Dates")

	testCases := []struct {
		date        string
		dayCanChi   string
		zodiacHour  string
		dayType     string
		unlucky     string
		description string
	}{
		{"2024-01-01", "Giáp Tý", "", "", "", "Start of a sexagenary cycle"},
		{"2025-11-24", "Đinh Dậu", "Khai", "neutral", "Chu Tước Hắc Đạo", "5/10 Ất Tỵ"},
		{"2025-11-20", "Quý Tỵ", "", "", "Câu Trận Hắc Đạo", "Mồng 1 tháng 10"},
		{"2025-12-01", "Giáp Thìn", "Chấp", "good", "", "12/10 Ất Tỵ"},
		{"2025-10-22", "Giáp Tý", "", "", "", "Month 9 star data"},
	}

	for _, tc := range testCases {
		var day DayResponse
		if err := tr.getData("/api/v1/days/"+tc.date+"?hour=12", &day); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		var problems []string
		if day.DayCanChi != tc.dayCanChi {
			problems = append(problems, fmt.Sprintf("day Can-Chi %q, want %q", day.DayCanChi, tc.dayCanChi))
		}
		if tc.zodiacHour != "" && day.ZodiacHour != tc.zodiacHour {
			problems = append(problems, fmt.Sprintf("Trực %q, want %q", day.ZodiacHour, tc.zodiacHour))
		}
		if tc.dayType != "" && day.DayType != tc.dayType {
			problems = append(problems, fmt.Sprintf("day type %q, want %q", day.DayType, tc.dayType))
		}
		if tc.unlucky != "" && (day.Unlucky == nil || day.Unlucky.Name != tc.unlucky) {
			problems = append(problems, fmt.Sprintf("expected %s", tc.unlucky))
		}

		if len(problems) > 0 {
			tr.recordError(tc.date, strings.Join(problems, "; "))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: %s / %s (%s)", tc.date, day.DayCanChi, day.ZodiacHour, tc.description))
		if tr.verbose {
			tr.printDayDetail(day)
		}
	}
}

func (tr *TestRunner) testHours() {
	tr.printSection("Hourly Windows")

	var hours []HourResponse
	if err := tr.getData("/api/v1/days/2025-11-24/hours?auspicious=true", &hours); err != nil {
		tr.recordError("Hours", err.Error())
		return
	}

	var branches []string
	for _, h := range hours {
		branches = append(branches, h.Branch)
	}
	got := strings.Join(branches, " ")
	if want := "Tý Dần Mão Ngọ Mùi Dậu"; got == want {
		tr.recordSuccess("2025-11-24 Hoàng Đạo hours: " + got)
	} else {
		tr.recordError("Hours", fmt.Sprintf("got %q, want %q", got, want))
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	var lunar struct {
		Lunar LunarDate `json:"lunar"`
	}
	if err := tr.getData("/api/v1/lunar/2025-11-24", &lunar); err != nil {
		tr.recordError("Lunar", err.Error())
	} else if lunar.Lunar.Day == 5 && lunar.Lunar.Month == 10 && lunar.Lunar.Year == 2025 {
		tr.recordSuccess("2025-11-24 is 5/10/2025 âm lịch")
	} else {
		tr.recordError("Lunar", fmt.Sprintf("got %+v", lunar.Lunar))
	}

	var solar SolarResponse
	if err := tr.getData("/api/v1/solar?day=15&month=8&year=2025", &solar); err != nil {
		tr.recordError("Solar", err.Error())
	} else if solar.Date == "2025-10-06" && solar.Exact {
		tr.recordSuccess("Trung Thu 2025 is 2025-10-06")
	} else {
		tr.recordError("Solar", fmt.Sprintf("got %+v", solar))
	}

	var occ struct {
		Dates []string `json:"dates"`
	}
	if err := tr.getData("/api/v1/occurrences?frequency=monthly&day=1&from=2025-11-01&to=2025-12-31", &occ); err != nil {
		tr.recordError("Occurrences", err.Error())
	} else if strings.Join(occ.Dates, ",") == "2025-11-20,2025-12-20" {
		tr.recordSuccess("Mồng 1 occurrences: " + strings.Join(occ.Dates, ", "))
	} else {
		tr.recordError("Occurrences", fmt.Sprintf("got %v", occ.Dates))
	}
}

func (tr *TestRunner) testDateRange() {
	tr.printSection("Date Range Tests")

	resp, err := tr.get("/api/v1/days?start=2025-12-21&end=2025-12-27")
	if err != nil {
		tr.recordError("Range (week)", err.Error())
		return
	}
	if resp.Meta != nil && resp.Meta.Count == 7 {
		tr.recordSuccess("Week range returned 7 days")
	} else {
		tr.recordError("Range (week)", "Expected 7 days")
	}

	tr.expectStatus("Range limit enforced", "/api/v1/days?start=2025-01-01&end=2025-12-31", http.StatusBadRequest)
	tr.expectStatus("Invalid range rejected (end before start)", "/api/v1/days?start=2025-12-31&end=2025-01-01", http.StatusBadRequest)
}

func (tr *TestRunner) testReferenceData() {
	tr.printSection("Reference Data")

	resp, err := tr.get("/api/v1/truc")
	if err != nil {
		tr.recordError("Trực list", err.Error())
	} else if resp.Meta != nil && resp.Meta.Count == 12 {
		tr.recordSuccess("12 Trực listed")
	} else {
		tr.recordError("Trực list", "Expected 12 entries")
	}

	tr.expectStatus("Trực lookup by slug", "/api/v1/truc/khai", http.StatusOK)
	tr.expectStatus("Unknown Trực slug", "/api/v1/truc/unknown", http.StatusNotFound)

	resp, err = tr.get("/api/v1/unlucky?month=10")
	if err != nil {
		tr.recordError("Unlucky", err.Error())
	} else if resp.Meta != nil && resp.Meta.Count == 5 {
		tr.recordSuccess("Month 10 has 5 Lục Hắc Đạo branches")
	} else {
		tr.recordError("Unlucky", "Expected 5 entries for month 10")
	}
}

func (tr *TestRunner) testCalendarExport() {
	tr.printSection("Calendar Export")

	resp, err := tr.getRaw("/api/v1/calendar.ics?start=2025-11-24&end=2025-11-30")
	if err != nil {
		tr.recordError("ICS", err.Error())
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	events := strings.Count(string(body), "BEGIN:VEVENT")
	if resp.StatusCode == http.StatusOK && strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar") && events == 7 {
		tr.recordSuccess("ICS feed with 7 events")
	} else {
		tr.recordError("ICS", fmt.Sprintf("HTTP %d, %d events", resp.StatusCode, events))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Invalid date format rejected", "/api/v1/days/invalid", http.StatusBadRequest)
	tr.expectStatus("Impossible date rejected", "/api/v1/days/2025-02-30", http.StatusBadRequest)
	tr.expectStatus("Hour out of range rejected", "/api/v1/days/2025-11-24?hour=24", http.StatusBadRequest)
	tr.expectStatus("Missing end parameter rejected", "/api/v1/days?start=2025-01-01", http.StatusBadRequest)
	tr.expectStatus("Lunar month 13 rejected", "/api/v1/solar?day=1&month=13&year=2025", http.StatusBadRequest)
	tr.expectStatus("Unlucky month required", "/api/v1/unlucky", http.StatusBadRequest)
	tr.expectStatus("Leap year date handled", "/api/v1/days/2024-02-29", http.StatusOK)
	tr.expectStatus("Far future date handled", "/api/v1/days/2030-06-15", http.StatusOK)
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	url := tr.baseURL + path
	return tr.client.Get(url)
}

func (tr *TestRunner) expectStatus(name, path string, want int) {
	resp, err := tr.getRaw(path)
	if err != nil {
		tr.recordError(name, err.Error())
		return
	}
	resp.Body.Close()

	if resp.StatusCode == want {
		tr.recordSuccess(name)
	} else {
		tr.recordError(name, fmt.Sprintf("HTTP %d, want %d", resp.StatusCode, want))
	}
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) printDayDetail(d DayResponse) {
	fmt.Printf("    Lunar: %d/%d/%d  Year %s, Month %s, Hour %s\n",
		d.Lunar.Day, d.Lunar.Month, d.Lunar.Year, d.YearCanChi, d.MonthCanChi, d.HourCanChi)
	fmt.Printf("    Day type: %s, score %.2f (%s)\n", d.DayType, d.Score, d.EnhancedDayType)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show day details)")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
