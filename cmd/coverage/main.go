// Command coverage sweeps whole years through a live lich API server and
// reports conversion failures, continuity breaks in the day Can-Chi and lunar
// day sequences, star-data availability per lunar month and the day-type mix.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"
)

// APIResponse matches the API response structure
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
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

type Day struct {
	Date      string    `json:"date"`
	Lunar     LunarDate `json:"lunar"`
	DayCanChi string    `json:"dayCanChi"`
	DayType   string    `json:"dayType"`
	Enhanced  string    `json:"enhancedDayType"`
	Unlucky   *struct {
		Name string `json:"name"`
	} `json:"unlucky,omitempty"`
	Stars struct {
		Available bool `json:"available"`
	} `json:"stars"`
}

// Failure is one problem found by the sweep.
type Failure struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}

// MonthStats tracks one lunar month number across the sweep.
type MonthStats struct {
	Month         int `json:"month"`
	Days          int `json:"days"`
	StarDataDays  int `json:"star_data_days"`
	UnluckyDays   int `json:"unlucky_days"`
	LeapMonthDays int `json:"leap_month_days"`
}

// Analysis holds the analyzed results
type Analysis struct {
	TotalDays  int                 `json:"total_days"`
	Failures   []Failure           `json:"failures"`
	ByMonth    map[int]*MonthStats `json:"by_month"`
	DayTypes   map[string]int      `json:"day_types"`
	Enhanced   map[string]int      `json:"enhanced_day_types"`
	YearsSeen  map[int]bool        `json:"-"`
	LastLunar  *LunarDate          `json:"-"`
	LastCanChi string              `json:"-"`
}

func newAnalysis() *Analysis {
	return &Analysis{
		ByMonth:   make(map[int]*MonthStats),
		DayTypes:  make(map[string]int),
		Enhanced:  make(map[string]int),
		YearsSeen: make(map[int]bool),
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	startYear := flag.Int("start", 2024, "Start year")
	years := flag.Int("years", 4, "Number of years to sweep")
	chunk := flag.Int("chunk", 90, "Days per range request (at most MAX_RANGE_DAYS)")
	outputFile := flag.String("o", "", "Output results to JSON file")
	flag.Parse()

	endYear := *startYear + *years - 1

	fmt.Println("================================================================")
	fmt.Println("Lich API - Full Coverage Sweep")
	fmt.Println("================================================================")
	fmt.Printf("Base URL:    %s\n", *baseURL)
	fmt.Printf("Date Range:  %d-01-01 to %d-12-31\n", *startYear, endYear)
	fmt.Println()

	// Check if server is reachable
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	start := time.Date(*startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	analysis := sweep(client, *baseURL, start, end, *chunk)

	printSummary(analysis)
	printMonths(analysis)
	printFailures(analysis)

	if *outputFile != "" {
		saveResults(*outputFile, analysis)
	}

	if len(analysis.Failures) > 0 {
		os.Exit(1)
	}
}

func sweep(client *http.Client, baseURL string, start, end time.Time, chunk int) *Analysis {
	analysis := newAnalysis()
	if chunk < 1 {
		chunk = 1
	}

	for from := start; !from.After(end); from = from.AddDate(0, 0, chunk) {
		to := from.AddDate(0, 0, chunk-1)
		if to.After(end) {
			to = end
		}

		days, err := fetchRange(client, baseURL, from, to)
		if err != nil {
			analysis.Failures = append(analysis.Failures, Failure{
				Date:  from.Format("2006-01-02") + ".." + to.Format("2006-01-02"),
				Error: err.Error(),
			})
			// Continuity cannot be checked across a gap.
			analysis.LastLunar = nil
			analysis.LastCanChi = ""
			continue
		}
		for _, d := range days {
			analysis.record(d)
		}
		fmt.Printf("  %s .. %s: %d days\n", from.Format("2006-01-02"), to.Format("2006-01-02"), len(days))
	}
	fmt.Println()
	return analysis
}

func fetchRange(client *http.Client, baseURL string, from, to time.Time) ([]Day, error) {
	url := fmt.Sprintf("%s/api/v1/days?start=%s&end=%s", baseURL, from.Format("2006-01-02"), to.Format("2006-01-02"))
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
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
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, errMsg)
	}

	var days []Day
	if err := json.Unmarshal(apiResp.Data, &days); err != nil {
		return nil, fmt.Errorf("data parse error: %w", err)
	}
	return days, nil
}

func (a *Analysis) record(d Day) {
	a.TotalDays++
	a.DayTypes[d.DayType]++
	a.Enhanced[d.Enhanced]++
	a.YearsSeen[d.Lunar.Year] = true

	if d.Lunar.Day < 1 || d.Lunar.Day > 30 || d.Lunar.Month < 1 || d.Lunar.Month > 12 {
		a.fail(d.Date, fmt.Sprintf("lunar date out of range: %+v", d.Lunar))
	}

	// Lunar days count up by one, or restart at 1 after day 29 or 30.
	if prev := a.LastLunar; prev != nil {
		next := d.Lunar.Day == prev.Day+1 && d.Lunar.Month == prev.Month
		restart := d.Lunar.Day == 1 && prev.Day >= 29
		if !next && !restart {
			a.fail(d.Date, fmt.Sprintf("lunar day jumped from %d/%d to %d/%d", prev.Day, prev.Month, d.Lunar.Day, d.Lunar.Month))
		}
	}
	if a.LastCanChi != "" && a.LastCanChi == d.DayCanChi {
		a.fail(d.Date, "day Can-Chi repeated: "+d.DayCanChi)
	}
	lunar := d.Lunar
	a.LastLunar = &lunar
	a.LastCanChi = d.DayCanChi

	stats, ok := a.ByMonth[d.Lunar.Month]
	if !ok {
		stats = &MonthStats{Month: d.Lunar.Month}
		a.ByMonth[d.Lunar.Month] = stats
	}
	stats.Days++
	if d.Stars.Available {
		stats.StarDataDays++
	}
	if d.Unlucky != nil {
		stats.UnluckyDays++
	}
	if d.Lunar.Leap {
		stats.LeapMonthDays++
	}
}

func (a *Analysis) fail(date, msg string) {
	a.Failures = append(a.Failures, Failure{Date: date, Error: msg})
}

func printSummary(a *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("SUMMARY")
	fmt.Println("================================================================")
	fmt.Printf("Total Days:   %d\n", a.TotalDays)
	fmt.Printf("Failures:     %d\n", len(a.Failures))
	fmt.Printf("Lunar Years:  %d\n", len(a.YearsSeen))
	fmt.Println()

	fmt.Println("Day types (Trực):")
	printCounts(a.DayTypes, a.TotalDays)
	fmt.Println("Day types (star-weighted):")
	printCounts(a.Enhanced, a.TotalDays)
}

func printCounts(counts map[string]int, total int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[k]) / float64(total) * 100
		}
		fmt.Printf("  %-8s %6d (%.1f%%)\n", k, counts[k], pct)
	}
	fmt.Println()
}

func printMonths(a *Analysis) {
	fmt.Println("================================================================")
	fmt.Println("BY LUNAR MONTH")
	fmt.Println("================================================================")
	for m := 1; m <= 12; m++ {
		stats, ok := a.ByMonth[m]
		if !ok {
			continue
		}
		status := "✗"
		if stats.StarDataDays == stats.Days {
			status = "✓"
		}
		fmt.Printf("  %s Tháng %2d: %4d days, star data %4d, hắc đạo %4d, leap %d\n",
			status, m, stats.Days, stats.StarDataDays, stats.UnluckyDays, stats.LeapMonthDays)
	}
	fmt.Println()
}

func printFailures(a *Analysis) {
	if len(a.Failures) == 0 {
		fmt.Println("No failures! 🎉")
		return
	}

	fmt.Println("================================================================")
	fmt.Println("FAILURES")
	fmt.Println("================================================================")
	for i, f := range a.Failures {
		if i >= 50 {
			fmt.Printf("  ... and %d more\n", len(a.Failures)-50)
			break
		}
		fmt.Printf("  %s | %s\n", f.Date, f.Error)
	}
	fmt.Println()
}

func saveResults(filename string, a *Analysis) {
	output := struct {
		GeneratedAt string `json:"generated_at"`
		*Analysis
	}{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Analysis:    a,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling results: %v\n", err)
		return
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		return
	}

	fmt.Printf("Results saved to: %s\n", filename)
}
