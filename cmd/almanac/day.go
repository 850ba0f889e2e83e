package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lich-api/internal/almanac"
	"github.com/zapponejosh/lich-api/internal/hoangdao"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show the verdict for a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDay,
}

var hoursCmd = &cobra.Command{
	Use:   "hours [date]",
	Short: "Show the twelve 2-hour windows of a day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHours,
}

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show one line per day between two dates",
	Args:  cobra.NoArgs,
	RunE:  runRange,
}

func init() {
	dayCmd.Flags().Int("hour", -1, "clock hour 0-23 for the hour Can-Chi (default now)")
	hoursCmd.Flags().Bool("auspicious", false, "only list Hoàng Đạo windows")
	rangeCmd.Flags().String("start", "", "first date, YYYY-MM-DD")
	rangeCmd.Flags().String("end", "", "last date, YYYY-MM-DD")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(rangeCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	date, err := dateArg(svc, args)
	if err != nil {
		return err
	}

	var day *almanac.DayInfo
	if hour, _ := cmd.Flags().GetInt("hour"); hour >= 0 {
		day, err = svc.DayAt(cmd.Context(), date, hour)
	} else {
		day, err = svc.Day(cmd.Context(), date)
	}
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), day)
	}
	printDay(cmd.OutOrStdout(), day)
	return nil
}

func printDay(w io.Writer, d *almanac.DayInfo) {
	fmt.Fprintf(w, "%s (%s)\n", d.Date, d.Weekday)
	fmt.Fprintf(w, "  Âm lịch:  %s\n", d.Lunar)
	fmt.Fprintf(w, "  Can-Chi:  năm %s, tháng %s, ngày %s, giờ %s\n",
		d.YearCanChi, d.MonthCanChi, d.DayCanChi, d.HourCanChi)
	fmt.Fprintf(w, "  Trực:     %s (%s)\n", d.ZodiacHour, d.DayType)
	if d.Unlucky != nil {
		fmt.Fprintf(w, "  Hắc đạo:  %s (mức %d)\n", d.Unlucky.Name, d.Unlucky.Severity)
	}
	fmt.Fprintf(w, "  Điểm:     %.2f (%s)\n", d.Score, d.EnhancedDayType)
	if d.Stars.Summary != "" {
		fmt.Fprintf(w, "  Sao:      %s\n", d.Stars.Summary)
	}
	fmt.Fprintf(w, "  Nên:      %s\n", strings.Join(d.Suitable, ", "))
	fmt.Fprintf(w, "  Kiêng:    %s\n", strings.Join(d.Taboo, ", "))
	if d.LuckyDirection != "" {
		fmt.Fprintf(w, "  Hướng:    %s\n", d.LuckyDirection)
	}
	fmt.Fprintf(w, "  %s\n", d.Description)
}

func runHours(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	date, err := dateArg(svc, args)
	if err != nil {
		return err
	}

	hours, err := svc.Hours(cmd.Context(), date)
	if err != nil {
		return err
	}
	windows := hours[:]
	if only, _ := cmd.Flags().GetBool("auspicious"); only {
		windows = hoangdao.AuspiciousOnly(windows)
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), windows)
	}
	w := cmd.OutOrStdout()
	for _, h := range windows {
		mark := " "
		if h.Auspicious {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-8s %-13s %-6s %s\n", mark, h.CanChi, h.TimeRange, h.ZodiacHour, strings.Join(h.Activities, ", "))
	}
	return nil
}

func runRange(cmd *cobra.Command, _ []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	start, err := dateFlag(cmd, "start")
	if err != nil {
		return err
	}
	end, err := dateFlag(cmd, "end")
	if err != nil {
		return err
	}

	days, err := svc.Range(cmd.Context(), start, end)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), days)
	}
	w := cmd.OutOrStdout()
	for i := range days {
		fmt.Fprintf(w, "%s  %-8s %s\n", days[i].Date, days[i].DayType, almanac.DaySummary(&days[i]))
	}
	return nil
}
