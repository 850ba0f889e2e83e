package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lich-api/internal/calendar"
)

var lunarCmd = &cobra.Command{
	Use:   "lunar [date]",
	Short: "Convert a solar date to the lunar calendar",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLunar,
}

var solarCmd = &cobra.Command{
	Use:   "solar",
	Short: "Convert a lunar date to the solar calendar",
	Args:  cobra.NoArgs,
	RunE:  runSolar,
}

func init() {
	solarCmd.Flags().Int("day", 0, "lunar day 1-30")
	solarCmd.Flags().Int("month", 0, "lunar month 1-12")
	solarCmd.Flags().Int("year", 0, "lunar year")
	_ = solarCmd.MarkFlagRequired("day")
	_ = solarCmd.MarkFlagRequired("month")
	_ = solarCmd.MarkFlagRequired("year")

	rootCmd.AddCommand(lunarCmd)
	rootCmd.AddCommand(solarCmd)
}

func runLunar(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	date, err := dateArg(svc, args)
	if err != nil {
		return err
	}

	info, err := svc.Lunar(cmd.Context(), date)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), info)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (năm %s, tháng %s, ngày %s)\n",
		info.Solar, info.Lunar, info.YearCanChi, info.MonthCanChi, info.DayCanChi)
	return nil
}

func runSolar(cmd *cobra.Command, _ []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	var lunar calendar.LunarDate
	lunar.Day, _ = cmd.Flags().GetInt("day")
	lunar.Month, _ = cmd.Flags().GetInt("month")
	lunar.Year, _ = cmd.Flags().GetInt("year")

	date, exact, err := svc.Solar(cmd.Context(), lunar)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"date":  calendar.FormatDate(date),
			"exact": exact,
			"lunar": lunar,
		})
	}
	out := fmt.Sprintf("%s -> %s", lunar, calendar.FormatDate(date))
	if !exact {
		out += " (ước lượng)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
