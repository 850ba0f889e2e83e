package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lich-api/internal/almanac"
	"github.com/zapponejosh/lich-api/internal/calendar"
	"github.com/zapponejosh/lich-api/internal/config"
	"github.com/zapponejosh/lich-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "almanac",
	Short:         "Vietnamese lunisolar almanac",
	Long:          "Almanac converts between solar and lunar dates and reports the Can-Chi, Trực, Lục Hắc Đạo and star verdict of a day.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().String("tz", "", "IANA time zone for \"today\" (default from TIMEZONE)")
}

// newOracle builds the lunar oracle. Tests replace it.
var newOracle = func() calendar.Oracle { return calendar.NewLunarGoOracle() }

// newService loads configuration and builds the almanac service for a
// command invocation.
func newService(cmd *cobra.Command) (*almanac.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// Keep stdout clean for piping; diagnostics go to stderr.
	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	loc := cfg.Location()
	if tz, _ := cmd.Flags().GetString("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("--tz: %w", err)
		}
	}

	return almanac.NewService(newOracle(), almanac.Options{
		Location:     loc,
		MemoSize:     cfg.CanChiMemoSize,
		MaxRangeDays: cfg.MaxRangeDays,
		CalendarName: cfg.ICSCalendarName,
	}), nil
}

func jsonOutput(cmd *cobra.Command) bool {
	b, _ := cmd.Flags().GetBool("json")
	return b
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// dateArg parses an optional YYYY-MM-DD argument, defaulting to today in the
// service location.
func dateArg(svc *almanac.Service, args []string) (time.Time, error) {
	if len(args) == 0 {
		return calendar.DateOnly(svc.Now(), nil), nil
	}
	d, err := calendar.ParseDateString(args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
	}
	return d, nil
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("--%s is required", name)
	}
	d, err := calendar.ParseDateString(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: invalid date %q, expected YYYY-MM-DD", name, raw)
	}
	return d, nil
}
