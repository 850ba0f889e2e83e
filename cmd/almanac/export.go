package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var icsCmd = &cobra.Command{
	Use:   "ics",
	Short: "Export day verdicts as an iCalendar feed",
	Args:  cobra.NoArgs,
	RunE:  runICS,
}

func init() {
	icsCmd.Flags().String("start", "", "first date, YYYY-MM-DD")
	icsCmd.Flags().String("end", "", "last date, YYYY-MM-DD")
	icsCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(icsCmd)
}

func runICS(cmd *cobra.Command, _ []string) error {
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

	data, err := svc.CalendarICS(cmd.Context(), start, end)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}
