package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsSince string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show conversion-run statistics from the event log",
	Long: `Aggregate the JSONL event log written by conversion runs into summary
statistics: runs, files converted, interfaces and enums generated, and
average run duration.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsSince, "since", "7d", "Time window (e.g. 24h, 7d, 30d)")

	rootCmd.AddCommand(statsCmd)
}

// parseSince parses a human-friendly window like "7d" or "24h" into the
// corresponding time in the past.
func parseSince(window string) (time.Time, error) {
	if strings.HasSuffix(window, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(window, "d"))
		if err != nil || days < 0 {
			return time.Time{}, fmt.Errorf("invalid window %q", window)
		}
		return time.Now().AddDate(0, 0, -days), nil
	}
	d, err := time.ParseDuration(window)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid window %q", window)
	}
	return time.Now().Add(-d), nil
}

func runStats(cmd *cobra.Command, args []string) error {
	if MetricsCalc == nil {
		return fmt.Errorf("event log not available")
	}

	since, err := parseSince(statsSince)
	if err != nil {
		return err
	}

	m, err := MetricsCalc.Calculate(since)
	if err != nil {
		return err
	}

	cmd.Printf("Conversion stats (last %s):\n\n", statsSince)
	cmd.Printf("  Runs:        %d completed, %d failed\n", m.RunsCompleted, m.RunsFailed)
	cmd.Printf("  Files:       %d converted, %d skipped\n", m.FilesConverted, m.FilesSkipped)
	cmd.Printf("  Generated:   %d interfaces, %d enums\n", m.InterfacesGenerated, m.EnumsGenerated)
	if m.AvgRunDuration > 0 {
		cmd.Printf("  Avg run:     %s\n", m.AvgRunDuration.Round(time.Millisecond))
	}
	if m.NewestEvent != nil {
		cmd.Printf("  Last event:  %s\n", m.NewestEvent.Local().Format(time.RFC3339))
	}
	if m.EventCount == 0 {
		cmd.Printf("  No events recorded in this window\n")
	}
	return nil
}
