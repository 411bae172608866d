package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarkZakelj/pytoty/internal/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <input-dir> <output-dir>",
	Short: "Convert continuously, re-running when Python files change",
	Long: `Run an initial conversion, then watch the input directory for changes to
Python files and re-run the conversion each time one is written, created,
renamed, or removed.

Rapid change bursts are debounced so editor saves trigger a single run.
Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("pattern", "", "File pattern to match Python files (default \"**/*.py\")")
	watchCmd.Flags().Bool("no-enum", false, "Convert enums to union types instead of TypeScript enums")
	watchCmd.Flags().Bool("no-null", false, "Don't generate | null for optional fields")
	watchCmd.Flags().String("suffix", "", "Output file suffix (default \".type.ts\")")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond,
		"Delay before re-running after a change")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if Converter == nil {
		return fmt.Errorf("converter not initialized")
	}

	opts, err := convertOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	inputDir, outputDir := args[0], args[1]

	// Initial conversion; a failure here is fatal, failures on re-runs are
	// reported and watching continues.
	if _, err := Converter.ConvertDir(inputDir, outputDir, opts); err != nil {
		return err
	}

	watcher, err := watch.New(inputDir, watch.WithDebounce(watchDebounce))
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("\nWatching %s for changes (Ctrl-C to stop)\n", inputDir)
	return watcher.Run(ctx, func(paths []string) {
		cmd.Printf("\n%d file(s) changed, re-running conversion\n", len(paths))
		if _, err := Converter.ConvertDir(inputDir, outputDir, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Conversion failed: %v\n", err)
		}
	})
}
