package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/internal/observability"
	"github.com/MarkZakelj/pytoty/pkg/models"
)

// fakeConverter implements core.Converter with overridable function fields.
// Unset functions return empty results.
type fakeConverter struct {
	convertDirFn    func(inputDir, outputDir string, opts core.ConvertOptions) (*models.ConversionResult, error)
	convertSourceFn func(src string, opts core.ConvertOptions) (string, error)
	scanDirFn       func(inputDir string, opts core.ConvertOptions) (*models.ScanReport, error)
}

func (f *fakeConverter) ConvertDir(inputDir, outputDir string, opts core.ConvertOptions) (*models.ConversionResult, error) {
	if f.convertDirFn == nil {
		return &models.ConversionResult{}, nil
	}
	return f.convertDirFn(inputDir, outputDir, opts)
}

func (f *fakeConverter) ConvertSource(src string, opts core.ConvertOptions) (string, error) {
	if f.convertSourceFn == nil {
		return "", nil
	}
	return f.convertSourceFn(src, opts)
}

func (f *fakeConverter) ScanDir(inputDir string, opts core.ConvertOptions) (*models.ScanReport, error) {
	if f.scanDirFn == nil {
		return &models.ScanReport{}, nil
	}
	return f.scanDirFn(inputDir, opts)
}

// fakeConfigManager serves a fixed configuration.
type fakeConfigManager struct {
	cfg *models.Config
	err error
}

func (f *fakeConfigManager) Load() (*models.Config, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg == nil {
		return core.DefaultConfig(), nil
	}
	return f.cfg, nil
}

func (f *fakeConfigManager) Validate(cfg *models.Config) error { return nil }

// fakeMetricsCalculator serves fixed metrics.
type fakeMetricsCalculator struct {
	metrics *observability.Metrics
	err     error
	since   time.Time
}

func (f *fakeMetricsCalculator) Calculate(since time.Time) (*observability.Metrics, error) {
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	if f.metrics == nil {
		return &observability.Metrics{}, nil
	}
	return f.metrics, nil
}

// swapServices installs test doubles for the package-level service variables
// and restores the originals on cleanup.
func swapServices(t *testing.T, conv core.Converter, cfg core.ConfigManager, metrics observability.MetricsCalculator) {
	t.Helper()
	oldConv, oldCfg, oldMetrics := Converter, ConfigMgr, MetricsCalc
	Converter, ConfigMgr, MetricsCalc = conv, cfg, metrics
	t.Cleanup(func() {
		Converter, ConfigMgr, MetricsCalc = oldConv, oldCfg, oldMetrics
	})
}

// executeCommand runs the root command with the given arguments and returns
// the combined output. Flag state is reset afterwards so tests stay isolated.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		resetCommandFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetCommandFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}
