package cli

import (
	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	// BasePath is the directory holding .pytotyrc and the event log.
	BasePath string

	ConfigMgr   core.ConfigManager
	Converter   core.Converter
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)

// loadConfigOptions loads the configuration (defaults when no config manager
// or file is present) and converts it to ConvertOptions.
func loadConfigOptions() (core.ConvertOptions, error) {
	if ConfigMgr == nil {
		return core.FromConfig(nil), nil
	}
	cfg, err := ConfigMgr.Load()
	if err != nil {
		return core.ConvertOptions{}, err
	}
	return core.FromConfig(cfg), nil
}
