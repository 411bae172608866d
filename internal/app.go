// Package internal provides the App struct that wires all pytoty components
// together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/MarkZakelj/pytoty/internal/cli"
	"github.com/MarkZakelj/pytoty/internal/core"
	"github.com/MarkZakelj/pytoty/internal/observability"
)

// App holds the service dependencies of a pytoty process.
type App struct {
	BasePath string

	ConfigMgr core.ConfigManager
	Converter core.Converter

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all pytoty components. basePath is the directory
// holding .pytotyrc and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	app.ConfigMgr = core.NewConfigManager(basePath)

	// Observability is best-effort: a read-only filesystem disables the
	// event log but never the converter.
	eventLogPath := filepath.Join(basePath, observability.EventLogFileName)
	eventLog, err := observability.NewJSONLEventLog(eventLogPath)
	if err == nil {
		app.EventLog = eventLog
		app.MetricsCalc = observability.NewMetricsCalculator(eventLog)
	}

	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
	}
	app.Converter = core.NewConverter(os.Stdout, nil, events)

	// Wire CLI package-level variables.
	cli.BasePath = basePath
	cli.ConfigMgr = app.ConfigMgr
	cli.Converter = app.Converter
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. Safe to call when the event log is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory pytoty reads its configuration
// from. It checks the PYTOTY_HOME env var, then walks up from the current
// directory looking for a .pytotyrc, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("PYTOTY_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) {
	_ = a.log.Write(observability.Event{
		Time: time.Now().UTC(),
		Type: eventType,
		Data: data,
	})
}
