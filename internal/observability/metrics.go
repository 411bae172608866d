package observability

import (
	"fmt"
	"time"
)

// Metrics holds aggregate conversion statistics derived from the event log.
type Metrics struct {
	RunsStarted         int            `json:"runs_started"`
	RunsCompleted       int            `json:"runs_completed"`
	RunsFailed          int            `json:"runs_failed"`
	FilesConverted      int            `json:"files_converted"`
	FilesSkipped        int            `json:"files_skipped"`
	InterfacesGenerated int            `json:"interfaces_generated"`
	EnumsGenerated      int            `json:"enums_generated"`
	SkipReasons         map[string]int `json:"skip_reasons,omitempty"`
	EventCount          int            `json:"event_count"`
	AvgRunDuration      time.Duration  `json:"avg_run_duration"`
	OldestEvent         *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent         *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.ReadSince(since)
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{SkipReasons: make(map[string]int)}
	m.EventCount = len(events)

	var totalDuration time.Duration
	var timedRuns int

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case "run.started":
			m.RunsStarted++
		case "run.completed":
			m.RunsCompleted++
			if ms, ok := asInt(event.Data["duration_ms"]); ok {
				totalDuration += time.Duration(ms) * time.Millisecond
				timedRuns++
			}
		case "run.failed":
			m.RunsFailed++
		case "file.converted":
			m.FilesConverted++
			if n, ok := asInt(event.Data["interfaces"]); ok {
				m.InterfacesGenerated += n
			}
			if n, ok := asInt(event.Data["enums"]); ok {
				m.EnumsGenerated += n
			}
		case "file.skipped":
			m.FilesSkipped++
			if reason, ok := event.Data["reason"].(string); ok {
				m.SkipReasons[reason]++
			}
		}
	}

	if timedRuns > 0 {
		m.AvgRunDuration = totalDuration / time.Duration(timedRuns)
	}
	return m, nil
}

// asInt converts the numeric types JSON decoding and in-process logging
// produce into an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
