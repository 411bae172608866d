// Package observability records conversion runs in an append-only JSONL
// event log and derives aggregate metrics from it.
package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// EventLogFileName is the JSONL file pytoty appends run events to.
const EventLogFileName = ".pytoty_events.jsonl"

// Event is one conversion-run event. Type is one of run.started,
// run.completed, run.failed, file.converted, or file.skipped; Data carries
// the type-specific payload (counts, paths, durations, skip reasons).
type Event struct {
	Time time.Time      `json:"time"`
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// EventLog appends run events to durable storage and reads them back for
// metrics aggregation.
type EventLog interface {
	Write(event Event) error
	// ReadSince returns events recorded at or after since, oldest first.
	// A zero since returns the full log.
	ReadSince(since time.Time) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog over an append-only JSONL file. One JSON
// object per line; readers tolerate partial or corrupt lines.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog creates an EventLog backed by a JSONL file at the given path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

func (l *jsonlEventLog) Write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

func (l *jsonlEventLog) ReadSince(since time.Time) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var event Event
		if err := json.Unmarshal(sc.Bytes(), &event); err != nil {
			continue // partial or corrupt line
		}
		if event.Time.Before(since) {
			continue
		}
		events = append(events, event)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}
	return events, nil
}

func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
