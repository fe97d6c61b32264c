package handoff

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// Event types recorded in the continuation event stream.
const (
	EventHandoffStart   = "handoff_start"
	EventHandoffLaunch  = "handoff_launch"
	EventHandoffSkipped = "handoff_skipped"
)

// Event is one record in the JSONL continuation log.
type Event struct {
	Seq       int       `json:"seq"`
	Timestamp time.Time `json:"ts"`
	Type      string    `json:"type"`
	Source    string    `json:"source,omitempty"`
	Target    string    `json:"target,omitempty"`
	Cwd       string    `json:"cwd,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// EventLogPath returns ~/.vexy-overnight/events.jsonl.
func EventLogPath(home string) string {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, settings.DirName, "events.jsonl")
}

// EventWriter appends events to the JSONL log, continuing the sequence from
// any existing records.
type EventWriter struct {
	file *os.File
	seq  int
	mu   sync.Mutex
}

// NewEventWriter opens the continuation event log under home for appending.
func NewEventWriter(home string) (*EventWriter, error) {
	path := EventLogPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create events directory: %w", err)
	}

	seq := 0
	if existing, err := ReadEvents(home, 0); err == nil {
		for _, e := range existing {
			if e.Seq > seq {
				seq = e.Seq
			}
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	return &EventWriter{file: file, seq: seq}, nil
}

// Write appends one event with the next sequence number.
func (w *EventWriter) Write(eventType, source, target, cwd, detail string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	event := Event{
		Seq:       w.seq,
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Source:    source,
		Target:    target,
		Cwd:       cwd,
		Detail:    detail,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return w.file.Sync()
}

// Close closes the underlying file.
func (w *EventWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// LogEvent opens the log, writes one event and closes it again. Hook runs
// are short-lived so holding the file open buys nothing. Best effort.
func LogEvent(home, eventType, source, target, cwd, detail string) {
	w, err := NewEventWriter(home)
	if err != nil {
		return
	}
	defer w.Close()
	_ = w.Write(eventType, source, target, cwd, detail)
}

// ReadEvents returns the recorded events, oldest first. With last > 0 only
// that many trailing events are returned. A missing log yields no events.
func ReadEvents(home string, last int) ([]Event, error) {
	file, err := os.Open(EventLogPath(home))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading event log: %w", err)
	}
	if last > 0 && len(events) > last {
		events = events[len(events)-last:]
	}
	return events, nil
}
