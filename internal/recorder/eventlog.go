package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEventType identifies a logged game event.
type LogEventType string

const (
	LogEventStart  LogEventType = "game_start"
	LogEventMove   LogEventType = "move"
	LogEventSolved LogEventType = "solved"
	LogEventEnd    LogEventType = "game_end"
)

// LogEvent is one line of the event log.
type LogEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	ElapsedMs int64        `json:"elapsed_ms"`
	EventType LogEventType `json:"event_type"`
	GameID    string       `json:"game_id,omitempty"`
	Move      string       `json:"move,omitempty"`
	MoveCount int          `json:"move_count,omitempty"`
	Scramble  string       `json:"scramble,omitempty"`
	Solved    bool         `json:"solved,omitempty"`
}

// GameLog is a loaded event log.
type GameLog struct {
	Version   string     `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	Events    []LogEvent `json:"events"`
}

// Moves returns the notation of every logged move in order.
func (l *GameLog) Moves() []string {
	var out []string
	for _, e := range l.Events {
		if e.EventType == LogEventMove {
			out = append(out, e.Move)
		}
	}
	return out
}

const logVersion = "1.0"

type logHeader struct {
	Type      string    `json:"type"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// EventLog appends game events to a JSONL file. The first line is a
// header; every following line is a LogEvent.
type EventLog struct {
	mu        sync.Mutex
	file      *os.File
	startTime time.Time
}

// OpenEventLog creates a timestamped log file in dir.
func OpenEventLog(dir string) (*EventLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("games_%s.jsonl", now.Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	l := &EventLog{file: file, startTime: now}
	if err := l.writeJSON(logHeader{Type: "header", Version: logVersion, CreatedAt: now}); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

// Log appends e, filling in the timestamp and elapsed time.
func (l *EventLog) Log(e LogEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	e.Timestamp = time.Now()
	e.ElapsedMs = e.Timestamp.Sub(l.startTime).Milliseconds()
	return l.writeJSON(e)
}

func (l *EventLog) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal log event: %w", err)
	}
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write log event: %w", err)
	}
	return nil
}

// FilePath returns the log file path.
func (l *EventLog) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file.
func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// LoadEventLog reads a JSONL event log.
func LoadEventLog(path string) (*GameLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	log := &GameLog{}
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var h logHeader
			if err := json.Unmarshal(line, &h); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			log.Version = h.Version
			log.CreatedAt = h.CreatedAt
			continue
		}

		var e LogEvent
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return log, nil
}
