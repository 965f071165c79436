package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single event, exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
	Command      *Command      `json:"command,omitempty"`
	Builtin      *Builtin      `json:"builtin,omitempty"`
	Error        *Error        `json:"error,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// SessionStart is logged when the shell starts reading input.
type SessionStart struct {
	Dir        string `json:"dir"`
	SearchPath string `json:"search_path"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the shell stops, Reason is "eof" or "exit".
type SessionEnd struct {
	Reason string `json:"reason"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// Command is logged after an external command finishes.
type Command struct {
	Argv         []string `json:"argv"`
	ResolvedPath string   `json:"resolved_path"`
	Pid          int      `json:"pid"`
	ExitCode     int      `json:"exit_code"`
	Signal       string   `json:"signal,omitempty"`
	DurationMs   int64    `json:"duration_ms"`
}

func (e *Command) setOn(le *LogEntry) { le.Command = e }

// Builtin is logged after a builtin runs.
type Builtin struct {
	Argv   []string `json:"argv"`
	Status int      `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// Error is logged for errors reported to the user.
type Error struct {
	Line    string `json:"line"`
	Message string `json:"message"`
}

func (e *Error) setOn(le *LogEntry) { le.Error = e }

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction events for later review.
type Logger struct {
	Record LogRecorder

	// Now is the time source, defaults to time.Now.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = l.now().UnixMicro()
	le.SessionID = sessionID
	event.setOn(le)

	return l.Record(le)
}

// NewSession creates a logger with a fresh session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.New().String()}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stores event with the session ID.
func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}
