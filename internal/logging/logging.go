// Package logging writes one JSON object per line, the format every
// component of the service logs in.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a logger writing to w with timestamps in loc (UTC when nil).
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc}
}

var std = New(os.Stdout, time.UTC)

// Default returns the process-wide stdout logger.
func Default() *Logger { return std }

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) { std = l }

// Log writes data as one line, adding "ts" and, unless present, a "level"
// derived from "status" (error -> error, otherwise info).
func (l *Logger) Log(data map[string]any) {
	if l == nil {
		return
	}
	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}
	out["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := out["level"]; !ok {
		if out["status"] == "error" {
			out["level"] = "error"
		} else {
			out["level"] = "info"
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(out)
}

// Info logs an event with extra fields.
func (l *Logger) Info(component, event string, fields map[string]any) {
	l.Log(withEvent(component, event, "info", fields))
}

// Error logs an event with the error message attached.
func (l *Logger) Error(component, event string, err error, fields map[string]any) {
	data := withEvent(component, event, "error", fields)
	data["status"] = "error"
	if err != nil {
		data["error_message"] = err.Error()
	}
	l.Log(data)
}

func withEvent(component, event, level string, fields map[string]any) map[string]any {
	data := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		data[k] = v
	}
	data["component"] = component
	data["event"] = event
	data["level"] = level
	return data
}
