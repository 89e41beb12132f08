package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("logged = %v, want %v", logged, tt.want)
			}
			if !logged {
				return
			}

			var entry LogEntry
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if entry.Message != tt.message {
				t.Errorf("message = %q, want %q", entry.Message, tt.message)
			}
			if entry.Level != string(tt.level) {
				t.Errorf("level = %q, want %q", entry.Level, tt.level)
			}
			if tt.err != nil && entry.Error != tt.err.Error() {
				t.Errorf("error = %q, want %q", entry.Error, tt.err.Error())
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(LevelInfo, FormatText, &buf)

	logger.log(LevelWarn, "row repaired", Fields{"draw": 1764, "cells": 26}, errors.New("extra cells"))

	line := buf.String()
	if json.Valid(buf.Bytes()) {
		t.Fatalf("text format produced JSON: %s", line)
	}
	for _, want := range []string{"WARN", "row repaired", "cells=26", "draw=1764", `error="extra cells"`} {
		if !strings.Contains(line, want) {
			t.Errorf("output missing %q: %s", want, line)
		}
	}

	// Fields render in sorted key order.
	if strings.Index(line, "cells=") > strings.Index(line, "draw=") {
		t.Errorf("fields not sorted: %s", line)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"bogus", FormatJSON},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("rows.dropped", 1)
	m.IncrCounter("rows.dropped", 2)
	m.SetGauge("artifact.bytes", 1024)
	m.RecordTiming("fetch", 250*time.Millisecond)

	snap := m.Snapshot()

	counters := snap["counters"].(map[string]int64)
	if counters["rows.dropped"] != 3 {
		t.Errorf("counter = %d, want 3", counters["rows.dropped"])
	}

	gauges := snap["gauges"].(map[string]float64)
	if gauges["artifact.bytes"] != 1024 {
		t.Errorf("gauge = %v, want 1024", gauges["artifact.bytes"])
	}

	timings := snap["timings"].(map[string]string)
	if timings["fetch"] != "250ms" {
		t.Errorf("timing = %q, want %q", timings["fetch"], "250ms")
	}
}
