package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		level      string
		production bool
		wantLevel  slog.Level
		wantFormat string
	}{
		{"debug", false, slog.LevelDebug, "text"},
		{"info", false, slog.LevelInfo, "text"},
		{"warn", true, slog.LevelWarn, "json"},
		{"error", true, slog.LevelError, "json"},
		{"bogus", false, slog.LevelInfo, "text"},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			got := FromConfig(tc.level, tc.production)
			if got.Level != tc.wantLevel {
				t.Errorf("level: got %v, want %v", got.Level, tc.wantLevel)
			}
			if got.Format != tc.wantFormat {
				t.Errorf("format: got %q, want %q", got.Format, tc.wantFormat)
			}
		})
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, Config{Level: slog.LevelInfo, Format: "json"})

	ctx := WithRequestID(context.Background(), "req-123")
	log.WithContext(ctx).Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id: got %v, want %q", entry["request_id"], "req-123")
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg: got %v, want %q", entry["msg"], "hello")
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("got %q, want empty", id)
	}
}
