package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/talgya/hexgalaxy/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHandlerFormat(t *testing.T) {
	cases := []struct {
		format   string
		terminal bool
		json     bool
	}{
		{"json", true, true},
		{"text", false, false},
		{"auto", true, false},
		{"auto", false, true},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		h := newHandler(&buf, config.LoggingConfig{Level: "info", Format: tc.format}, tc.terminal)
		slog.New(h).Info("sector generated", "id", 7)

		isJSON := json.Valid(bytes.TrimSpace(buf.Bytes()))
		if isJSON != tc.json {
			t.Errorf("format=%s terminal=%v: expected json=%v, got %q", tc.format, tc.terminal, tc.json, buf.String())
		}
		if !strings.Contains(buf.String(), "sector generated") {
			t.Errorf("format=%s: message missing from %q", tc.format, buf.String())
		}
	}
}

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, config.LoggingConfig{Level: "warn", Format: "text"}, true)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("Expected info to be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Errorf("Expected error to pass at warn level")
	}
}
