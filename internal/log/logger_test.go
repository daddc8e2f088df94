package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerJSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Component: ComponentHTTP, Output: &buf})

	logger.Info("hello", FieldPath, "/")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rec[FieldComponent] != ComponentHTTP || rec[FieldPath] != "/" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Component: ComponentApp, Output: &buf})
	child := base.WithComponent(ComponentAMQP)

	if child.Component() != ComponentAMQP || base.Component() != ComponentApp {
		t.Fatalf("components = %q/%q", child.Component(), base.Component())
	}
	child.Warn("down")
	if !strings.Contains(buf.String(), "component=amqp") {
		t.Errorf("missing component in %q", buf.String())
	}
	if strings.Count(buf.String(), "component=") != 1 {
		t.Errorf("component logged more than once: %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	logger := New(Config{Component: ComponentExpense, Output: &bytes.Buffer{}})
	ctx := NewContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatalf("expected logger from context")
	}
	if got := FromContext(context.Background()); got.Component() != "unknown" {
		t.Errorf("fallback component = %q", got.Component())
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Level: slog.LevelDebug, Component: ComponentExpense, Output: &buf}))
	ctx := context.Background()

	sl.LogExpenseCreated(ctx, "abc", "Lunch", decimal.RequireFromString("12.5"), "Food & Dining", "2024-01-15")
	if !strings.Contains(buf.String(), "amount=12.50") || !strings.Contains(buf.String(), "expense_id=abc") {
		t.Errorf("missing expense fields: %q", buf.String())
	}

	buf.Reset()
	r := httptest.NewRequest("GET", "/missing", nil)
	sl.LogHTTPEnd(ctx, r, "req_1", 404, 3, "127.0.0.1")
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "request_id=req_1") {
		t.Errorf("unexpected HTTP end record: %q", buf.String())
	}

	buf.Reset()
	sl.LogError(ctx, "publish failed", errors.New("boom"), OpPublish, nil)
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("unexpected error record: %q", buf.String())
	}
}
