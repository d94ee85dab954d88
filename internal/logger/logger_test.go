package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(NewConfig(level, LogFormatJSON, "draft-test", "1.0.0", EnvironmentTest, false), &buf)
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestJSONLogging_BaseAttributes(t *testing.T) {
	buf := captureJSON(t, LogLevelInfo)

	Info("Draft started", "player_id", "p1", "offers", 3)

	entry := decodeLine(t, buf)
	want := map[string]interface{}{
		"service":     "draft-test",
		"version":     "1.0.0",
		"environment": EnvironmentTest,
		"msg":         "Draft started",
		"level":       "INFO",
		"player_id":   "p1",
		"offers":      float64(3),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("Expected %s=%v, got %v", k, v, entry[k])
		}
	}
}

func TestFromContext_RequestID(t *testing.T) {
	buf := captureJSON(t, LogLevelInfo)
	ctx := WithRequestID(context.Background(), "req-123")

	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("Expected request_id=req-123, got %s", got)
	}

	FromContext(ctx).Info("confirm")
	entry := decodeLine(t, buf)
	if entry[AttrKeyRequestID] != "req-123" {
		t.Errorf("Expected request_id on record, got %v", entry[AttrKeyRequestID])
	}
	if _, ok := entry[AttrKeyTraceID]; ok {
		t.Error("Expected no trace_id without a span")
	}
}

func TestFromContext_TraceIDs(t *testing.T) {
	buf := captureJSON(t, LogLevelInfo)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x0a},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	FromContext(ctx).Info("Draft resolved")
	entry := decodeLine(t, buf)
	if entry[AttrKeyTraceID] != sc.TraceID().String() {
		t.Errorf("Expected trace_id=%s, got %v", sc.TraceID(), entry[AttrKeyTraceID])
	}
	if entry[AttrKeySpanID] != sc.SpanID().String() {
		t.Errorf("Expected span_id=%s, got %v", sc.SpanID(), entry[AttrKeySpanID])
	}
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{Level: tt.in}).LogLevel(); got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigPresets(t *testing.T) {
	prod := ProductionConfig()
	if !prod.IsJSON() || prod.AddSource || prod.Environment != EnvironmentProduction {
		t.Errorf("Unexpected production config: %+v", prod)
	}

	dev := DevelopmentConfig()
	if dev.IsJSON() || !dev.AddSource || dev.LogLevel() != slog.LevelDebug {
		t.Errorf("Unexpected development config: %+v", dev)
	}

	if def := DefaultConfig(); def.ServiceName != DefaultServiceName {
		t.Errorf("Expected default service %s, got %s", DefaultServiceName, def.ServiceName)
	}
}

func TestTextLogging_FiltersBelowLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: LogLevelWarn, Format: LogFormatText, ServiceName: "svc"}, &buf)

	Info("hidden")
	Warn("shown", "player_id", "p1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "player_id=p1") {
		t.Errorf("Expected warn record with attributes, got %q", out)
	}
}
