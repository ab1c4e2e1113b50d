package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNilContextHelpers(t *testing.T) {
	var nilCtx context.Context //nolint:revive // testing nil context handling
	if LoggerFromContext(nilCtx) == nil {
		t.Fatal("expected global logger for nil context")
	}
	if ctx := contextWithLogger(nilCtx, zap.NewNop()); ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestLoggerFromContextNilLoggerInContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxLoggerKey{}, (*zap.Logger)(nil))
	if LoggerFromContext(ctx) != Logger() {
		t.Fatal("expected fallback to the global logger")
	}
}

func TestLogHelpersWriteEntries(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := contextWithLogger(context.Background(), zap.New(core))

	LogInfo(ctx, "info msg", zap.String("k", "v"))
	LogWarn(ctx, "warn msg")
	LogError(ctx, "error msg", errors.New("boom"), zap.String("foo", "bar"))
	LogError(ctx, "error without err", nil)

	entries := recorded.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	want := []struct {
		msg   string
		level zapcore.Level
	}{
		{"info msg", zapcore.InfoLevel},
		{"warn msg", zapcore.WarnLevel},
		{"error msg", zapcore.ErrorLevel},
		{"error without err", zapcore.ErrorLevel},
	}
	for i, w := range want {
		if entries[i].Message != w.msg || entries[i].Level != w.level {
			t.Errorf("entry %d: expected %s/%s, got %s/%s", i, w.msg, w.level, entries[i].Message, entries[i].Level)
		}
	}

	fields := entries[2].ContextMap()
	if fields["foo"] != "bar" {
		t.Fatalf("expected foo=bar, got %v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error=boom, got %v", fields)
	}
	if _, ok := entries[3].ContextMap()["error"]; ok {
		t.Fatal("did not expect error field for nil error")
	}
}
