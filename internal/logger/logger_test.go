package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestBuild_LevelAndComponent(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "warn", Component: "cli"}, &buf)

	zl.Info().Msg("dropped")
	zl.Warn().Msg("kept")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("lines=%d want 1: %s", len(lines), buf.String())
	}
	if lines[0]["msg"] != "kept" || lines[0]["component"] != "cli" || lines[0]["level"] != "warn" {
		t.Fatalf("unexpected record: %v", lines[0])
	}
	if _, ok := lines[0]["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", lines[0])
	}
}

func TestSlogBridge_ContextFieldsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "debug"}, &buf)
	log := NewSlog(&zl).With("memo", 16).WithGroup("req")

	ctx := WithRunID(context.Background(), "abc")
	ctx = WithOp(ctx, "decode")
	log.ErrorContext(ctx, "rejected", "code", "39J", "err", errors.New("bad"))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("lines=%d want 1", len(lines))
	}
	rec := lines[0]
	for k, want := range map[string]any{
		"run_id":   "abc",
		"op":       "decode",
		"level":    "error",
		"req.code": "39J",
		"req.err":  "bad",
		"memo":     float64(16),
	} {
		if rec[k] != want {
			t.Fatalf("%s=%v want %v (record %v)", k, rec[k], want, rec)
		}
	}
}

func TestSlogBridge_EnabledFollowsLevel(t *testing.T) {
	zl := Build(Config{Level: "error"}, &bytes.Buffer{})
	log := NewSlog(&zl)
	if log.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("warn must be disabled at error level")
	}
	if !log.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error must be enabled")
	}
}

func TestWithRunID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithRunID(context.Background(), "")
	id, _ := ctx.Value(ctxRunIDKey).(string)
	if len(id) != 16 {
		t.Fatalf("generated id=%q want 16 hex chars", id)
	}
}
