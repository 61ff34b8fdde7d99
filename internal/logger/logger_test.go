package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestSlogBridgeFields(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "debug", Component: "test"}, &buf)
	l := NewSlog(&zl).With("scale", "Local")

	l.Info("derived", "res", 9, "hit", true)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "derived" || rec["level"] != "info" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["scale"] != "Local" {
		t.Fatalf("bound attr missing: %v", rec)
	}
	if rec["res"] != float64(9) || rec["hit"] != true {
		t.Fatalf("record attrs missing: %v", rec)
	}
	if rec["component"] != "test" {
		t.Fatalf("component missing: %v", rec)
	}
}

func TestSlogBridgeHonorsGlobalLevel(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "warn"}, &buf)
	l := NewSlog(&zl)

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record must be dropped at warn level: %q", buf.String())
	}

	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn record must pass: %q", buf.String())
	}
}

func TestFromContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	zl := Build(Config{Level: "debug"}, &buf)

	ctx := WithRequestID(context.Background(), "abc123")
	FromContext(ctx, &zl).Info().Msg("ping")

	if !strings.Contains(buf.String(), `"request_id":"abc123"`) {
		t.Fatalf("request_id missing: %q", buf.String())
	}
}
