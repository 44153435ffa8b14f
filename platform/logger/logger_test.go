package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", WithOutput(&buf))

	log.RateLimitExceeded("10.0.0.1", "login")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "rate_limit_exceeded" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["action"] != "login" {
		t.Fatalf("unexpected action %v", entry["action"])
	}
}

func TestWithContextAddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	log := New("development", WithOutput(&buf))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, "user-9")
	log.WithContext(ctx).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-123") || !strings.Contains(out, "user_id=user-9") {
		t.Fatalf("expected context attributes in %q", out)
	}
}

func TestWithFileIgnoresBlankPath(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", WithOutput(&buf), WithFile(FileOptions{Path: "  "}))
	log.Info("only stdout")

	if !strings.Contains(buf.String(), "only stdout") {
		t.Fatalf("expected message on primary output")
	}
}
