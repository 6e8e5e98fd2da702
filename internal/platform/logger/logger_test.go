package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize_RedactsAndHashes(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := Wrap(zap.New(core))
	l.hashSalt = "salt"

	l.Info("storage backend selected", "backend", "supabase", "supabase_key", "secret-value", "user_id", "user_1")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["backend"] != "supabase" {
		t.Fatalf("backend should pass through, got %v", fields["backend"])
	}
	if fields["supabase_key"] != "[REDACTED]" {
		t.Fatalf("key should be redacted, got %v", fields["supabase_key"])
	}
	uid, _ := fields["user_id"].(string)
	if !strings.HasPrefix(uid, "hash:") || strings.Contains(uid, "user_1") {
		t.Fatalf("user id should be hashed, got %q", uid)
	}
}

func TestWith_KeepsSanitizing(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := Wrap(zap.New(core)).With("api_token", "abc")
	l.Warn("hello")

	fields := logs.All()[0].ContextMap()
	if fields["api_token"] != "[REDACTED]" {
		t.Fatalf("expected redacted token, got %v", fields["api_token"])
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Info("discarded", "k", "v")
	l.Sync()
}
