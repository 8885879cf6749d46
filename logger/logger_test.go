package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"david@example.com", "d***@example.com"},
		{"a@b.c", "a***@b.c"},
		{"no-at-sign", "[REDACTED]"},
		{"@leading.com", "[REDACTED]"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.in); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoggerMasksEmailFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewWithCore(core)

	log.Warn("duplicate person", "person_id", 1, "email", "sarah@example.com")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["email"] != "s***@example.com" {
		t.Errorf("email field = %v, want masked", ctx["email"])
	}
	if ctx["person_id"] != int64(1) {
		t.Errorf("person_id field = %v (%T), want 1", ctx["person_id"], ctx["person_id"])
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := NewWithCore(core).With("component", "store")

	log.Info("opened")
	log.Debug("hidden")

	if logs.Len() != 1 {
		t.Fatalf("got %d entries, want 1", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["component"]; got != "store" {
		t.Errorf("component = %v, want store", got)
	}
}
