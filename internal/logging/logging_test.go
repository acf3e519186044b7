package logging

import "testing"

func TestNewLoggerLevels(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		l, err := NewLogger(lvl)
		if err != nil {
			t.Fatalf("NewLogger(%q) error = %v", lvl, err)
		}
		if l == nil {
			t.Fatalf("NewLogger(%q) returned nil", lvl)
		}
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, err := NewLogger("shouting"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestFieldDSNRedacts(t *testing.T) {
	f := FieldDSN("dsn", "postgres://user:hunter2@db:5432/audits")
	if f.String != "postgres://user:***@db:5432/audits" {
		t.Fatalf("got %q", f.String)
	}
}
