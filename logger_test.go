package numfmt

import (
	"errors"
	"testing"
)

func TestNewGoLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json", "pretty"} {
		logger, err := NewGoLogger(LoggerConfig{Name: "numfmt", Level: "debug", Format: format})
		if err != nil {
			t.Fatalf("NewGoLogger(%q): %v", format, err)
		}
		if logger == nil {
			t.Fatalf("NewGoLogger(%q) returned nil", format)
		}
		if logger.WithFields(map[string]any{"locale": "en-US"}) == nil {
			t.Fatalf("WithFields(%q) returned nil", format)
		}
	}

	if _, err := NewGoLogger(LoggerConfig{Format: "xml"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("NewGoLogger(xml) = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizeLevel(t *testing.T) {
	if normalizeLevel(" WARNING ") == "" {
		t.Fatal("expected warning alias")
	}
	if normalizeLevel("verbose") != "" {
		t.Fatal("unknown levels must be ignored")
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := NoOpLogger()
	logger.Info("ignored", "k", "v")
	if logger.WithFields(map[string]any{"k": "v"}) == nil {
		t.Fatal("expected no-op logger")
	}
}
