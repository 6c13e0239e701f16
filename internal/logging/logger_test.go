package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("key", "value")
		if f.Key != "key" {
			t.Errorf("String().Key = %q, want %q", f.Key, "key")
		}
		if f.Value != "value" {
			t.Errorf("String().Value = %q, want %q", f.Value, "value")
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("scenario", 42)
		if f.Key != "scenario" {
			t.Errorf("Int().Key = %q, want %q", f.Key, "scenario")
		}
		if f.Value != 42 {
			t.Errorf("Int().Value = %v, want %v", f.Value, 42)
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("objective", 80.0)
		if f.Key != "objective" {
			t.Errorf("Float64().Key = %q, want %q", f.Key, "objective")
		}
		if f.Value != 80.0 {
			t.Errorf("Float64().Value = %v, want %v", f.Value, 80.0)
		}
	})

	t.Run("Duration creates field with duration value", func(t *testing.T) {
		f := Duration("elapsed", 3*time.Second)
		if f.Key != "elapsed" {
			t.Errorf("Duration().Key = %q, want %q", f.Key, "elapsed")
		}
		if f.Value != 3*time.Second {
			t.Errorf("Duration().Value = %v, want %v", f.Value, 3*time.Second)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("test error")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	adapter := NewZerologAdapter(zl)

	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test-component")

	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("hello")
	output := buf.String()

	if !strings.Contains(output, "test-component") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestFieldSerialization verifies that typed fields land in the JSON output.
func TestFieldSerialization(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "solver")

	logger.Info("scenario solved",
		Int("scenario", 2),
		String("status", "OPTIMAL"),
		Float64("objective", 150.0),
		Err(errors.New("boom")),
	)

	output := buf.String()
	for _, want := range []string{`"scenario":2`, `"status":"OPTIMAL"`, `"objective":150`, `"error":"boom"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s, got: %s", want, output)
		}
	}
}

// TestNopLogger verifies the no-op logger does nothing and never panics.
func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("a")
	l.Info("b", Int("x", 1))
	l.Warn("c")
	l.Error("d", Err(errors.New("ignored")))
}
