package shared

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger, got nil")
		}
	})

	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello from the test")

		if !strings.Contains(buf.String(), "hello from the test") {
			t.Errorf("expected log output in buffer, got %q", buf.String())
		}
	})

	t.Run("WithLogger Adds Fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "tester")
		logger.Info("tagged")

		out := buf.String()
		if !strings.Contains(out, "component") || !strings.Contains(out, "tester") {
			t.Errorf("expected component field in output, got %q", out)
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	t.Run("Creates Parent Directories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "logs", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		if logger == nil {
			t.Fatal("expected a logger, got nil")
		}

		logger.Info("written to file")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "written to file") {
			t.Errorf("expected log line in file, got %q", string(data))
		}
	})

	t.Run("Fails On Unwritable Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write blocker file: %v", err)
		}

		// Parent "directory" is a regular file, so MkdirAll fails.
		_, err := NewFileLogger(filepath.Join(blocker, "sub", "app.log"))
		if err == nil {
			t.Error("expected an error for a path under a regular file")
		}
	})
}

func TestGenerateID(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		id := GenerateID()
		if len(id) != 36 {
			t.Errorf("expected 36-character uuid, got %d characters (%q)", len(id), id)
		}
		if strings.Count(id, "-") != 4 {
			t.Errorf("expected 4 hyphens in uuid, got %q", id)
		}
	})

	t.Run("Uniqueness", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate id generated: %s", id)
			}
			seen[id] = true
		}
	})
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name    string
		seconds int
		want    string
	}{
		{"Zero", 0, "0:00"},
		{"Negative", -5, "0:00"},
		{"Under A Minute", 42, "0:42"},
		{"Exact Minute", 60, "1:00"},
		{"Padded Seconds", 125, "2:05"},
		{"Long Track", 3671, "61:11"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDuration(tc.seconds)
			if got != tc.want {
				t.Errorf("expected %q for %d seconds, got %q", tc.want, tc.seconds, got)
			}
		})
	}
}

func TestBoolLabel(t *testing.T) {
	if got := BoolLabel(true); got != "yes" {
		t.Errorf("expected yes, got %q", got)
	}
	if got := BoolLabel(false); got != "no" {
		t.Errorf("expected no, got %q", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]any{"name": "Groove FM", "votes": 12}

	t.Run("Compact", func(t *testing.T) {
		out, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if strings.Contains(string(out), "\n") {
			t.Errorf("expected compact output, got %q", string(out))
		}

		var decoded map[string]any
		if err := json.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["name"] != "Groove FM" {
			t.Errorf("expected name to round-trip, got %v", decoded["name"])
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(out), "\n  ") {
			t.Errorf("expected indented output, got %q", string(out))
		}
	})

	t.Run("Unmarshalable Value", func(t *testing.T) {
		_, err := MarshalJSON(make(chan int), false)
		if err == nil {
			t.Error("expected an error for an unmarshalable value")
		}
	})
}
