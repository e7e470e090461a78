package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("visible", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered out: %s", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "component=test") {
		t.Fatalf("warn record missing: %s", out)
	}
}

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"error", "ERROR"},
		{"WARN", "WARN"},
		{"warning", "WARN"},
		{" info ", "INFO"},
		{"", "DEBUG"},
		{"trace", "DEBUG"},
	}

	for _, tc := range tests {
		if got := levelFromString(tc.in).String(); got != tc.want {
			t.Fatalf("levelFromString(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
