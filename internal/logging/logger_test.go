package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{level: WARN, output: &buf, fields: map[string]interface{}{}}

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("below-level lines leaked: %q", out)
	}
	if !strings.Contains(out, "warn line") || !strings.Contains(out, "error line") {
		t.Errorf("at-level lines missing: %q", out)
	}
}

func TestFieldsAreStableAndInherited(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{level: INFO, output: &buf, fields: map[string]interface{}{}}

	l := base.WithField("component", "test").WithField("attempt", 2)
	l.Info("hello")

	out := buf.String()
	if !strings.Contains(out, "attempt=2 component=test") {
		t.Errorf("fields not rendered in sorted order: %q", out)
	}

	// The parent logger is unchanged
	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("child field leaked into parent: %q", buf.String())
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{level: INFO, output: &buf, fields: map[string]interface{}{}}

	l.Info("delivered %d reminders", 3)
	if !strings.Contains(buf.String(), "delivered 3 reminders") {
		t.Errorf("format args not applied: %q", buf.String())
	}
}
