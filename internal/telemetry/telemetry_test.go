package telemetry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger_JSONWithComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(&buf, "INFO", "json")
	Component(logger, "engine").Info("saved", "name", "Test")
	Component(logger, "engine").Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, `"component":"engine"`) || !strings.Contains(out, `"name":"Test"`) {
		t.Errorf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at INFO level: %s", out)
	}
}

func TestMetrics_ObserveOperation(t *testing.T) {
	m := NewMetrics()
	m.ObserveOperation("save", "ok")
	m.ObserveOperation("save", "ok")
	m.ObserveOperation("save", "validation")
	m.ObservePublish(2048)

	if got := m.OperationCount("save", "ok"); got != 2 {
		t.Errorf("save/ok = %v, want 2", got)
	}
	if got := m.OperationCount("load", "ok"); got != 0 {
		t.Errorf("load/ok = %v, want 0", got)
	}

	var nilMetrics *Metrics
	nilMetrics.ObserveOperation("save", "ok")
	nilMetrics.ObservePublish(1)
}
