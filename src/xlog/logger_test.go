package xlog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() { baseLogger = saved })
	return &buf
}

func TestInfofNoDoubleFormattingWithPercent(t *testing.T) {
	buf := capture(t)
	SetLevel("info")
	msg := "exported plot (100% of window 10–90°)"
	Infof(msg)
	out := buf.String()
	if !strings.Contains(out, "(100% of window") {
		t.Fatalf("log output missing percent segment: %s", out)
	}
	if strings.Contains(out, "(MISSING)") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel("warn")
	Infof("hidden")
	Warnf("shown %d", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown 1") {
		t.Fatalf("warn line missing: %s", out)
	}
	SetLevel("info")
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	SetLevel("info")
	SetLevel("nonsense")
	if getLevel() != LevelInfo {
		t.Fatalf("unknown level must not change the current level")
	}
}
