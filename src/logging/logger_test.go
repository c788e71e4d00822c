package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	savedLevel := GetLogLevel()
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() {
		baseLogger = saved
		SetLogLevel(strings.ToLower(savedLevel.String()))
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLogs(t)
	SetLogLevel("info")

	msg := "[plot] channel 3 scaled to 100.0% of range (unit=%)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "100.0% of range (unit=%)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLogs(t)
	SetLogLevel("warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below warn were not filtered: %s", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("expected warn and error lines, got: %s", out)
	}
}

func TestSetLogLevelIgnoresUnknown(t *testing.T) {
	captureLogs(t)
	SetLogLevel("error")
	SetLogLevel("verbose")
	if GetLogLevel() != LevelError {
		t.Fatalf("unknown level changed the current level to %v", GetLogLevel())
	}
	SetLogLevel("  Debug ")
	if GetLogLevel() != LevelDebug {
		t.Fatalf("expected debug after case/space-insensitive parse, got %v", GetLogLevel())
	}
}
