package progress

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/mczhu/spykeutils/src/logging"
)

func TestCounter(t *testing.T) {
	c := &Counter{}
	var ind Indicator = c
	ind.Begin("build")
	ind.SetTicks(4)
	ind.Step(1)
	ind.Step(2)
	ind.SetStatus("drawing")
	ind.Done()
	ind.Done()
	ticks, steps, done := c.Snapshot()
	if ticks != 4 || steps != 3 || done != 2 {
		t.Fatalf("snapshot = %d/%d/%d", ticks, steps, done)
	}
	title, status := c.Status()
	if title != "build" || status != "drawing" {
		t.Fatalf("status = %q %q", title, status)
	}
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Counter{}, &Counter{}
	m := Multi{a, b, None{}}
	m.SetTicks(2)
	m.Step(2)
	m.Done()
	for _, c := range []*Counter{a, b} {
		if ticks, steps, done := c.Snapshot(); ticks != 2 || steps != 2 || done != 1 {
			t.Fatalf("counter not updated: %d/%d/%d", ticks, steps, done)
		}
	}
}

func TestLogThrottles(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(log.New(&buf, "", 0))
	logging.SetLogLevel("debug")
	t.Cleanup(func() {
		logging.SetOutput(nil)
		logging.SetLogLevel("info")
	})

	l := &Log{Every: 50}
	l.Begin("signals")
	l.SetTicks(10)
	for i := 0; i < 10; i++ {
		l.Step(1)
	}
	l.Done()
	out := buf.String()
	if n := strings.Count(out, "signals: "); n != 3 {
		t.Fatalf("expected 2 percent lines and a done line, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "50% (5/10)") || !strings.Contains(out, "100% (10/10)") {
		t.Fatalf("missing percent lines:\n%s", out)
	}
}
