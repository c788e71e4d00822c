package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mczhu/spykeutils/src/neo"
)

func TestSummarizeDemo(t *testing.T) {
	blk := neo.Demo(neo.DefaultDemoConfig)
	var buf bytes.Buffer
	summarize(&buf, blk)
	out := buf.String()
	for _, want := range []string{
		"Block: Demo recording",
		"Channels: 4  Units: 2  Segments: 2",
		"Segment 1: Trial 2",
		`signal "LFP 3" channel=Channel 3 unit=mV`,
		"samples=2000 duration=2 s",
		"events: 2  epochs: 1  spikes: 0",
		"Unit 2: 1 trains",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Unit 1:") > strings.Index(out, "Unit 2:") {
		t.Fatalf("units should be listed by ID")
	}
}

func TestSummarizeUnassignedTrain(t *testing.T) {
	blk := &neo.Block{Name: "bare", Segments: []*neo.Segment{{
		Name:        "s",
		SpikeTrains: []*neo.SpikeTrain{{Times: []float64{1, 2}}},
	}}}
	var buf bytes.Buffer
	summarize(&buf, blk)
	if !strings.Contains(buf.String(), "(no unit): 1 trains, 2 spikes, 0 with waveforms") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
}
