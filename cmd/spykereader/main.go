package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mczhu/spykeutils/src/logging"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/quantity"
)

func main() {
	var file string
	var writeDemo string
	var logLevel string
	flag.StringVar(&file, "file", "", "Path to a recording JSON file")
	flag.StringVar(&writeDemo, "write-demo", "", "Write the synthetic demo recording to this path and exit")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.Parse()
	logging.SetLogLevel(logLevel)

	if writeDemo != "" {
		if err := neo.Save(writeDemo, neo.Demo(neo.DefaultDemoConfig)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		logging.Infof("[reader] demo recording written to %s", writeDemo)
		return
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "error: -file is required")
		flag.Usage()
		os.Exit(2)
	}
	blk, err := neo.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	summarize(os.Stdout, blk)
}

// summarize prints one block per segment: its signals, event and epoch
// counts and spike trains per unit.
func summarize(w io.Writer, blk *neo.Block) {
	fmt.Fprintf(w, "Block: %s\n", blk.Name)
	fmt.Fprintf(w, "Channels: %d  Units: %d  Segments: %d\n", len(blk.Channels), len(blk.Units), len(blk.Segments))
	for i, seg := range blk.Segments {
		fmt.Fprintf(w, "\nSegment %d: %s\n", i, seg.Name)
		for _, s := range seg.AnalogSignals {
			ch := "-"
			if s.Channel != nil {
				ch = s.Channel.Name
			}
			dur := "?"
			if d, err := s.Duration(quantity.Second); err == nil {
				dur = d.String()
			}
			fmt.Fprintf(w, "  signal %q channel=%s unit=%s rate=%s samples=%d duration=%s\n",
				s.Name, ch, s.Units, s.SamplingRate, s.Len(), dur)
		}
		fmt.Fprintf(w, "  events: %d  epochs: %d  spikes: %d\n", len(seg.Events), len(seg.Epochs), len(seg.Spikes))

		byUnit := seg.SpikeTrainsByUnit()
		ids := make([]int, 0, len(byUnit))
		for id := range byUnit {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			name := "(no unit)"
			if u := blk.UnitByID(id); u != nil {
				name = u.Name
			}
			spikes, withWaveforms := 0, 0
			for _, st := range byUnit[id] {
				spikes += st.Len()
				if st.HasWaveforms() {
					withWaveforms++
				}
			}
			fmt.Fprintf(w, "  %s: %d trains, %d spikes, %d with waveforms\n", name, len(byUnit[id]), spikes, withWaveforms)
		}
	}
}
