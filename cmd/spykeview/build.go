package main

import (
	"fmt"

	"github.com/mczhu/spykeutils/src/logging"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/plot"
	"github.com/mczhu/spykeutils/src/progress"
	"github.com/mczhu/spykeutils/src/quantity"
)

// viewConfig is the part of the viewer state that shapes the plot window.
type viewConfig struct {
	TimeUnit  string // "s", "ms", "us", "min"
	YUnit     string // empty keeps the native signal units
	Subplots  bool
	Waveforms bool
}

var timeUnitOptions = []string{"s", "ms", "us", "min"}

// segmentAt returns segment idx of blk or an error naming the valid range.
func segmentAt(blk *neo.Block, idx int) (*neo.Segment, error) {
	if blk == nil {
		return nil, fmt.Errorf("no recording loaded")
	}
	if idx < 0 || idx >= len(blk.Segments) {
		return nil, fmt.Errorf("segment %d out of range (recording has %d)", idx, len(blk.Segments))
	}
	return blk.Segments[idx], nil
}

// buildWindow turns one segment into a plot window.
func buildWindow(blk *neo.Block, segIdx int, cfg viewConfig, prog progress.Indicator) (*plot.Window, error) {
	seg, err := segmentAt(blk, segIdx)
	if err != nil {
		return nil, err
	}
	tu, err := quantity.Parse(cfg.TimeUnit)
	if err != nil {
		return nil, fmt.Errorf("time unit: %w", err)
	}
	opts := plot.Options{
		Events:      seg.Events,
		Epochs:      seg.Epochs,
		SpikeTrains: seg.SpikeTrains,
		Spikes:      seg.Spikes,
		UseSubplots: cfg.Subplots,
		TimeUnit:    tu,
		Progress:    prog,
	}
	if cfg.YUnit != "" {
		yu, err := quantity.Parse(cfg.YUnit)
		if err != nil {
			return nil, fmt.Errorf("y unit: %w", err)
		}
		opts.YUnit = &yu
	}
	if cfg.Waveforms {
		opts.SpikeTrainWaveforms = true
		for _, st := range seg.SpikeTrains {
			if !st.HasWaveforms() {
				logging.Warnf("[viewer] segment %q: spike train without waveforms, drawing spike times instead", seg.Name)
				opts.SpikeTrainWaveforms = false
				break
			}
		}
	}
	if prog != nil {
		prog.Begin(fmt.Sprintf("Plotting %s", seg.Name))
	}
	return plot.Signals(seg.AnalogSignals, opts)
}

// segmentNames lists segments for the segment selector.
func segmentNames(blk *neo.Block) []string {
	if blk == nil {
		return nil
	}
	out := make([]string, len(blk.Segments))
	for i, s := range blk.Segments {
		if s.Name != "" {
			out[i] = fmt.Sprintf("%d: %s", i, s.Name)
		} else {
			out[i] = fmt.Sprintf("%d", i)
		}
	}
	return out
}
