// Package conversions turns between the representations of spike data in
// package neo.
package conversions

import (
	"fmt"

	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/quantity"
)

// SpikesFromSpikeTrain creates one Spike per spike time of train. Unit,
// segment, sampling rate and left sweep are carried over. With
// includeWaveforms set, each spike gets its own slice of the train's waveform
// data; a train without waveforms then yields spikes with an empty waveform.
func SpikesFromSpikeTrain(train *neo.SpikeTrain, includeWaveforms bool) ([]*neo.Spike, error) {
	if train == nil {
		return nil, nil
	}
	if includeWaveforms && len(train.Waveforms) > 0 && len(train.Waveforms) != len(train.Times) {
		return nil, fmt.Errorf("spike train has %d waveforms for %d spikes", len(train.Waveforms), len(train.Times))
	}
	spikes := make([]*neo.Spike, 0, len(train.Times))
	for i, t := range train.Times {
		sp := &neo.Spike{
			Time:          quantity.Q(t, train.Units),
			SamplingRate:  train.SamplingRate,
			WaveformUnits: train.WaveformUnits,
			Unit:          train.Unit,
			Segment:       train.Segment,
		}
		if train.LeftSweep != nil {
			ls := *train.LeftSweep
			sp.LeftSweep = &ls
		}
		if includeWaveforms && len(train.Waveforms) > 0 {
			sp.Waveform = train.Waveforms[i]
		}
		spikes = append(spikes, sp)
	}
	return spikes, nil
}
