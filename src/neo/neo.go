// Package neo holds the electrophysiology data model consumed by the plot
// builder: blocks of segments carrying analog signals, events, epochs, spike
// trains and spikes, with recording channels and logical units referenced by
// pointer.
package neo

import (
	"fmt"

	"github.com/mczhu/spykeutils/src/quantity"
)

// Block is the root container of a recording.
type Block struct {
	Name     string
	Channels []*RecordingChannel
	Units    []*Unit
	Segments []*Segment
}

// Segment groups data recorded over a common time base (a trial).
type Segment struct {
	Name          string
	AnalogSignals []*AnalogSignal
	Events        []*Event
	Epochs        []*Epoch
	SpikeTrains   []*SpikeTrain
	Spikes        []*Spike
}

// RecordingChannel is the electrode a signal was recorded from.
type RecordingChannel struct {
	Index int
	Name  string
}

// Unit is a logical unit (putative neuron). ID is stable across a block and
// selects the unit's draw color.
type Unit struct {
	ID   int
	Name string
}

// AnalogSignal is a regularly sampled trace.
type AnalogSignal struct {
	Name         string
	Samples      []float64
	Units        quantity.Unit
	SamplingRate quantity.Quantity
	Channel      *RecordingChannel
	Segment      *Segment
}

// Len returns the number of samples.
func (s *AnalogSignal) Len() int { return len(s.Samples) }

// Duration returns the signal length as a time quantity in unit u.
func (s *AnalogSignal) Duration(u quantity.Unit) (quantity.Quantity, error) {
	p, err := quantity.Period(s.SamplingRate, u)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.Q(p.Value*float64(len(s.Samples)), u), nil
}

// Event is a labeled point in time.
type Event struct {
	Time  quantity.Quantity
	Label string
}

// Epoch is a labeled time interval starting at Time.
type Epoch struct {
	Time     quantity.Quantity
	Duration quantity.Quantity
	Label    string
}

// SpikeTrain is the ordered spike times of one unit. Waveforms, when present,
// is indexed [spike][channel][sample].
type SpikeTrain struct {
	Times         []float64
	Units         quantity.Unit
	Unit          *Unit
	SamplingRate  quantity.Quantity
	LeftSweep     *quantity.Quantity
	Waveforms     [][][]float64
	WaveformUnits quantity.Unit
	Segment       *Segment
}

// Len returns the number of spikes in the train.
func (st *SpikeTrain) Len() int { return len(st.Times) }

// HasWaveforms reports whether every spike carries waveform data.
func (st *SpikeTrain) HasWaveforms() bool {
	return len(st.Times) > 0 && len(st.Waveforms) == len(st.Times)
}

// Spike is a single detected waveform snippet. Waveform is indexed
// [channel][sample]. A nil LeftSweep means the sweep is unknown and treated as
// zero.
type Spike struct {
	Time          quantity.Quantity
	LeftSweep     *quantity.Quantity
	SamplingRate  quantity.Quantity
	Waveform      [][]float64
	WaveformUnits quantity.Unit
	Unit          *Unit
	Segment       *Segment
}

// WaveformLen returns the number of samples per channel.
func (s *Spike) WaveformLen() int {
	if len(s.Waveform) == 0 {
		return 0
	}
	return len(s.Waveform[0])
}

// ChannelWaveform returns the waveform samples of one channel.
func (s *Spike) ChannelWaveform(channel int) ([]float64, error) {
	if channel < 0 || channel >= len(s.Waveform) {
		return nil, fmt.Errorf("spike at %s has %d waveform channels, channel %d requested", s.Time, len(s.Waveform), channel)
	}
	return s.Waveform[channel], nil
}

// UnitByID returns the unit with the given ID or nil.
func (b *Block) UnitByID(id int) *Unit {
	for _, u := range b.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ChannelByIndex returns the recording channel with the given index or nil.
func (b *Block) ChannelByIndex(idx int) *RecordingChannel {
	for _, c := range b.Channels {
		if c.Index == idx {
			return c
		}
	}
	return nil
}

// SpikeTrainsByUnit groups the trains of a segment by unit ID; trains without
// a unit are grouped under -1.
func (s *Segment) SpikeTrainsByUnit() map[int][]*SpikeTrain {
	out := map[int][]*SpikeTrain{}
	for _, st := range s.SpikeTrains {
		id := -1
		if st.Unit != nil {
			id = st.Unit.ID
		}
		out[id] = append(out[id], st)
	}
	return out
}
