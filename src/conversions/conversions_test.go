package conversions

import (
	"testing"

	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/quantity"
)

func TestSpikesFromSpikeTrainCarriesMetadata(t *testing.T) {
	unit := &neo.Unit{ID: 2, Name: "Unit 2"}
	seg := &neo.Segment{Name: "Trial"}
	ls := quantity.Q(0.2, quantity.Millisecond)
	train := &neo.SpikeTrain{
		Times:         []float64{10, 20},
		Units:         quantity.Millisecond,
		Unit:          unit,
		SamplingRate:  quantity.Q(20, quantity.Kilohertz),
		LeftSweep:     &ls,
		Waveforms:     [][][]float64{{{1, 2, 3}}, {{4, 5, 6}}},
		WaveformUnits: quantity.Microvolt,
		Segment:       seg,
	}
	spikes, err := SpikesFromSpikeTrain(train, true)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(spikes) != 2 {
		t.Fatalf("spikes=%d want 2", len(spikes))
	}
	sp := spikes[1]
	if sp.Unit != unit || sp.Segment != seg {
		t.Fatalf("references not carried over")
	}
	if sp.Time != quantity.Q(20, quantity.Millisecond) {
		t.Fatalf("time=%v want 20 ms", sp.Time)
	}
	if sp.SamplingRate != train.SamplingRate || sp.WaveformUnits != quantity.Microvolt {
		t.Fatalf("rate/waveform units not carried over: %+v", sp)
	}
	if sp.LeftSweep == nil || *sp.LeftSweep != ls || sp.LeftSweep == train.LeftSweep {
		t.Fatalf("left sweep should be an equal copy, got %v", sp.LeftSweep)
	}
	if sp.WaveformLen() != 3 || sp.Waveform[0][0] != 4 {
		t.Fatalf("waveform of second spike not selected: %v", sp.Waveform)
	}
}

func TestSpikesFromSpikeTrainWithoutWaveforms(t *testing.T) {
	train := &neo.SpikeTrain{Times: []float64{1}, Units: quantity.Second, Waveforms: [][][]float64{{{1}}}}
	spikes, err := SpikesFromSpikeTrain(train, false)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(spikes) != 1 || spikes[0].Waveform != nil || spikes[0].LeftSweep != nil {
		t.Fatalf("unexpected spike %+v", spikes[0])
	}
	if s, _ := SpikesFromSpikeTrain(nil, true); s != nil {
		t.Fatalf("nil train should convert to nothing")
	}
}

func TestSpikesFromSpikeTrainMismatch(t *testing.T) {
	train := &neo.SpikeTrain{Times: []float64{1, 2}, Units: quantity.Second, Waveforms: [][][]float64{{{1}}}}
	if _, err := SpikesFromSpikeTrain(train, true); err == nil {
		t.Fatalf("expected error for waveform count mismatch")
	}
}
