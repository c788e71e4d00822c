package neo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mczhu/spykeutils/src/quantity"
)

const sampleRecording = `{
 "name": "bench",
 "channels": [{"index": 0, "name": "Tetrode 1"}, {"index": 1, "name": "Tetrode 2"}],
 "units": [{"id": 7, "name": "Unit A"}],
 "segments": [{
   "name": "Trial 1",
   "analog_signals": [
     {"channel": 0, "units": "mV", "sampling_rate": {"value": 1, "units": "kHz"}, "samples": [0, 1, 2, 3]},
     {"channel": 1, "units": "uV", "sampling_rate": {"value": 1000, "units": "Hz"}, "samples": [5, 6]}
   ],
   "events": [{"time": {"value": 0.5, "units": "ms"}, "label": "stim"}],
   "epochs": [{"time": {"value": 1, "units": "ms"}, "duration": {"value": 2, "units": "ms"}, "label": "resp"}],
   "spike_trains": [{"unit": 7, "units": "s", "times": [0.001, 0.002],
     "sampling_rate": {"value": 10, "units": "kHz"}, "left_sweep": {"value": 0.1, "units": "ms"},
     "waveforms": [[[1, 2, 3]], [[4, 5, 6]]], "waveform_units": "mV"}],
   "spikes": [{"time": {"value": 3, "units": "ms"}, "sampling_rate": {"value": 10, "units": "kHz"},
     "waveform": [[1, 2]], "waveform_units": "mV"}]
 }]
}`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rec.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadResolvesReferences(t *testing.T) {
	blk, err := Load(writeFile(t, sampleRecording))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(blk.Segments) != 1 {
		t.Fatalf("segments=%d want 1", len(blk.Segments))
	}
	seg := blk.Segments[0]
	if len(seg.AnalogSignals) != 2 {
		t.Fatalf("signals=%d want 2", len(seg.AnalogSignals))
	}
	sig := seg.AnalogSignals[0]
	if sig.Channel != blk.Channels[0] || sig.Segment != seg {
		t.Fatalf("signal references not resolved: %+v", sig)
	}
	if sig.Units != quantity.Millivolt || seg.AnalogSignals[1].Units != quantity.Microvolt {
		t.Fatalf("unexpected signal units %v / %v", sig.Units, seg.AnalogSignals[1].Units)
	}
	d, err := sig.Duration(quantity.Millisecond)
	if err != nil || d.Value < 3.999 || d.Value > 4.001 {
		t.Fatalf("duration=%v err=%v want 4 ms", d, err)
	}
	st := seg.SpikeTrains[0]
	if st.Unit != blk.Units[0] || st.Segment != seg {
		t.Fatalf("train references not resolved")
	}
	if !st.HasWaveforms() || st.LeftSweep == nil || st.LeftSweep.Unit != quantity.Millisecond {
		t.Fatalf("train waveform metadata missing: %+v", st)
	}
	sp := seg.Spikes[0]
	if sp.Unit != nil || sp.LeftSweep != nil || sp.WaveformLen() != 2 {
		t.Fatalf("unexpected spike %+v", sp)
	}
	if seg.Events[0].Label != "stim" || seg.Epochs[0].Duration.Value != 2 {
		t.Fatalf("events/epochs not decoded")
	}
}

func TestLoadUnknownReferencesFail(t *testing.T) {
	cases := map[string]string{
		"channel": `{"segments":[{"analog_signals":[{"channel":3,"units":"mV","sampling_rate":{"value":1,"units":"kHz"},"samples":[1]}]}]}`,
		"unit":    `{"segments":[{"spike_trains":[{"unit":2,"units":"s","times":[1]}]}]}`,
		"symbol":  `{"segments":[{"events":[{"time":{"value":1,"units":"parsec"}}]}]}`,
	}
	for name, body := range cases {
		_, err := Load(writeFile(t, body))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !strings.Contains(err.Error(), "rec.json") {
			t.Fatalf("%s: error does not name the file: %v", name, err)
		}
	}
}

func TestLoadWaveformCountMismatch(t *testing.T) {
	body := `{"units":[{"id":1}],"segments":[{"spike_trains":[{"unit":1,"units":"s","times":[1,2],"waveforms":[[[1]]],"waveform_units":"mV"}]}]}`
	if _, err := Load(writeFile(t, body)); err == nil {
		t.Fatalf("expected waveform count mismatch error")
	}
}

func TestSaveLoadDemo(t *testing.T) {
	blk := Demo(DefaultDemoConfig)
	p := filepath.Join(t.TempDir(), "demo.json")
	if err := Save(p, blk); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Segments) != len(blk.Segments) || len(got.Units) != len(blk.Units) {
		t.Fatalf("structure changed across save/load")
	}
	a, b := blk.Segments[1], got.Segments[1]
	if len(b.SpikeTrains) != len(a.SpikeTrains) || b.SpikeTrains[1].Unit.ID != a.SpikeTrains[1].Unit.ID {
		t.Fatalf("spike trains not preserved")
	}
	if b.AnalogSignals[2].Channel.Name != "Channel 3" {
		t.Fatalf("channel reference lost: %+v", b.AnalogSignals[2].Channel)
	}
}

func TestDemoDeterministic(t *testing.T) {
	a := Demo(DefaultDemoConfig)
	b := Demo(DefaultDemoConfig)
	sa, sb := a.Segments[0].AnalogSignals[0].Samples, b.Segments[0].AnalogSignals[0].Samples
	if len(sa) != 2000 {
		t.Fatalf("samples=%d want 2000", len(sa))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
	}
	for _, st := range a.Segments[0].SpikeTrains {
		if !st.HasWaveforms() {
			t.Fatalf("demo train for unit %d has no waveforms", st.Unit.ID)
		}
	}
}

func TestChannelWaveformOutOfRange(t *testing.T) {
	sp := &Spike{Time: quantity.Q(1, quantity.Second), Waveform: [][]float64{{1, 2}}}
	if _, err := sp.ChannelWaveform(1); err == nil {
		t.Fatalf("expected error for missing channel")
	}
	if w, err := sp.ChannelWaveform(0); err != nil || len(w) != 2 {
		t.Fatalf("channel 0: %v %v", w, err)
	}
}

func TestSpikeTrainsByUnit(t *testing.T) {
	u := &Unit{ID: 3}
	seg := &Segment{SpikeTrains: []*SpikeTrain{{Unit: u}, {}, {Unit: u}}}
	g := seg.SpikeTrainsByUnit()
	if len(g[3]) != 2 || len(g[-1]) != 1 {
		t.Fatalf("unexpected grouping %v", g)
	}
}

func TestWaveformUnitsOptional(t *testing.T) {
	const rec = `{"units": [{"id": 1}], "segments": [{
	 "spike_trains": [{"unit": 1, "units": "s", "times": [0.1], "waveforms": [[[1, 2]]]}],
	 "spikes": [
	   {"time": {"value": 1, "units": "ms"}, "sampling_rate": {"value": 1, "units": "kHz"}, "waveform": [[1]]},
	   {"time": {"value": 2, "units": "ms"}, "sampling_rate": {"value": 1, "units": "kHz"}, "waveform": [[1]], "waveform_units": "dimensionless"},
	   {"time": {"value": 3, "units": "ms"}, "sampling_rate": {"value": 1, "units": "kHz"}, "waveform": [[1]], "waveform_units": "uV"}
	 ]}]}`
	blk, err := Decode(strings.NewReader(rec))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	check := func(blk *Block, stage string) {
		t.Helper()
		seg := blk.Segments[0]
		if u := seg.SpikeTrains[0].WaveformUnits; !u.IsZero() {
			t.Fatalf("%s: train without waveform_units decoded as %+v", stage, u)
		}
		want := []quantity.Unit{{}, quantity.Unitless, quantity.Microvolt}
		for i, w := range want {
			if got := seg.Spikes[i].WaveformUnits; got != w {
				t.Fatalf("%s: spike %d waveform units %+v want %+v", stage, i, got, w)
			}
		}
	}
	check(blk, "decode")

	var buf bytes.Buffer
	if err := Encode(&buf, blk); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(buf.String(), `"waveform_units": ""`) {
		t.Fatalf("empty waveform_units written:\n%s", buf.String())
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode encoded: %v", err)
	}
	check(again, "round trip")
}
