package neo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mczhu/spykeutils/src/quantity"
)

// On-disk representation. Units and channels are referenced by id/index and
// resolved to pointers on load.

type quantityJSON struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type channelJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
}

type unitJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

type signalJSON struct {
	Name         string       `json:"name,omitempty"`
	Channel      *int         `json:"channel,omitempty"`
	Units        string       `json:"units"`
	SamplingRate quantityJSON `json:"sampling_rate"`
	Samples      []float64    `json:"samples"`
}

type eventJSON struct {
	Time  quantityJSON `json:"time"`
	Label string       `json:"label,omitempty"`
}

type epochJSON struct {
	Time     quantityJSON `json:"time"`
	Duration quantityJSON `json:"duration"`
	Label    string       `json:"label,omitempty"`
}

type spikeTrainJSON struct {
	Unit          *int          `json:"unit,omitempty"`
	Units         string        `json:"units"`
	Times         []float64     `json:"times"`
	SamplingRate  *quantityJSON `json:"sampling_rate,omitempty"`
	LeftSweep     *quantityJSON `json:"left_sweep,omitempty"`
	Waveforms     [][][]float64 `json:"waveforms,omitempty"`
	WaveformUnits string        `json:"waveform_units,omitempty"`
}

type spikeJSON struct {
	Unit          *int          `json:"unit,omitempty"`
	Time          quantityJSON  `json:"time"`
	LeftSweep     *quantityJSON `json:"left_sweep,omitempty"`
	SamplingRate  quantityJSON  `json:"sampling_rate"`
	Waveform      [][]float64   `json:"waveform"`
	WaveformUnits string        `json:"waveform_units,omitempty"`
}

type segmentJSON struct {
	Name          string           `json:"name,omitempty"`
	AnalogSignals []signalJSON     `json:"analog_signals,omitempty"`
	Events        []eventJSON      `json:"events,omitempty"`
	Epochs        []epochJSON      `json:"epochs,omitempty"`
	SpikeTrains   []spikeTrainJSON `json:"spike_trains,omitempty"`
	Spikes        []spikeJSON      `json:"spikes,omitempty"`
}

type blockJSON struct {
	Name     string        `json:"name,omitempty"`
	Channels []channelJSON `json:"channels,omitempty"`
	Units    []unitJSON    `json:"units,omitempty"`
	Segments []segmentJSON `json:"segments"`
}

// Load reads a recording from a JSON file.
func Load(path string) (*Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}

// Decode reads a recording from r and resolves all references.
func Decode(r io.Reader) (*Block, error) {
	var raw blockJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	blk := &Block{Name: raw.Name}
	for _, c := range raw.Channels {
		blk.Channels = append(blk.Channels, &RecordingChannel{Index: c.Index, Name: c.Name})
	}
	for _, u := range raw.Units {
		blk.Units = append(blk.Units, &Unit{ID: u.ID, Name: u.Name})
	}
	for si, rs := range raw.Segments {
		seg, err := decodeSegment(blk, rs)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", si, err)
		}
		blk.Segments = append(blk.Segments, seg)
	}
	return blk, nil
}

func parseQuantity(q quantityJSON) (quantity.Quantity, error) {
	u, err := quantity.Parse(q.Units)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return quantity.Q(q.Value, u), nil
}

func decodeSegment(blk *Block, rs segmentJSON) (*Segment, error) {
	seg := &Segment{Name: rs.Name}
	for i, s := range rs.AnalogSignals {
		u, err := quantity.Parse(s.Units)
		if err != nil {
			return nil, fmt.Errorf("analog signal %d: %w", i, err)
		}
		rate, err := parseQuantity(s.SamplingRate)
		if err != nil {
			return nil, fmt.Errorf("analog signal %d sampling rate: %w", i, err)
		}
		sig := &AnalogSignal{Name: s.Name, Samples: s.Samples, Units: u, SamplingRate: rate, Segment: seg}
		if s.Channel != nil {
			sig.Channel = blk.ChannelByIndex(*s.Channel)
			if sig.Channel == nil {
				return nil, fmt.Errorf("analog signal %d: unknown recording channel %d", i, *s.Channel)
			}
		}
		seg.AnalogSignals = append(seg.AnalogSignals, sig)
	}
	for i, e := range rs.Events {
		t, err := parseQuantity(e.Time)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		seg.Events = append(seg.Events, &Event{Time: t, Label: e.Label})
	}
	for i, e := range rs.Epochs {
		t, err := parseQuantity(e.Time)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", i, err)
		}
		d, err := parseQuantity(e.Duration)
		if err != nil {
			return nil, fmt.Errorf("epoch %d duration: %w", i, err)
		}
		seg.Epochs = append(seg.Epochs, &Epoch{Time: t, Duration: d, Label: e.Label})
	}
	for i, st := range rs.SpikeTrains {
		train, err := decodeSpikeTrain(blk, st)
		if err != nil {
			return nil, fmt.Errorf("spike train %d: %w", i, err)
		}
		train.Segment = seg
		seg.SpikeTrains = append(seg.SpikeTrains, train)
	}
	for i, sp := range rs.Spikes {
		spike, err := decodeSpike(blk, sp)
		if err != nil {
			return nil, fmt.Errorf("spike %d: %w", i, err)
		}
		spike.Segment = seg
		seg.Spikes = append(seg.Spikes, spike)
	}
	return seg, nil
}

func resolveUnit(blk *Block, id *int) (*Unit, error) {
	if id == nil {
		return nil, nil
	}
	u := blk.UnitByID(*id)
	if u == nil {
		return nil, fmt.Errorf("unknown unit %d", *id)
	}
	return u, nil
}

func decodeSpikeTrain(blk *Block, st spikeTrainJSON) (*SpikeTrain, error) {
	u, err := quantity.Parse(st.Units)
	if err != nil {
		return nil, err
	}
	train := &SpikeTrain{Times: st.Times, Units: u, Waveforms: st.Waveforms}
	if train.Unit, err = resolveUnit(blk, st.Unit); err != nil {
		return nil, err
	}
	if st.SamplingRate != nil {
		if train.SamplingRate, err = parseQuantity(*st.SamplingRate); err != nil {
			return nil, fmt.Errorf("sampling rate: %w", err)
		}
	}
	if st.LeftSweep != nil {
		ls, err := parseQuantity(*st.LeftSweep)
		if err != nil {
			return nil, fmt.Errorf("left sweep: %w", err)
		}
		train.LeftSweep = &ls
	}
	if len(st.Waveforms) > 0 {
		if len(st.Waveforms) != len(st.Times) {
			return nil, fmt.Errorf("%d waveforms for %d spikes", len(st.Waveforms), len(st.Times))
		}
		if train.WaveformUnits, err = parseWaveformUnits(st.WaveformUnits); err != nil {
			return nil, fmt.Errorf("waveform units: %w", err)
		}
	}
	return train, nil
}

func decodeSpike(blk *Block, sp spikeJSON) (*Spike, error) {
	t, err := parseQuantity(sp.Time)
	if err != nil {
		return nil, err
	}
	rate, err := parseQuantity(sp.SamplingRate)
	if err != nil {
		return nil, fmt.Errorf("sampling rate: %w", err)
	}
	wu, err := parseWaveformUnits(sp.WaveformUnits)
	if err != nil {
		return nil, fmt.Errorf("waveform units: %w", err)
	}
	spike := &Spike{Time: t, SamplingRate: rate, Waveform: sp.Waveform, WaveformUnits: wu}
	if spike.Unit, err = resolveUnit(blk, sp.Unit); err != nil {
		return nil, err
	}
	if sp.LeftSweep != nil {
		ls, err := parseQuantity(*sp.LeftSweep)
		if err != nil {
			return nil, fmt.Errorf("left sweep: %w", err)
		}
		spike.LeftSweep = &ls
	}
	return spike, nil
}

// parseWaveformUnits maps a missing waveform unit to the zero Unit, which
// plots in the unit of the signal it is drawn on.
func parseWaveformUnits(s string) (quantity.Unit, error) {
	if s == "" {
		return quantity.Unit{}, nil
	}
	return quantity.Parse(s)
}

func waveformUnitsSymbol(u quantity.Unit) string {
	switch {
	case u.IsZero():
		return ""
	case u == quantity.Unitless:
		return "dimensionless"
	}
	return u.Symbol
}

// Save writes blk as indented JSON to path.
func Save(path string, blk *Block) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, blk); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func toQuantityJSON(q quantity.Quantity) quantityJSON {
	return quantityJSON{Value: q.Value, Units: q.Unit.Symbol}
}

func unitRef(u *Unit) *int {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}

// Encode writes blk to w in the format Decode reads.
func Encode(w io.Writer, blk *Block) error {
	raw := blockJSON{Name: blk.Name}
	for _, c := range blk.Channels {
		raw.Channels = append(raw.Channels, channelJSON{Index: c.Index, Name: c.Name})
	}
	for _, u := range blk.Units {
		raw.Units = append(raw.Units, unitJSON{ID: u.ID, Name: u.Name})
	}
	for _, seg := range blk.Segments {
		rs := segmentJSON{Name: seg.Name}
		for _, s := range seg.AnalogSignals {
			sj := signalJSON{Name: s.Name, Units: s.Units.Symbol, SamplingRate: toQuantityJSON(s.SamplingRate), Samples: s.Samples}
			if s.Channel != nil {
				idx := s.Channel.Index
				sj.Channel = &idx
			}
			rs.AnalogSignals = append(rs.AnalogSignals, sj)
		}
		for _, e := range seg.Events {
			rs.Events = append(rs.Events, eventJSON{Time: toQuantityJSON(e.Time), Label: e.Label})
		}
		for _, e := range seg.Epochs {
			rs.Epochs = append(rs.Epochs, epochJSON{Time: toQuantityJSON(e.Time), Duration: toQuantityJSON(e.Duration), Label: e.Label})
		}
		for _, st := range seg.SpikeTrains {
			sj := spikeTrainJSON{Unit: unitRef(st.Unit), Units: st.Units.Symbol, Times: st.Times, Waveforms: st.Waveforms}
			if !st.SamplingRate.Unit.IsZero() {
				r := toQuantityJSON(st.SamplingRate)
				sj.SamplingRate = &r
			}
			if st.LeftSweep != nil {
				ls := toQuantityJSON(*st.LeftSweep)
				sj.LeftSweep = &ls
			}
			if len(st.Waveforms) > 0 {
				sj.WaveformUnits = waveformUnitsSymbol(st.WaveformUnits)
			}
			rs.SpikeTrains = append(rs.SpikeTrains, sj)
		}
		for _, sp := range seg.Spikes {
			sj := spikeJSON{Unit: unitRef(sp.Unit), Time: toQuantityJSON(sp.Time), SamplingRate: toQuantityJSON(sp.SamplingRate), Waveform: sp.Waveform, WaveformUnits: waveformUnitsSymbol(sp.WaveformUnits)}
			if sp.LeftSweep != nil {
				ls := toQuantityJSON(*sp.LeftSweep)
				sj.LeftSweep = &ls
			}
			rs.Spikes = append(rs.Spikes, sj)
		}
		raw.Segments = append(raw.Segments, rs)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
