package neo

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mczhu/spykeutils/src/quantity"
)

// DemoConfig controls the synthetic recording produced by Demo.
type DemoConfig struct {
	Channels   int
	Units      int
	Segments   int
	Duration   float64 // seconds
	RateHz     float64
	SpikeRate  float64 // spikes per second per unit
	WaveformMs float64
	Seed       int64
}

// DefaultDemoConfig is what the viewer's -demo flag loads.
var DefaultDemoConfig = DemoConfig{
	Channels:   4,
	Units:      2,
	Segments:   2,
	Duration:   2,
	RateHz:     1000,
	SpikeRate:  4,
	WaveformMs: 3,
	Seed:       1,
}

// Demo builds a deterministic tetrode-like recording: slow oscillations plus
// noise on every channel, spikes of each unit added into the traces, stimulus
// events and a response epoch per segment.
func Demo(cfg DemoConfig) *Block {
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.Segments <= 0 {
		cfg.Segments = 1
	}
	if cfg.RateHz <= 0 {
		cfg.RateHz = DefaultDemoConfig.RateHz
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	blk := &Block{Name: "Demo recording"}
	for c := 0; c < cfg.Channels; c++ {
		blk.Channels = append(blk.Channels, &RecordingChannel{Index: c, Name: fmt.Sprintf("Channel %d", c+1)})
	}
	for u := 0; u < cfg.Units; u++ {
		blk.Units = append(blk.Units, &Unit{ID: u + 1, Name: fmt.Sprintf("Unit %d", u+1)})
	}

	n := int(cfg.Duration * cfg.RateHz)
	wfLen := int(cfg.WaveformMs * cfg.RateHz / 1000)
	if wfLen < 2 {
		wfLen = 2
	}
	leftSweep := quantity.Q(float64(wfLen/3)/cfg.RateHz*1000, quantity.Millisecond)
	rate := quantity.Q(cfg.RateHz/1000, quantity.Kilohertz)

	for s := 0; s < cfg.Segments; s++ {
		seg := &Segment{Name: fmt.Sprintf("Trial %d", s+1)}
		traces := make([][]float64, cfg.Channels)
		for c := range traces {
			phase := rng.Float64() * 2 * math.Pi
			freq := 4 + float64(c)
			tr := make([]float64, n)
			for i := range tr {
				t := float64(i) / cfg.RateHz
				tr[i] = 0.05*math.Sin(2*math.Pi*freq*t+phase) + 0.01*rng.NormFloat64()
			}
			traces[c] = tr
		}

		for _, unit := range blk.Units {
			shape := spikeShape(wfLen, unit.ID)
			gains := make([]float64, cfg.Channels)
			for c := range gains {
				gains[c] = 0.2 + 0.8*rng.Float64()
			}
			train := &SpikeTrain{
				Units:         quantity.Second,
				Unit:          unit,
				SamplingRate:  rate,
				LeftSweep:     &leftSweep,
				WaveformUnits: quantity.Millivolt,
				Segment:       seg,
			}
			expected := int(cfg.SpikeRate * cfg.Duration)
			t := 0.0
			for k := 0; k < expected*3 && len(train.Times) < expected; k++ {
				t += rng.ExpFloat64() / cfg.SpikeRate
				start := int(t*cfg.RateHz) - wfLen/3
				if start < 0 || start+wfLen > n {
					continue
				}
				wf := make([][]float64, cfg.Channels)
				for c := range wf {
					wf[c] = make([]float64, wfLen)
					for i := range wf[c] {
						v := gains[c] * shape[i]
						wf[c][i] = v + traces[c][start+i]
						traces[c][start+i] += v
					}
				}
				train.Times = append(train.Times, t)
				train.Waveforms = append(train.Waveforms, wf)
			}
			seg.SpikeTrains = append(seg.SpikeTrains, train)
		}

		for c, tr := range traces {
			seg.AnalogSignals = append(seg.AnalogSignals, &AnalogSignal{
				Name:         fmt.Sprintf("LFP %d", c+1),
				Samples:      tr,
				Units:        quantity.Millivolt,
				SamplingRate: rate,
				Channel:      blk.Channels[c],
				Segment:      seg,
			})
		}

		stim := cfg.Duration / 4
		seg.Events = append(seg.Events,
			&Event{Time: quantity.Q(stim, quantity.Second), Label: "stimulus on"},
			&Event{Time: quantity.Q(3*stim, quantity.Second), Label: "stimulus off"},
		)
		seg.Epochs = append(seg.Epochs, &Epoch{
			Time:     quantity.Q(stim*1000, quantity.Millisecond),
			Duration: quantity.Q(stim*1000, quantity.Millisecond),
			Label:    "response",
		})
		blk.Segments = append(blk.Segments, seg)
	}
	return blk
}

// spikeShape is a biphasic action potential template in mV, scaled per unit.
func spikeShape(n, unitID int) []float64 {
	out := make([]float64, n)
	amp := 0.3 + 0.15*float64(unitID)
	peak := float64(n) / 3
	for i := range out {
		x := float64(i) - peak
		out[i] = -amp*math.Exp(-x*x/2) + 0.4*amp*math.Exp(-(x-3)*(x-3)/8)
	}
	return out
}
