package plot

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/mczhu/spykeutils/src/conversions"
	"github.com/mczhu/spykeutils/src/logging"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/progress"
	"github.com/mczhu/spykeutils/src/quantity"
)

// ErrNoSignalData is returned by Signals when called without signals.
var ErrNoSignalData = errors.New("cannot create signal plot: no signal data provided")

const waveformLineWidth = 2

// Options are the optional inputs of Signals. The zero value plots the
// signals alone, stacked, against seconds.
type Options struct {
	Events      []*neo.Event
	Epochs      []*neo.Epoch
	SpikeTrains []*neo.SpikeTrain
	Spikes      []*neo.Spike

	// SpikeTrainWaveforms draws the waveforms carried by SpikeTrains instead
	// of vertical ticks at the spike times.
	SpikeTrainWaveforms bool
	// UseSubplots creates one plot per signal instead of stacking them.
	UseSubplots bool

	TimeUnit quantity.Unit
	// YUnit, when set, rescales signal and waveform values into this unit.
	YUnit *quantity.Unit

	Progress progress.Indicator
	Colors   *ColorMap
}

// Signals builds a window showing signals with the given overlays. All signals
// are expected to share the sampling rate and length of the first one, from
// which the x axis is derived. Signals must be called from the goroutine that
// owns the window it hands the result to.
func Signals(signals []*neo.AnalogSignal, opts Options) (*Window, error) {
	prog := opts.Progress
	if prog == nil {
		prog = progress.None{}
	}
	// every return, error or not, ends the progress
	defer prog.Done()
	if len(signals) == 0 {
		return nil, ErrNoSignalData
	}
	defer logging.TimeTrack(time.Now(), "plot.Signals")

	b := &signalBuilder{
		signals: signals,
		opts:    opts,
		prog:    prog,
		colors:  opts.Colors,
		xUnit:   opts.TimeUnit,
	}
	if b.colors == nil {
		b.colors = DefaultColorMap()
	}
	if b.xUnit.IsZero() {
		b.xUnit = quantity.Second
	}
	if b.xUnit.Dimension != quantity.Time {
		return nil, fmt.Errorf("time unit %s: %w", b.xUnit, quantity.ErrIncompatibleUnits)
	}

	if opts.SpikeTrainWaveforms {
		for i, st := range opts.SpikeTrains {
			spikes, err := conversions.SpikesFromSpikeTrain(st, true)
			if err != nil {
				return nil, fmt.Errorf("spike train %d: %w", i, err)
			}
			b.drawSpikes = append(b.drawSpikes, spikes...)
		}
	} else {
		b.drawSpikes = opts.Spikes
	}

	b.prog.SetTicks((len(b.drawSpikes) + len(opts.Spikes) + 1) * len(signals))

	return b.build()
}

type signalBuilder struct {
	signals    []*neo.AnalogSignal
	opts       Options
	prog       progress.Indicator
	colors     *ColorMap
	xUnit      quantity.Unit
	drawSpikes []*neo.Spike
	x          []float64
}

func (b *signalBuilder) build() (*Window, error) {
	var err error
	if b.x, err = timeAxis(b.signals[0], b.xUnit); err != nil {
		return nil, err
	}
	win := NewWindow(signalTitle(b.signals))
	logging.Debugf("[plot] %q: %d signals, %d waveforms, subplots=%v", win.Title, len(b.signals), len(b.drawSpikes)+len(b.opts.Spikes), b.opts.UseSubplots)

	if b.opts.UseSubplots {
		err = b.split(win)
	} else {
		err = b.stacked(win)
	}
	if err != nil {
		return nil, err
	}

	win.EnableCurveTools()
	units := make([]*neo.Unit, 0, len(b.opts.SpikeTrains)+len(b.opts.Spikes))
	for _, st := range b.opts.SpikeTrains {
		units = append(units, st.Unit)
	}
	for _, sp := range b.opts.Spikes {
		units = append(units, sp.Unit)
	}
	makeWindowLegend(win, units, b.colors, false)

	if b.opts.UseSubplots {
		idx := make([]int, len(b.signals))
		for i := range idx {
			idx[i] = i
		}
		win.AddXSynchronizationOption(true, idx)
		win.AddYSynchronizationOption(false, idx)
	}
	return win, nil
}

// signalTitle appends the recording channel and segment names when all
// signals share the same named one.
func signalTitle(signals []*neo.AnalogSignal) string {
	title := "Analog Signal"
	ch, seg := signals[0].Channel, signals[0].Segment
	for _, s := range signals[1:] {
		if s.Channel != ch {
			ch = nil
		}
		if s.Segment != seg {
			seg = nil
		}
	}
	if ch != nil && ch.Name != "" {
		title += " | Recording Channel: " + ch.Name
	}
	if seg != nil && seg.Name != "" {
		title += " | Segment: " + seg.Name
	}
	return title
}

// timeAxis returns index * sampling period of s, in unit u.
func timeAxis(s *neo.AnalogSignal, u quantity.Unit) ([]float64, error) {
	period, err := quantity.Period(s.SamplingRate, u)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	x := make([]float64, s.Len())
	for i := range x {
		x[i] = float64(i) * period.Value
	}
	return x, nil
}

// values returns the samples of signal c in unit u, checked against the
// length of the x axis.
func (b *signalBuilder) values(c int, u quantity.Unit) ([]float64, error) {
	s := b.signals[c]
	if s.Len() != len(b.x) {
		return nil, fmt.Errorf("signal %d has %d samples, x axis has %d", c, s.Len(), len(b.x))
	}
	v, err := quantity.RescaleAll(s.Samples, s.Units, u)
	if err != nil {
		return nil, fmt.Errorf("signal %d: %w", c, err)
	}
	return v, nil
}

func (b *signalBuilder) plotUnit(c int) quantity.Unit {
	if b.opts.YUnit != nil {
		return *b.opts.YUnit
	}
	return b.signals[c].Units
}

func (b *signalBuilder) signalCurve(c int, ys []float64) Curve {
	s := b.signals[c]
	name := s.Name
	if name == "" && s.Channel != nil {
		name = s.Channel.Name
	}
	return Curve{Name: name, X: b.x, Y: ys, Color: black, LineWidth: 1, Kind: SignalCurve}
}

func (b *signalBuilder) addTrainTicks(p *Plot) error {
	if b.opts.SpikeTrainWaveforms {
		return nil
	}
	for i, st := range b.opts.SpikeTrains {
		if err := addSpikes(p, st, b.colors.Color(st.Unit), b.xUnit); err != nil {
			return fmt.Errorf("spike train %d: %w", i, err)
		}
	}
	return nil
}

func (b *signalBuilder) split(win *Window) error {
	var p *Plot
	for c := range b.signals {
		p = &Plot{}
		yUnit := b.plotUnit(c)
		ys, err := b.values(c, yUnit)
		if err != nil {
			return err
		}
		if err := addEpochs(p, b.opts.Epochs, b.xUnit); err != nil {
			return err
		}
		p.AddCurve(b.signalCurve(c, ys))
		if err := addEvents(p, b.opts.Events, b.xUnit); err != nil {
			return err
		}
		if err := b.addSpikeWaveforms(p, b.opts.Spikes, c, 0, yUnit); err != nil {
			return err
		}
		if err := b.addSpikeWaveforms(p, b.drawSpikes, c, 0, yUnit); err != nil {
			return err
		}
		if err := b.addTrainTicks(p); err != nil {
			return err
		}
		win.AddPlot(p, c)
		p.SetAxisUnit(YLeft, yUnit.String())
		b.prog.Step(1)
	}
	p.SetAxisTitle(XBottom, "Time")
	p.SetAxisUnit(XBottom, b.xUnit.String())
	return nil
}

func (b *signalBuilder) stacked(win *Window) error {
	yUnit := b.plotUnit(0)
	n := len(b.signals)
	channels := make([]int, n)
	vals := make([][]float64, n)
	for i := range channels {
		c := n - 1 - i
		channels[i] = c
		v, err := b.values(c, yUnit)
		if err != nil {
			return err
		}
		if len(v) == 0 {
			return fmt.Errorf("signal %d has no samples", c)
		}
		vals[c] = v
	}

	p := &Plot{}
	if err := addEpochs(p, b.opts.Epochs, b.xUnit); err != nil {
		return err
	}

	maxOffset := 0.0
	for i := 1; i < n; i++ {
		cur := floats.Max(vals[channels[i-1]]) - floats.Min(vals[channels[i]])
		if cur > maxOffset {
			maxOffset = cur
		}
	}
	offset := -floats.Min(vals[channels[0]])
	logging.Debugf("[plot] stacked offsets: start=%g step=%g %s", offset, maxOffset, yUnit)

	for _, c := range channels {
		ys := make([]float64, len(vals[c]))
		copy(ys, vals[c])
		floats.AddConst(offset, ys)
		p.AddCurve(b.signalCurve(c, ys))
		if err := b.addSpikeWaveforms(p, b.opts.Spikes, c, offset, yUnit); err != nil {
			return err
		}
		if err := b.addSpikeWaveforms(p, b.drawSpikes, c, offset, yUnit); err != nil {
			return err
		}
		offset += maxOffset
		b.prog.Step(1)
	}

	if err := addEvents(p, b.opts.Events, b.xUnit); err != nil {
		return err
	}
	if err := b.addTrainTicks(p); err != nil {
		return err
	}
	win.AddPlot(p, 0)
	p.SetAxisTitle(XBottom, "Time")
	p.SetAxisUnit(XBottom, b.xUnit.String())
	p.SetAxisUnit(YLeft, yUnit.String())
	return nil
}

// addSpikeWaveforms overlays the given channel of each spike's waveform,
// shifted up by offset. The window of a spike starts at time minus its left
// sweep and holds one sample per sampling period.
func (b *signalBuilder) addSpikeWaveforms(p *Plot, spikes []*neo.Spike, channel int, offset float64, yUnit quantity.Unit) error {
	for i, sp := range spikes {
		wf, err := sp.ChannelWaveform(channel)
		if err != nil {
			return fmt.Errorf("spike %d: %w", i, err)
		}
		x, err := waveformWindow(sp, len(wf), b.xUnit)
		if err != nil {
			return fmt.Errorf("spike %d: %w", i, err)
		}
		from := sp.WaveformUnits
		if from.IsZero() {
			from = yUnit
		}
		ys, err := quantity.RescaleAll(wf, from, yUnit)
		if err != nil {
			return fmt.Errorf("spike %d waveform: %w", i, err)
		}
		floats.AddConst(offset, ys)
		p.AddCurve(Curve{X: x, Y: ys, Color: b.colors.Color(sp.Unit), LineWidth: waveformLineWidth, Kind: WaveformCurve})
		b.prog.Step(1)
	}
	return nil
}

// waveformWindow returns the x coordinates of an n-sample waveform of sp in
// unit xUnit, starting at sp.Time - leftSweep.
func waveformWindow(sp *neo.Spike, n int, xUnit quantity.Unit) ([]float64, error) {
	t, err := sp.Time.In(xUnit)
	if err != nil {
		return nil, err
	}
	var lsweep float64
	if sp.LeftSweep != nil {
		if lsweep, err = sp.LeftSweep.In(xUnit); err != nil {
			return nil, fmt.Errorf("left sweep: %w", err)
		}
	}
	period, err := quantity.Period(sp.SamplingRate, xUnit)
	if err != nil {
		return nil, err
	}
	// TODO: confirm whether the left sweep should be added instead; recordings
	// with a known pre-trigger window would settle it.
	start := t - lsweep
	x := make([]float64, n)
	for i := range x {
		x[i] = start + float64(i)*period.Value
	}
	return x, nil
}
