// Package plot builds toolkit-neutral plot windows from electrophysiology
// data and renders them, either as raster images through go-chart or as
// vector graphics through gonum/plot.
package plot

import (
	"image/color"
)

// Axis selects one of the two axes of a plot.
type Axis int

const (
	XBottom Axis = iota
	YLeft
)

// CurveKind distinguishes signal traces from overlaid spike waveforms.
type CurveKind int

const (
	SignalCurve CurveKind = iota
	WaveformCurve
)

// Curve is a polyline in plot coordinates.
type Curve struct {
	Name      string
	X, Y      []float64
	Color     color.RGBA
	LineWidth float64
	Kind      CurveKind
}

// Marker is a labeled vertical line at X (an event).
type Marker struct {
	X     float64
	Label string
	Color color.RGBA
}

// Range is a labeled shaded interval [Start, Stop] (an epoch).
type Range struct {
	Start, Stop float64
	Label       string
	Color       color.RGBA
}

// SpikeTicks is a set of vertical tick lines, one per spike time, for one
// spike train.
type SpikeTicks struct {
	Name  string
	Times []float64
	Color color.RGBA
}

// Plot is one curve plot of a window.
type Plot struct {
	Index   int
	Curves  []Curve
	Markers []Marker
	Ranges  []Range
	Ticks   []SpikeTicks

	XTitle, XUnit string
	YTitle, YUnit string
}

// AddCurve appends a curve; later curves draw on top of earlier ones.
func (p *Plot) AddCurve(c Curve) { p.Curves = append(p.Curves, c) }

// SetAxisTitle sets the title of axis a.
func (p *Plot) SetAxisTitle(a Axis, title string) {
	if a == XBottom {
		p.XTitle = title
	} else {
		p.YTitle = title
	}
}

// SetAxisUnit sets the unit label of axis a.
func (p *Plot) SetAxisUnit(a Axis, unit string) {
	if a == XBottom {
		p.XUnit = unit
	} else {
		p.YUnit = unit
	}
}

// AxisLabel returns "Title (unit)", just the unit, or just the title.
func (p *Plot) AxisLabel(a Axis) string {
	title, unit := p.XTitle, p.XUnit
	if a == YLeft {
		title, unit = p.YTitle, p.YUnit
	}
	switch {
	case title != "" && unit != "":
		return title + " (" + unit + ")"
	case unit != "":
		return unit
	default:
		return title
	}
}

// LegendEntry maps a logical unit to its draw color.
type LegendEntry struct {
	UnitID int
	Name   string
	Color  color.RGBA
}

// SyncOption links the axis of the listed plots. Enabled is the initial
// state of the option as offered to the user.
type SyncOption struct {
	Enabled bool
	Plots   []int
}

// Window is the output of a plot builder: titled plots with a legend and
// optional axis synchronization.
type Window struct {
	Title  string
	Plots  []*Plot
	Legend []LegendEntry
	// LegendToggle offers the user a switch to hide the legend.
	LegendToggle bool
	CurveTools   bool
	XSync        *SyncOption
	YSync        *SyncOption
}

// NewWindow returns an empty window.
func NewWindow(title string) *Window { return &Window{Title: title} }

// AddPlot places p at position index, growing the plot list as needed.
func (w *Window) AddPlot(p *Plot, index int) {
	for len(w.Plots) <= index {
		w.Plots = append(w.Plots, nil)
	}
	p.Index = index
	w.Plots[index] = p
}

// EnableCurveTools turns on zoom/pan/reset/export tooling for the window.
func (w *Window) EnableCurveTools() { w.CurveTools = true }

// AddXSynchronizationOption links the x axes of the given plots.
func (w *Window) AddXSynchronizationOption(enabled bool, plots []int) {
	w.XSync = &SyncOption{Enabled: enabled, Plots: append([]int(nil), plots...)}
}

// AddYSynchronizationOption links the y axes of the given plots.
func (w *Window) AddYSynchronizationOption(enabled bool, plots []int) {
	w.YSync = &SyncOption{Enabled: enabled, Plots: append([]int(nil), plots...)}
}
