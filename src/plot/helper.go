package plot

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/quantity"
)

var (
	eventColor = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	epochColor = color.RGBA{R: 90, G: 140, B: 200, A: 60}
	black      = color.RGBA{A: 255}
)

// defaultPalette is a 10-color qualitative palette.
var defaultPalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

// ColorMap assigns draw colors to logical units by ID.
type ColorMap struct {
	Palette []color.RGBA
	NoUnit  color.RGBA
}

// DefaultColorMap returns a fresh map over the default palette.
func DefaultColorMap() *ColorMap {
	return &ColorMap{Palette: append([]color.RGBA(nil), defaultPalette...), NoUnit: black}
}

// Color returns the color of unit u. A nil unit gets NoUnit.
func (m *ColorMap) Color(u *neo.Unit) color.RGBA {
	if u == nil || len(m.Palette) == 0 {
		return m.NoUnit
	}
	n := len(m.Palette)
	return m.Palette[((u.ID%n)+n)%n]
}

func addEpochs(p *Plot, epochs []*neo.Epoch, xUnit quantity.Unit) error {
	for i, ep := range epochs {
		start, err := ep.Time.In(xUnit)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", i, err)
		}
		d, err := ep.Duration.In(xUnit)
		if err != nil {
			return fmt.Errorf("epoch %d duration: %w", i, err)
		}
		p.Ranges = append(p.Ranges, Range{Start: start, Stop: start + d, Label: ep.Label, Color: epochColor})
	}
	return nil
}

func addEvents(p *Plot, events []*neo.Event, xUnit quantity.Unit) error {
	for i, ev := range events {
		t, err := ev.Time.In(xUnit)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		p.Markers = append(p.Markers, Marker{X: t, Label: ev.Label, Color: eventColor})
	}
	return nil
}

func addSpikes(p *Plot, train *neo.SpikeTrain, c color.RGBA, xUnit quantity.Unit) error {
	times, err := quantity.RescaleAll(train.Times, train.Units, xUnit)
	if err != nil {
		return fmt.Errorf("spike train: %w", err)
	}
	name := ""
	if train.Unit != nil {
		name = train.Unit.Name
	}
	p.Ticks = append(p.Ticks, SpikeTicks{Name: name, Times: times, Color: c})
	return nil
}

// makeWindowLegend adds one legend entry per distinct non-nil unit, ordered
// by unit ID.
func makeWindowLegend(win *Window, units []*neo.Unit, colors *ColorMap, showOption bool) {
	seen := map[int]bool{}
	var entries []LegendEntry
	for _, u := range units {
		if u == nil || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		name := u.Name
		if name == "" {
			name = fmt.Sprintf("Unit %d", u.ID)
		}
		entries = append(entries, LegendEntry{UnitID: u.ID, Name: name, Color: colors.Color(u)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UnitID < entries[j].UnitID })
	win.Legend = entries
	win.LegendToggle = showOption
}
