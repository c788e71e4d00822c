package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/floats"
)

// Extent is a closed interval on one axis.
type Extent struct {
	Min, Max float64
}

// Span returns Max - Min.
func (e Extent) Span() float64 { return e.Max - e.Min }

// Union returns the smallest extent covering e and o.
func (e Extent) Union(o Extent) Extent {
	return Extent{Min: math.Min(e.Min, o.Min), Max: math.Max(e.Max, o.Max)}
}

// DataRange returns the x and y extents of everything drawn on p. Markers,
// ranges and spike ticks only contribute to x. ok is false for an empty plot.
func DataRange(p *Plot) (x, y Extent, ok bool) {
	x = Extent{Min: math.Inf(1), Max: math.Inf(-1)}
	y = x
	grow := func(e *Extent, vs ...float64) {
		if len(vs) == 0 {
			return
		}
		e.Min = math.Min(e.Min, floats.Min(vs))
		e.Max = math.Max(e.Max, floats.Max(vs))
	}
	for _, c := range p.Curves {
		grow(&x, c.X...)
		grow(&y, c.Y...)
	}
	for _, m := range p.Markers {
		grow(&x, m.X)
	}
	for _, r := range p.Ranges {
		grow(&x, r.Start, r.Stop)
	}
	for _, t := range p.Ticks {
		grow(&x, t.Times...)
	}
	if math.IsInf(x.Min, 0) {
		return Extent{}, Extent{}, false
	}
	if math.IsInf(y.Min, 0) {
		y = Extent{Min: 0, Max: 1}
	}
	return x, y, true
}

// RenderOptions control raster rendering of a single plot.
type RenderOptions struct {
	Width, Height int
	// XRange and YRange override the data extents (zoom, pan, y sync).
	XRange *Extent
	YRange *Extent
	Dark   bool
	Title  string
}

var (
	darkBackground = drawing.Color{R: 18, G: 18, B: 18, A: 255}
	darkForeground = drawing.Color{R: 220, G: 220, B: 220, A: 255}
)

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// VisibleRanges returns the axis ranges Chart draws p with under opts.
func VisibleRanges(p *Plot, opts RenderOptions) (x, y Extent, ok bool) {
	x, y, ok = DataRange(p)
	if !ok {
		return x, y, false
	}
	if opts.XRange != nil {
		x = *opts.XRange
	}
	if x.Max <= x.Min {
		x.Max = x.Min + 1
	}
	if opts.YRange != nil {
		y = *opts.YRange
	} else {
		y.Min, y.Max = niceAxisBounds(y.Min, y.Max)
	}
	if y.Max <= y.Min {
		y.Max = y.Min + 1
	}
	return x, y, true
}

// Chart builds the go-chart description of p.
func Chart(p *Plot, opts RenderOptions) (chart.Chart, error) {
	xr, yr, ok := VisibleRanges(p, opts)
	if !ok {
		return chart.Chart{}, fmt.Errorf("plot %d has nothing to draw", p.Index)
	}

	fg := drawing.ColorBlack
	if opts.Dark {
		fg = darkForeground
	}
	series := []chart.Series{}
	for _, r := range p.Ranges {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{r.Start, r.Stop},
			YValues: []float64{yr.Max, yr.Max},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent, FillColor: toDrawing(r.Color)},
		})
	}
	for _, c := range p.Curves {
		if len(c.X) == 0 || len(c.X) != len(c.Y) {
			continue
		}
		col := toDrawing(c.Color)
		if opts.Dark && c.Color == black {
			col = darkForeground
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: c.X,
			YValues: c.Y,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: c.LineWidth},
		})
	}
	var notes []chart.Value2
	for _, m := range p.Markers {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{m.X, m.X},
			YValues: []float64{yr.Min, yr.Max},
			Style:   chart.Style{StrokeColor: toDrawing(m.Color), StrokeWidth: 1, StrokeDashArray: []float64{4, 3}},
		})
		if m.Label != "" {
			notes = append(notes, chart.Value2{XValue: m.X, YValue: yr.Max, Label: m.Label})
		}
	}
	for _, t := range p.Ticks {
		col := toDrawing(t.Color)
		if opts.Dark && t.Color == black {
			col = darkForeground
		}
		for _, v := range t.Times {
			series = append(series, chart.ContinuousSeries{
				XValues: []float64{v, v},
				YValues: []float64{yr.Min, yr.Max},
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 1},
			})
		}
	}
	if len(notes) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: notes})
	}

	axisStyle := chart.Style{FontColor: fg, StrokeColor: fg}
	ch := chart.Chart{
		Title:      opts.Title,
		TitleStyle: chart.Style{FontColor: fg},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:      p.AxisLabel(XBottom),
			NameStyle: chart.Style{FontColor: fg},
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: xr.Min, Max: xr.Max},
			Ticks:     niceTicks(xr.Min, xr.Max, 8),
		},
		YAxis: chart.YAxis{
			Name:      p.AxisLabel(YLeft),
			NameStyle: chart.Style{FontColor: fg},
			Style:     axisStyle,
			Range:     &chart.ContinuousRange{Min: yr.Min, Max: yr.Max},
			Ticks:     niceTicks(yr.Min, yr.Max, 6),
		},
		Series: series,
	}
	if opts.Dark {
		ch.Background.FillColor = darkBackground
		ch.Canvas = chart.Style{FillColor: darkBackground}
	}
	return ch, nil
}

// RenderPNG writes p as a PNG image to w.
func RenderPNG(w io.Writer, p *Plot, opts RenderOptions) error {
	ch, err := Chart(p, opts)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render plot %d: %w", p.Index, err)
	}
	return nil
}

// Image renders p into an image of opts.Width x opts.Height.
func Image(p *Plot, opts RenderOptions) (image.Image, error) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, p, opts); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode plot %d: %w", p.Index, err)
	}
	return img, nil
}

// Blank returns a dark placeholder image.
func Blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// DrawLegend paints one color swatch and name per entry in the top right
// corner of a copy of img.
func DrawLegend(img image.Image, entries []LegendEntry) image.Image {
	if img == nil || len(entries) == 0 {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	asc := face.Metrics().Ascent.Ceil()
	lineH := face.Metrics().Height.Ceil() + 4
	pad, swatch := 6, 10
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), Face: face}
	tw := 0
	for _, e := range entries {
		if w := dr.MeasureString(e.Name).Ceil(); w > tw {
			tw = w
		}
	}
	boxW := pad + swatch + pad + tw + pad
	boxH := pad + len(entries)*lineH + pad/2
	x0 := b.Max.X - boxW - 16
	y0 := b.Min.Y + 20
	draw.Draw(rgba, image.Rect(x0, y0, x0+boxW, y0+boxH), image.NewUniform(color.RGBA{A: 200}), image.Point{}, draw.Over)
	for i, e := range entries {
		top := y0 + pad + i*lineH
		sw := image.Rect(x0+pad, top+1, x0+pad+swatch, top+1+swatch)
		draw.Draw(rgba, sw, image.NewUniform(e.Color), image.Point{}, draw.Src)
		dr.Dot = fixed.Point26_6{X: fixed.I(x0 + pad + swatch + pad), Y: fixed.I(top + asc - 1)}
		dr.DrawString(e.Name)
	}
	return rgba
}

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	// only ticks inside the range; go-chart clips labels outside it anyway
	start := math.Ceil(min/bestStep) * bestStep
	ticks := []chart.Tick{}
	for i := 0; ; i++ {
		v := start + float64(i)*bestStep
		if v > max+bestStep*1e-9 || len(ticks) > n+2 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, bestStep)})
	}
	return ticks
}

// formatTick prints v with as many decimals as the tick step needs.
func formatTick(v, step float64) string {
	if math.Abs(v) < step*1e-6 {
		return "0"
	}
	dec := 0
	if step > 0 && step < 1 {
		dec = int(math.Ceil(-math.Log10(step) - 1e-9))
		if frac := step * math.Pow(10, float64(dec)); math.Abs(frac-math.Round(frac)) > 1e-6 {
			dec++
		}
	}
	s := strconv.FormatFloat(v, 'f', dec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
