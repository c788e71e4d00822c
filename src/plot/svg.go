package plot

import (
	"errors"
	"fmt"
	"io"
	"os"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

func xys(x, y []float64) plotter.XYs {
	out := make(plotter.XYs, len(x))
	for i := range x {
		out[i].X = x[i]
		out[i].Y = y[i]
	}
	return out
}

// vectorPlot converts p into a gonum plot.
func vectorPlot(p *Plot) (*gonumplot.Plot, error) {
	gp := gonumplot.New()
	gp.X.Label.Text = p.AxisLabel(XBottom)
	gp.Y.Label.Text = p.AxisLabel(YLeft)
	xr, yr, ok := DataRange(p)
	if !ok {
		return gp, nil
	}
	yr.Min, yr.Max = niceAxisBounds(yr.Min, yr.Max)
	gp.X.Min, gp.X.Max = xr.Min, xr.Max
	gp.Y.Min, gp.Y.Max = yr.Min, yr.Max

	for _, r := range p.Ranges {
		poly, err := plotter.NewPolygon(plotter.XYs{{X: r.Start, Y: yr.Min}, {X: r.Stop, Y: yr.Min}, {X: r.Stop, Y: yr.Max}, {X: r.Start, Y: yr.Max}})
		if err != nil {
			return nil, fmt.Errorf("epoch %q: %w", r.Label, err)
		}
		poly.Color = r.Color
		poly.LineStyle.Width = 0
		gp.Add(poly)
	}
	for _, c := range p.Curves {
		if len(c.X) == 0 || len(c.X) != len(c.Y) {
			continue
		}
		l, err := plotter.NewLine(xys(c.X, c.Y))
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", c.Name, err)
		}
		l.LineStyle.Color = c.Color
		l.LineStyle.Width = vg.Points(c.LineWidth)
		gp.Add(l)
	}
	vline := func(x float64, style draw.LineStyle) error {
		l, err := plotter.NewLine(plotter.XYs{{X: x, Y: yr.Min}, {X: x, Y: yr.Max}})
		if err != nil {
			return err
		}
		l.LineStyle = style
		gp.Add(l)
		return nil
	}
	var labels plotter.XYLabels
	for _, m := range p.Markers {
		style := draw.LineStyle{Color: m.Color, Width: vg.Points(1), Dashes: []vg.Length{vg.Points(4), vg.Points(3)}}
		if err := vline(m.X, style); err != nil {
			return nil, fmt.Errorf("event %q: %w", m.Label, err)
		}
		if m.Label != "" {
			labels.XYs = append(labels.XYs, plotter.XY{X: m.X, Y: yr.Max})
			labels.Labels = append(labels.Labels, m.Label)
		}
	}
	for _, t := range p.Ticks {
		style := draw.LineStyle{Color: t.Color, Width: vg.Points(1)}
		for _, v := range t.Times {
			if err := vline(v, style); err != nil {
				return nil, fmt.Errorf("spike train %q: %w", t.Name, err)
			}
		}
	}
	if len(labels.Labels) > 0 {
		lb, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, fmt.Errorf("event labels: %w", err)
		}
		gp.Add(lb)
	}
	return gp, nil
}

// WriteSVG draws every plot of win, stacked vertically, as one SVG document
// of width x height points.
func WriteSVG(w io.Writer, win *Window, width, height float64) error {
	var rows [][]*gonumplot.Plot
	for _, p := range win.Plots {
		if p == nil {
			continue
		}
		gp, err := vectorPlot(p)
		if err != nil {
			return err
		}
		rows = append(rows, []*gonumplot.Plot{gp})
	}
	if len(rows) == 0 {
		return errors.New("window has no plots")
	}
	top := rows[0][0]
	top.Title.Text = win.Title
	for _, e := range win.Legend {
		top.Legend.Add(e.Name, &plotter.Line{LineStyle: draw.LineStyle{Color: e.Color, Width: vg.Points(2)}})
	}
	top.Legend.Top = true

	c := vgsvg.New(vg.Points(width), vg.Points(height))
	tiles := draw.Tiles{Rows: len(rows), Cols: 1, PadY: vg.Points(6), PadTop: vg.Points(4), PadBottom: vg.Points(4)}
	canvases := gonumplot.Align(rows, tiles, draw.New(c))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// ExportSVG writes win to path as SVG.
func ExportSVG(win *Window, path string, width, height float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create svg file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close svg file: %w", cerr))
		}
	}()
	return WriteSVG(f, win, width, height)
}
