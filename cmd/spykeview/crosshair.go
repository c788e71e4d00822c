package main

import (
	"fmt"
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/mczhu/spykeutils/cmd/spykeview/uihelpers"
	"github.com/mczhu/spykeutils/src/plot"
)

// crosshairOverlay draws a crosshair on top of one plot image when enabled
// and shows the time and value under the cursor.
type crosshairOverlay struct {
	widget.BaseWidget
	state    *uiState
	enabled  bool
	index    int // plot index in the window
	mouse    fyne.Position
	hovering bool
}

func newCrosshairOverlay(state *uiState, index int) *crosshairOverlay {
	c := &crosshairOverlay{state: state, enabled: state != nil && state.crosshairEnabled, index: index}
	c.ExtendBaseWidget(c)
	return c
}

// crosshairLabel is the readout text for data position (x, y) on p.
func crosshairLabel(p *plot.Plot, timeUnit string, x, y float64) string {
	yl := uihelpers.FormatNumericTick(y)
	if p != nil && p.YUnit != "" {
		yl += " " + p.YUnit
	}
	return fmt.Sprintf("t = %s %s\n%s", uihelpers.FormatNumericTick(x), timeUnit, yl)
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	lineV := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineV.StrokeWidth = 1
	lineH := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineH.StrokeWidth = 1
	dot := canvas.NewCircle(color.RGBA{R: 240, G: 240, B: 240, A: 220})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, dot, labelBG, label}
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, dot: dot, labelBG: labelBG, label: label, objs: objs}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	dot     *canvas.Circle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.lineH.Position1 = fyne.NewPos(-10, -10)
	r.lineH.Position2 = fyne.NewPos(-10, -10)
	r.dot.Move(fyne.NewPos(-10, -10))
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

// dataAt maps an overlay position to plot data coordinates.
func (r *crosshairRenderer) dataAt(pos fyne.Position, size fyne.Size) (float64, float64, bool) {
	st := r.c.state
	if st == nil || st.plotWin == nil || r.c.index >= len(st.plotWin.Plots) || r.c.index >= len(st.imgs) {
		return 0, 0, false
	}
	img := st.imgs[r.c.index]
	if img == nil || img.Image == nil {
		return 0, 0, false
	}
	b := img.Image.Bounds()
	xr, yr, ok := plot.VisibleRanges(st.plotWin.Plots[r.c.index], renderOptions(st, r.c.index))
	if !ok {
		return 0, 0, false
	}
	return uihelpers.PixelToData(pos.X, pos.Y, float32(b.Dx()), float32(b.Dy()), size.Width, size.Height,
		uihelpers.ChartInsets, uihelpers.Span{Min: xr.Min, Max: xr.Max}, uihelpers.Span{Min: yr.Min, Max: yr.Max})
}

func (r *crosshairRenderer) Destroy() {}

func (r *crosshairRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	if !r.c.enabled || !r.c.hovering {
		r.hide()
		return
	}
	x, y := r.c.mouse.X, r.c.mouse.Y
	dx, dy, ok := r.dataAt(r.c.mouse, size)
	if !ok {
		// outside the plot area
		r.hide()
		return
	}
	r.lineV.Position1 = fyne.NewPos(x, 0)
	r.lineV.Position2 = fyne.NewPos(x, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, y)
	r.lineH.Position2 = fyne.NewPos(size.Width, y)
	r.dot.Resize(fyne.NewSize(6, 6))
	r.dot.Move(fyne.NewPos(x-3, y-3))

	st := r.c.state
	text := crosshairLabel(st.plotWin.Plots[r.c.index], st.cfg.TimeUnit, dx, dy)
	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: text}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	for _, o := range r.objs {
		o.Refresh()
	}
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !c.enabled {
		return
	}
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *crosshairOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

var _ desktop.Hoverable = (*crosshairOverlay)(nil)
