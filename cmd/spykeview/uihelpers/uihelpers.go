package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for plots.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// ComputeSubplotHeight derives the height of one plot when n plots are shown
// stacked in split mode: the full height shared out, clamped between 180 and
// the full height.
func ComputeSubplotHeight(fullChartHeight, n int) int {
	if n <= 1 {
		return fullChartHeight
	}
	h := fullChartHeight * 3 / (n + 1)
	if h < 180 {
		h = 180
	}
	if h > fullChartHeight {
		h = fullChartHeight
	}
	return h
}

// Span is a visible interval of one axis.
type Span struct {
	Min, Max float64
}

// Zoom scales s around its center. factor < 1 zooms in.
func Zoom(s Span, factor float64) Span {
	if factor <= 0 {
		return s
	}
	c := (s.Min + s.Max) / 2
	half := (s.Max - s.Min) / 2 * factor
	if half <= 0 {
		half = 0.5
	}
	return Span{Min: c - half, Max: c + half}
}

// Pan shifts s by frac of its width. Positive moves right.
func Pan(s Span, frac float64) Span {
	d := (s.Max - s.Min) * frac
	return Span{Min: s.Min + d, Max: s.Max + d}
}

// UnionSpans returns the smallest span covering all of spans; ok is false
// for no input.
func UnionSpans(spans ...Span) (Span, bool) {
	if len(spans) == 0 {
		return Span{}, false
	}
	out := spans[0]
	for _, s := range spans[1:] {
		out.Min = math.Min(out.Min, s.Min)
		out.Max = math.Max(out.Max, s.Max)
	}
	return out, true
}

// SyncTargets returns the plot indices a zoom or pan applies to: the linked
// plots when synchronization is on and the selected plot is one of them,
// otherwise only the selected plot.
func SyncTargets(selected int, syncOn bool, linked []int) []int {
	if syncOn {
		for _, i := range linked {
			if i == selected {
				return append([]int(nil), linked...)
			}
		}
	}
	return []int{selected}
}

// ComputeContainRect returns where an imgW x imgH image is drawn inside a
// viewW x viewH area with contain scaling.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	w = imgW * scale
	h = imgH * scale
	return (viewW - w) / 2, (viewH - h) / 2, w, h, scale
}

// Insets are the distances in image pixels from the image edges to the plot
// area.
type Insets struct {
	Left, Right, Top, Bottom float32
}

// ChartInsets are typical go-chart insets for the padding the plot renderer
// uses; the axis gutters depend on tick label widths and are estimates.
var ChartInsets = Insets{Left: 16, Right: 12 + 52, Top: 14 + 8, Bottom: 28 + 30}

// PixelToData maps an overlay position to data coordinates of a plot whose
// visible ranges are xs and ys. ok is false outside the plot area.
func PixelToData(px, py, imgW, imgH, viewW, viewH float32, in Insets, xs, ys Span) (x, y float64, ok bool) {
	dx, dy, _, _, scale := ComputeContainRect(imgW, imgH, viewW, viewH)
	if scale <= 0 {
		return 0, 0, false
	}
	ix := (px - dx) / scale
	iy := (py - dy) / scale
	areaW := imgW - in.Left - in.Right
	areaH := imgH - in.Top - in.Bottom
	if areaW <= 0 || areaH <= 0 {
		return 0, 0, false
	}
	fx := (ix - in.Left) / areaW
	fy := (iy - in.Top) / areaH
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	x = xs.Min + float64(fx)*(xs.Max-xs.Min)
	y = ys.Max - float64(fy)*(ys.Max-ys.Min)
	return x, y, true
}

// FormatNumericTick provides a compact label for readouts.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// TruncatePath shortens p to about n characters, keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := p
	dir := ""
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' || p[i] == '\\' {
			base, dir = p[i+1:], p[:i]
			break
		}
	}
	if len(base)+4 >= n || dir == "" {
		return "..." + base
	}
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
