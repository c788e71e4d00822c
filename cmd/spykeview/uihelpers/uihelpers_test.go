package uihelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		in    int
		wantW int
	}{
		{100, 800},
		{799, 800},
		{800, 800},
		{1600, 1600},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.in)
		if w != c.wantW {
			t.Fatalf("input %d => width %d want %d", c.in, w, c.wantW)
		}
		if h < 280 || h > 520 {
			t.Fatalf("height clamp violated for input %d => h=%d", c.in, h)
		}
	}
}

func TestComputeSubplotHeight(t *testing.T) {
	cases := []struct{ full, n, want int }{
		{340, 1, 340},
		{340, 2, 340},
		{340, 4, 204},
		{340, 16, 180},
	}
	for _, c := range cases {
		if got := ComputeSubplotHeight(c.full, c.n); got != c.want {
			t.Fatalf("ComputeSubplotHeight(%d, %d) = %d want %d", c.full, c.n, got, c.want)
		}
	}
}

func TestZoomAndPan(t *testing.T) {
	s := Span{Min: 0, Max: 100}
	in := Zoom(s, 0.5)
	if in.Min != 25 || in.Max != 75 {
		t.Fatalf("zoom in %+v", in)
	}
	out := Zoom(in, 2)
	if out != s {
		t.Fatalf("zoom out %+v want %+v", out, s)
	}
	if Zoom(s, 0) != s {
		t.Fatalf("non-positive factor must be ignored")
	}
	if p := Pan(s, 0.25); p.Min != 25 || p.Max != 125 {
		t.Fatalf("pan right %+v", p)
	}
	if p := Pan(s, -0.5); p.Min != -50 || p.Max != 50 {
		t.Fatalf("pan left %+v", p)
	}
}

func TestUnionSpans(t *testing.T) {
	if _, ok := UnionSpans(); ok {
		t.Fatalf("empty union should not be ok")
	}
	u, ok := UnionSpans(Span{Min: 1, Max: 2}, Span{Min: -3, Max: 0}, Span{Min: 0, Max: 5})
	if !ok || u.Min != -3 || u.Max != 5 {
		t.Fatalf("union %+v", u)
	}
}

func TestSyncTargets(t *testing.T) {
	linked := []int{0, 1, 2}
	if got := SyncTargets(1, true, linked); len(got) != 3 {
		t.Fatalf("sync on: %v", got)
	}
	if got := SyncTargets(1, false, linked); len(got) != 1 || got[0] != 1 {
		t.Fatalf("sync off: %v", got)
	}
	if got := SyncTargets(5, true, linked); len(got) != 1 || got[0] != 5 {
		t.Fatalf("unlinked plot: %v", got)
	}
	got := SyncTargets(0, true, linked)
	got[0] = 9
	if linked[0] != 0 {
		t.Fatalf("SyncTargets must not alias its input")
	}
}

func TestComputeContainRect(t *testing.T) {
	x, y, w, h, s := ComputeContainRect(800, 400, 1600, 400)
	if s != 1 || w != 800 || h != 400 || x != 400 || y != 0 {
		t.Fatalf("contain rect %v %v %v %v %v", x, y, w, h, s)
	}
	_, _, w, h, s = ComputeContainRect(800, 400, 400, 400)
	if s != 0.5 || w != 400 || h != 200 {
		t.Fatalf("scaled contain rect %v %v %v", w, h, s)
	}
}

func TestPixelToData(t *testing.T) {
	in := Insets{Left: 10, Right: 10, Top: 10, Bottom: 10}
	xs, ys := Span{Min: 0, Max: 100}, Span{Min: -1, Max: 1}
	// image 120x120 shown 1:1, plot area 100x100 starting at (10,10)
	x, y, ok := PixelToData(60, 60, 120, 120, 120, 120, in, xs, ys)
	if !ok || math.Abs(x-50) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Fatalf("center => %v %v %v", x, y, ok)
	}
	x, y, ok = PixelToData(10, 10, 120, 120, 120, 120, in, xs, ys)
	if !ok || x != 0 || y != 1 {
		t.Fatalf("top-left => %v %v %v", x, y, ok)
	}
	if _, _, ok := PixelToData(5, 60, 120, 120, 120, 120, in, xs, ys); ok {
		t.Fatalf("left gutter should be outside the plot area")
	}
	// same image at double size
	x, _, ok = PixelToData(120, 120, 120, 120, 240, 240, in, xs, ys)
	if !ok || math.Abs(x-50) > 1e-6 {
		t.Fatalf("scaled center => %v %v", x, ok)
	}
}

func TestFormatNumericTick(t *testing.T) {
	cases := map[float64]string{
		123.4:    "123",
		12.34:    "12.3",
		1.234:    "1.23",
		0.1234:   "0.123",
		0.001234: "0.0012",
	}
	for v, want := range cases {
		if got := FormatNumericTick(v); got != want {
			t.Fatalf("format %v => %q want %q", v, got, want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	if got := TruncatePath("/a/b.json", 60); got != "/a/b.json" {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/home/user/recordings/2024/session-with-a-long-name/tetrode.json"
	got := TruncatePath(long, 40)
	if len(got) > 40 || got[len(got)-len("tetrode.json"):] != "tetrode.json" {
		t.Fatalf("truncated %q", got)
	}
	if got := TruncatePath("/x/"+string(make([]byte, 50)), 10); got[:3] != "..." {
		t.Fatalf("long base should be elided: %q", got)
	}
}
