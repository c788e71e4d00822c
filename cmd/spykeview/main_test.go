package main

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/mczhu/spykeutils/cmd/spykeview/uihelpers"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/plot"
)

func demoState(t *testing.T, split bool) *uiState {
	t.Helper()
	blk := neo.Demo(neo.DefaultDemoConfig)
	cfg := viewConfig{TimeUnit: "ms", Subplots: split, Waveforms: true}
	win, err := buildWindow(blk, 0, cfg, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return &uiState{block: blk, cfg: cfg, plotWin: win, xView: map[int]uihelpers.Span{}, xSyncOn: true}
}

func TestPrefsRoundTrip(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	st := &uiState{
		app:              a,
		filePath:         "/data/rec.json",
		cfg:              viewConfig{TimeUnit: "us", YUnit: "uV", Subplots: false, Waveforms: false},
		crosshairEnabled: true,
		showLegend:       false,
	}
	savePrefs(st)

	got := &uiState{app: a, cfg: viewConfig{TimeUnit: "s", Subplots: true, Waveforms: true}, showLegend: true}
	loadPrefs(got)
	if got.filePath != st.filePath || got.cfg != st.cfg || !got.crosshairEnabled || got.showLegend {
		t.Fatalf("prefs not restored: %+v", got)
	}

	a.Preferences().SetString("timeUnit", "fortnight")
	got = &uiState{app: a, cfg: viewConfig{TimeUnit: "s"}}
	loadPrefs(got)
	if got.cfg.TimeUnit != "s" {
		t.Fatalf("unknown time unit should be ignored, got %q", got.cfg.TimeUnit)
	}
}

func TestRecentFiles(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	st := &uiState{app: a}
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 12; i++ {
		p := filepath.Join(dir, "rec"+strconv.Itoa(i)+".json")
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		paths = append(paths, p)
		addRecentFile(st, p)
	}
	list := recentFiles(st)
	if len(list) != 10 {
		t.Fatalf("expected 10 recent files, got %d", len(list))
	}
	if list[0] != paths[11] || list[9] != paths[2] {
		t.Fatalf("unexpected order: first=%s last=%s", list[0], list[9])
	}

	// re-adding moves a file to the front without duplicating it
	addRecentFile(st, paths[5])
	list = recentFiles(st)
	if list[0] != paths[5] || len(list) != 10 {
		t.Fatalf("re-add: %v", list)
	}
	for _, p := range list[1:] {
		if p == paths[5] {
			t.Fatalf("duplicate entry %s", p)
		}
	}

	// missing files are skipped
	if err := os.Remove(paths[11]); err != nil {
		t.Fatalf("remove: %v", err)
	}
	for _, p := range recentFiles(st) {
		if p == paths[11] {
			t.Fatalf("removed file still listed")
		}
	}

	clearRecentFiles(st)
	if got := recentFiles(st); len(got) != 0 {
		t.Fatalf("expected no recent files after clear, got %v", got)
	}
}

func TestChartSizeHeadless(t *testing.T) {
	old := screenshotWidthOverride
	defer func() { screenshotWidthOverride = old }()
	screenshotWidthOverride = 0
	if w, h := chartSize(nil); w != 1100 || h != 340 {
		t.Fatalf("default size %dx%d", w, h)
	}
	screenshotWidthOverride = 1000
	ew, eh := uihelpers.ComputeChartDimensions(1000)
	if w, h := chartSize(nil); w != ew || h != eh {
		t.Fatalf("override size %dx%d want %dx%d", w, h, ew, eh)
	}

	screenshotWidthOverride = 0
	st := demoState(t, true)
	w, h := plotSize(st)
	if w != 1100 || h != uihelpers.ComputeSubplotHeight(340, len(st.plotWin.Plots)) {
		t.Fatalf("plot size %dx%d", w, h)
	}
}

func TestZoomAndPanFollowXSync(t *testing.T) {
	st := demoState(t, true)
	full, ok := currentX(st, 0)
	if !ok {
		t.Fatalf("no x range")
	}

	zoomView(st, 0.5)
	if len(st.xView) != len(st.plotWin.Plots) {
		t.Fatalf("x sync on: expected all %d plots zoomed, got %d", len(st.plotWin.Plots), len(st.xView))
	}
	z := st.xView[0]
	if got, want := z.Max-z.Min, (full.Max-full.Min)/2; got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("zoomed span %v want %v", got, want)
	}
	for i, s := range st.xView {
		if s != z {
			t.Fatalf("plot %d not in sync: %+v vs %+v", i, s, z)
		}
	}

	st.xSyncOn = false
	st.selected = 1
	panView(st, 0.25)
	if st.xView[1] == st.xView[0] {
		t.Fatalf("selected plot should have moved")
	}
	if st.xView[2] != z {
		t.Fatalf("unlinked plot moved: %+v", st.xView[2])
	}

	resetView(st)
	if len(st.xView) != 0 {
		t.Fatalf("reset should clear zoom, got %v", st.xView)
	}
	if opts := renderOptions(st, 0); opts.XRange != nil || opts.Title != st.plotWin.Title {
		t.Fatalf("render options after reset: %+v", opts)
	}
}

func TestSharedYRange(t *testing.T) {
	st := demoState(t, true)
	if _, ok := sharedYRange(st, 0); ok {
		t.Fatalf("y sync starts disabled")
	}
	st.ySyncOn = true
	yr, ok := sharedYRange(st, 0)
	if !ok {
		t.Fatalf("expected a shared y range")
	}
	for i, p := range st.plotWin.Plots {
		_, y, _ := plot.DataRange(p)
		if y.Min < yr.Min || y.Max > yr.Max {
			t.Fatalf("plot %d y %+v outside shared %+v", i, y, yr)
		}
	}
	if opts := renderOptions(st, 2); opts.YRange == nil || *opts.YRange != yr {
		t.Fatalf("render options should carry the shared y range")
	}

	stacked := demoState(t, false)
	stacked.ySyncOn = true
	if _, ok := sharedYRange(stacked, 0); ok {
		t.Fatalf("stacked window has no y sync option")
	}
}

func TestRenderPlotLegend(t *testing.T) {
	st := demoState(t, true)
	w, h := plotSize(st)
	for _, legend := range []bool{false, true} {
		st.showLegend = legend
		img := renderPlot(st, 0)
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			t.Fatalf("legend=%v: size %v want %dx%d", legend, b, w, h)
		}
	}
}

func TestCrosshairLabel(t *testing.T) {
	p := &plot.Plot{}
	p.SetAxisUnit(plot.YLeft, "mV")
	if got := crosshairLabel(p, "ms", 12.5, 0.5); got != "t = 12.5 ms\n0.500 mV" {
		t.Fatalf("label %q", got)
	}
	if got := crosshairLabel(&plot.Plot{}, "s", 150, -2); got != "t = 150 s\n-2.00" {
		t.Fatalf("label without unit %q", got)
	}
}
