package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/mczhu/spykeutils/cmd/spykeview/uihelpers"
	"github.com/mczhu/spykeutils/src/logging"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/plot"
	"github.com/mczhu/spykeutils/src/progress"
)

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath string
	demo     bool
	block    *neo.Block
	segment  int
	cfg      viewConfig

	crosshairEnabled bool
	showLegend       bool
	xSyncOn          bool
	ySyncOn          bool
	selected         int

	plotWin *plot.Window
	// zoomed x range per plot; plots without an entry show all data
	xView map[int]uihelpers.Span

	// widgets
	fileLabel  *widget.Label
	segmentSel *widget.Select
	plotSel    *widget.Select
	xSyncChk   *widget.Check
	ySyncChk   *widget.Check
	legendRow  *fyne.Container
	plotsBox   *fyne.Container
	imgs       []*canvas.Image
	overlays   []*crosshairOverlay
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		fileFlag        string
		demoFlag        bool
		segmentFlag     int
		timeUnitFlag    string
		yUnitFlag       string
		subplotsFlag    bool
		waveformsFlag   bool
		logLevelFlag    string
		screenshotsFlag string
	)
	flag.StringVar(&fileFlag, "file", "", "Path to a recording JSON file")
	flag.BoolVar(&demoFlag, "demo", false, "Show a synthetic demo recording")
	flag.IntVar(&segmentFlag, "segment", 0, "Segment index to plot")
	flag.StringVar(&timeUnitFlag, "time-unit", "s", "Time axis unit: s|ms|us|min")
	flag.StringVar(&yUnitFlag, "y-unit", "", "Rescale signals to this unit (e.g. uV); empty keeps native units")
	flag.BoolVar(&subplotsFlag, "subplots", true, "One plot per signal instead of stacked traces")
	flag.BoolVar(&waveformsFlag, "waveforms", true, "Draw spike train waveforms instead of spike ticks")
	flag.StringVar(&logLevelFlag, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&screenshotsFlag, "screenshots", "", "Render all plots headlessly into this directory and exit")
	flag.Parse()
	logging.SetLogLevel(logLevelFlag)

	cfg := viewConfig{TimeUnit: timeUnitFlag, YUnit: yUnitFlag, Subplots: subplotsFlag, Waveforms: waveformsFlag}
	if screenshotsFlag != "" {
		if err := RunScreenshotsMode(fileFlag, demoFlag, segmentFlag, screenshotsFlag, cfg); err != nil {
			fmt.Fprintln(os.Stderr, "screenshots:", err)
			os.Exit(1)
		}
		return
	}
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	a := app.NewWithID("org.spykeutils.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Spyke Viewer")
	w.Resize(fyne.NewSize(1200, 860))

	state := &uiState{
		app:        a,
		window:     w,
		cfg:        viewConfig{TimeUnit: "s", Subplots: true, Waveforms: true},
		showLegend: true,
		xView:      map[int]uihelpers.Span{},
	}
	loadPrefs(state)
	// explicit flags win over remembered preferences
	if setFlags["file"] {
		state.filePath = fileFlag
	}
	// nothing to open yet: start on the demo recording
	state.demo = demoFlag || state.filePath == ""
	state.segment = segmentFlag
	if setFlags["time-unit"] {
		state.cfg.TimeUnit = timeUnitFlag
	}
	if setFlags["y-unit"] {
		state.cfg.YUnit = yUnitFlag
	}
	if setFlags["subplots"] {
		state.cfg.Subplots = subplotsFlag
	}
	if setFlags["waveforms"] {
		state.cfg.Waveforms = waveformsFlag
	}

	// top bar controls
	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	timeUnitSel := widget.NewSelect(timeUnitOptions, nil)
	timeUnitSel.Selected = state.cfg.TimeUnit
	state.segmentSel = widget.NewSelect(nil, nil)
	state.segmentSel.PlaceHolder = "Segment"
	subplotsChk := widget.NewCheck("Subplots", nil)
	subplotsChk.SetChecked(state.cfg.Subplots)
	waveformsChk := widget.NewCheck("Waveforms", nil)
	waveformsChk.SetChecked(state.cfg.Waveforms)
	crosshairChk := widget.NewCheck("Crosshair", nil)
	crosshairChk.SetChecked(state.crosshairEnabled)
	legendChk := widget.NewCheck("Legend", nil)
	legendChk.SetChecked(state.showLegend)

	// curve tools
	state.plotSel = widget.NewSelect(nil, nil)
	state.plotSel.PlaceHolder = "Plot"
	state.xSyncChk = widget.NewCheck("X sync", nil)
	state.ySyncChk = widget.NewCheck("Y sync", nil)
	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { zoomView(state, 0.5) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { zoomView(state, 2) }),
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { panView(state, -0.25) }),
		widget.NewToolbarAction(theme.NavigateNextIcon(), func() { panView(state, 0.25) }),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), func() { resetView(state) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { exportPlotPNG(state) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { exportWindowSVG(state) }),
	)

	top := container.NewVBox(
		container.NewHBox(
			widget.NewButton("Open…", func() { openFileDialog(state) }),
			widget.NewButton("Demo", func() {
				state.demo = true
				state.filePath = ""
				state.fileLabel.SetText("(demo)")
				loadRecording(state)
			}),
			widget.NewLabel("Segment:"), state.segmentSel,
			widget.NewLabel("Time:"), timeUnitSel,
			subplotsChk, waveformsChk, crosshairChk, legendChk,
			widget.NewLabel("File:"), state.fileLabel,
		),
		container.NewHBox(tools, widget.NewLabel("Plot:"), state.plotSel, state.xSyncChk, state.ySyncChk),
	)
	state.legendRow = container.NewHBox()
	state.plotsBox = container.NewVBox()
	plotsScroll := container.NewVScroll(state.plotsBox)
	plotsScroll.SetMinSize(fyne.NewSize(900, 650))
	w.SetContent(container.NewBorder(top, state.legendRow, nil, nil, plotsScroll))

	// Redraw plots on window resize so they scale with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawPlots(state) })
					}
				}
			}
		}()
	}

	// callbacks, wired once all widgets exist
	timeUnitSel.OnChanged = func(v string) {
		state.cfg.TimeUnit = v
		savePrefs(state)
		rebuildPlots(state)
	}
	state.segmentSel.OnChanged = func(string) {
		state.segment = state.segmentSel.SelectedIndex()
		rebuildPlots(state)
	}
	subplotsChk.OnChanged = func(b bool) { state.cfg.Subplots = b; savePrefs(state); rebuildPlots(state) }
	waveformsChk.OnChanged = func(b bool) { state.cfg.Waveforms = b; savePrefs(state); rebuildPlots(state) }
	crosshairChk.OnChanged = func(b bool) {
		state.crosshairEnabled = b
		savePrefs(state)
		for _, o := range state.overlays {
			o.enabled = b
			o.Refresh()
		}
	}
	legendChk.OnChanged = func(b bool) { state.showLegend = b; savePrefs(state); redrawPlots(state) }
	state.plotSel.OnChanged = func(string) {
		if i := state.plotSel.SelectedIndex(); i >= 0 {
			state.selected = i
		}
	}
	state.xSyncChk.OnChanged = func(b bool) { state.xSyncOn = b }
	state.ySyncChk.OnChanged = func(b bool) { state.ySyncOn = b; redrawPlots(state) }

	buildMenus(state)
	loadRecording(state)
	w.ShowAndRun()
}

// chartSize computes a chart size based on the current window width so plots use more X-axis space.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		if screenshotWidthOverride > 0 {
			return uihelpers.ComputeChartDimensions(screenshotWidthOverride)
		}
		return 1100, 340
	}
	sz := state.window.Canvas().Size()
	// Use ~95% of the available width, minus a small margin for scrollbars/padding
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

// plotSize is the image size of one plot of the current window.
func plotSize(state *uiState) (int, int) {
	w, h := chartSize(state)
	if state != nil && state.plotWin != nil {
		h = uihelpers.ComputeSubplotHeight(h, len(state.plotWin.Plots))
	}
	return w, h
}

// loadRecording reads the current file (or demo data) and rebuilds the plots.
func loadRecording(state *uiState) {
	var (
		blk *neo.Block
		err error
	)
	switch {
	case state.demo:
		blk = neo.Demo(neo.DefaultDemoConfig)
	case state.filePath != "":
		blk, err = neo.Load(state.filePath)
	default:
		return
	}
	if err != nil {
		logging.Errorf("[viewer] load %s: %v", state.filePath, err)
		dialog.ShowError(err, state.window)
		return
	}
	state.block = blk
	logging.Infof("[viewer] loaded %q: %d segments", blk.Name, len(blk.Segments))
	if state.segment < 0 || state.segment >= len(blk.Segments) {
		state.segment = 0
	}
	if state.segmentSel != nil {
		state.segmentSel.Options = segmentNames(blk)
		state.segmentSel.Refresh()
		if len(blk.Segments) > 0 {
			// select without the callback; the rebuild below covers it
			cb := state.segmentSel.OnChanged
			state.segmentSel.OnChanged = nil
			state.segmentSel.SetSelectedIndex(state.segment)
			state.segmentSel.OnChanged = cb
		}
	}
	rebuildPlots(state)
}

// rebuildPlots builds a new plot window from the loaded recording and
// replaces all plot widgets.
func rebuildPlots(state *uiState) {
	if state.block == nil {
		return
	}
	prog := progress.Multi{newDialogProgress(state.window), &progress.Log{}}
	win, err := buildWindow(state.block, state.segment, state.cfg, prog)
	if err != nil {
		logging.Errorf("[viewer] build plots: %v", err)
		dialog.ShowError(err, state.window)
		return
	}
	state.plotWin = win
	state.window.SetTitle("Spyke Viewer - " + win.Title)
	state.xView = map[int]uihelpers.Span{}
	state.selected = 0

	n := len(win.Plots)
	state.imgs = make([]*canvas.Image, n)
	state.overlays = make([]*crosshairOverlay, n)
	objs := make([]fyne.CanvasObject, 0, 2*n)
	names := make([]string, n)
	for i := range win.Plots {
		img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
		img.FillMode = canvas.ImageFillContain
		state.imgs[i] = img
		state.overlays[i] = newCrosshairOverlay(state, i)
		if i > 0 {
			objs = append(objs, widget.NewSeparator())
		}
		objs = append(objs, container.NewStack(img, state.overlays[i]))
		names[i] = fmt.Sprintf("Plot %d", i+1)
	}
	state.plotsBox.Objects = objs
	state.plotsBox.Refresh()

	state.plotSel.Options = names
	state.plotSel.Refresh()
	if n > 0 {
		state.plotSel.SetSelectedIndex(0)
	}
	if win.CurveTools {
		state.plotSel.Enable()
	} else {
		state.plotSel.Disable()
	}
	state.xSyncOn = win.XSync != nil && win.XSync.Enabled
	state.ySyncOn = win.YSync != nil && win.YSync.Enabled
	state.xSyncChk.SetChecked(state.xSyncOn)
	state.ySyncChk.SetChecked(state.ySyncOn)
	if win.XSync == nil {
		state.xSyncChk.Disable()
	} else {
		state.xSyncChk.Enable()
	}
	if win.YSync == nil {
		state.ySyncChk.Disable()
	} else {
		state.ySyncChk.Enable()
	}

	legend := make([]fyne.CanvasObject, 0, 2*len(win.Legend))
	for _, e := range win.Legend {
		sw := canvas.NewRectangle(e.Color)
		sw.SetMinSize(fyne.NewSize(12, 12))
		legend = append(legend, container.NewCenter(sw), widget.NewLabel(e.Name))
	}
	state.legendRow.Objects = legend
	state.legendRow.Refresh()
	redrawPlots(state)
}

// renderOptions returns how plot i is rendered under the current view.
func renderOptions(state *uiState, i int) plot.RenderOptions {
	w, h := plotSize(state)
	opts := plot.RenderOptions{Width: w, Height: h, Dark: true}
	if i == 0 && state.plotWin != nil {
		opts.Title = state.plotWin.Title
	}
	if s, ok := state.xView[i]; ok {
		opts.XRange = &plot.Extent{Min: s.Min, Max: s.Max}
	}
	if yr, ok := sharedYRange(state, i); ok {
		opts.YRange = &yr
	}
	return opts
}

// sharedYRange is the union of the y data ranges of all y-linked plots, when
// y sync is on and plot i is linked.
func sharedYRange(state *uiState, i int) (plot.Extent, bool) {
	win := state.plotWin
	if win == nil || win.YSync == nil || !state.ySyncOn {
		return plot.Extent{}, false
	}
	var spans []uihelpers.Span
	linked := false
	for _, j := range win.YSync.Plots {
		if j == i {
			linked = true
		}
		if j < 0 || j >= len(win.Plots) {
			continue
		}
		if _, y, ok := plot.DataRange(win.Plots[j]); ok {
			spans = append(spans, uihelpers.Span{Min: y.Min, Max: y.Max})
		}
	}
	u, ok := uihelpers.UnionSpans(spans...)
	if !linked || !ok {
		return plot.Extent{}, false
	}
	return plot.Extent{Min: u.Min, Max: u.Max}, true
}

func renderPlot(state *uiState, i int) image.Image {
	opts := renderOptions(state, i)
	img, err := plot.Image(state.plotWin.Plots[i], opts)
	if err != nil {
		// Fallback to a blank image so the UI visibly updates even on render errors
		logging.Warnf("[viewer] plot %d render error: %v; showing blank fallback", i, err)
		return plot.Blank(opts.Width, opts.Height)
	}
	if i == 0 && state.showLegend {
		img = plot.DrawLegend(img, state.plotWin.Legend)
	}
	return img
}

func redrawPlots(state *uiState) {
	if state == nil || state.plotWin == nil {
		return
	}
	defer logging.TimeTrack(time.Now(), "redraw")
	w, h := plotSize(state)
	for i, img := range state.imgs {
		if img == nil || i >= len(state.plotWin.Plots) {
			continue
		}
		img.Image = renderPlot(state, i)
		img.SetMinSize(fyne.NewSize(float32(w), float32(h)))
		img.Refresh()
		// also refresh overlay so crosshair rebinds to new image rects
		if state.overlays[i] != nil {
			state.overlays[i].Refresh()
		}
	}
}

// currentX is the visible x range of plot i.
func currentX(state *uiState, i int) (uihelpers.Span, bool) {
	if s, ok := state.xView[i]; ok {
		return s, true
	}
	if state.plotWin == nil || i < 0 || i >= len(state.plotWin.Plots) {
		return uihelpers.Span{}, false
	}
	x, _, ok := plot.DataRange(state.plotWin.Plots[i])
	return uihelpers.Span{Min: x.Min, Max: x.Max}, ok
}

// applyX sets the x range of the selected plot and, with x sync on, of every
// plot linked to it.
func applyX(state *uiState, f func(uihelpers.Span) uihelpers.Span) {
	cur, ok := currentX(state, state.selected)
	if !ok {
		return
	}
	next := f(cur)
	var linked []int
	if state.plotWin.XSync != nil {
		linked = state.plotWin.XSync.Plots
	}
	for _, i := range uihelpers.SyncTargets(state.selected, state.xSyncOn, linked) {
		state.xView[i] = next
	}
	redrawPlots(state)
}

func zoomView(state *uiState, factor float64) {
	applyX(state, func(s uihelpers.Span) uihelpers.Span { return uihelpers.Zoom(s, factor) })
}

func panView(state *uiState, frac float64) {
	applyX(state, func(s uihelpers.Span) uihelpers.Span { return uihelpers.Pan(s, frac) })
}

func resetView(state *uiState) {
	state.xView = map[int]uihelpers.Span{}
	redrawPlots(state)
}

// export PNG of the selected plot
func exportPlotPNG(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	i := state.selected
	if i < 0 || i >= len(state.imgs) || state.imgs[i] == nil || state.imgs[i].Image == nil {
		dialog.ShowInformation("Export", "No plot to export.", state.window)
		return
	}
	img := state.imgs[i].Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(fmt.Sprintf("plot_%02d.png", i+1))
	fs.Show()
}

// export SVG of the whole window
func exportWindowSVG(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	if state.plotWin == nil {
		dialog.ShowInformation("Export", "No plots to export.", state.window)
		return
	}
	win := state.plotWin
	w, h := plotSize(state)
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := plot.WriteSVG(wc, win, float64(w), float64(h*len(win.Plots))); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("signals.svg")
	fs.Show()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() { openPath(state, f) }))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadRecording(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Plot PNG…", func() { exportPlotPNG(state) }),
		fyne.NewMenuItem("Export Window SVG…", func() { exportWindowSVG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { zoomView(state, 0.5) }),
		fyne.NewMenuItem("Zoom Out", func() { zoomView(state, 2) }),
		fyne.NewMenuItem("Reset Zoom", func() { resetView(state) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadRecording(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadRecording(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openPath(state *uiState, path string) {
	state.filePath = path
	state.demo = false
	state.segment = 0
	if state.fileLabel != nil {
		state.fileLabel.SetText(uihelpers.TruncatePath(path, 60))
	}
	addRecentFile(state, path)
	savePrefs(state)
	buildMenus(state)
	loadRecording(state)
}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		openPath(state, path)
	}, state.window)
	d.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("timeUnit", state.cfg.TimeUnit)
	prefs.SetString("yUnit", state.cfg.YUnit)
	prefs.SetBool("subplots", state.cfg.Subplots)
	prefs.SetBool("waveforms", state.cfg.Waveforms)
	prefs.SetBool("crosshair", state.crosshairEnabled)
	prefs.SetBool("showLegend", state.showLegend)
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	state.filePath = prefs.StringWithFallback("lastFile", state.filePath)
	tu := prefs.StringWithFallback("timeUnit", state.cfg.TimeUnit)
	for _, o := range timeUnitOptions {
		if o == tu {
			state.cfg.TimeUnit = tu
		}
	}
	state.cfg.YUnit = prefs.StringWithFallback("yUnit", state.cfg.YUnit)
	state.cfg.Subplots = prefs.BoolWithFallback("subplots", state.cfg.Subplots)
	state.cfg.Waveforms = prefs.BoolWithFallback("waveforms", state.cfg.Waveforms)
	state.crosshairEnabled = prefs.BoolWithFallback("crosshair", state.crosshairEnabled)
	state.showLegend = prefs.BoolWithFallback("showLegend", state.showLegend)
}
