package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mczhu/spykeutils/cmd/spykeview/uihelpers"
	"github.com/mczhu/spykeutils/src/logging"
	"github.com/mczhu/spykeutils/src/neo"
	"github.com/mczhu/spykeutils/src/plot"
	"github.com/mczhu/spykeutils/src/progress"
)

// screenshotWidthOverride fixes the headless chart width when > 0.
var screenshotWidthOverride int

// RunScreenshotsMode renders every plot of one segment as plot_NN.png and the
// whole window as window.svg under outDir. It runs headlessly without creating
// a UI window.
func RunScreenshotsMode(filePath string, demo bool, segment int, outDir string, cfg viewConfig) error {
	var (
		blk *neo.Block
		err error
	)
	switch {
	case demo:
		blk = neo.Demo(neo.DefaultDemoConfig)
	case filePath != "":
		if blk, err = neo.Load(filePath); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no recording: pass -file or -demo")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	st := &uiState{
		filePath:   filePath,
		demo:       demo,
		block:      blk,
		segment:    segment,
		cfg:        cfg,
		showLegend: true,
		xView:      map[int]uihelpers.Span{},
	}
	win, err := buildWindow(blk, segment, cfg, &progress.Log{})
	if err != nil {
		return err
	}
	st.plotWin = win

	for i := range win.Plots {
		img := renderPlot(st, i)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode plot %d: %w", i+1, err)
		}
		outPath := filepath.Join(outDir, fmt.Sprintf("plot_%02d.png", i+1))
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	w, h := plotSize(st)
	svgPath := filepath.Join(outDir, "window.svg")
	if err := plot.ExportSVG(win, svgPath, float64(w), float64(h*len(win.Plots))); err != nil {
		return err
	}
	logging.Infof("[screenshots] wrote %d plots of %q to %s", len(win.Plots), win.Title, outDir)
	return nil
}
