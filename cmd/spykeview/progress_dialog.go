package main

import (
	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mczhu/spykeutils/src/progress"
)

// dialogProgress shows plot building progress as a modal progress bar. It must
// be driven from the UI goroutine.
type dialogProgress struct {
	parent fyne.Window
	bar    *widget.ProgressBar
	status *widget.Label
	dlg    dialog.Dialog
	steps  int
}

var _ progress.Indicator = (*dialogProgress)(nil)

func newDialogProgress(parent fyne.Window) *dialogProgress {
	return &dialogProgress{parent: parent, bar: widget.NewProgressBar(), status: widget.NewLabel("")}
}

func (d *dialogProgress) Begin(title string) {
	if d.dlg != nil {
		d.dlg.Hide()
	}
	d.steps = 0
	d.bar.SetValue(0)
	d.status.SetText("")
	d.dlg = dialog.NewCustomWithoutButtons(title, container.NewVBox(d.bar, d.status), d.parent)
	d.dlg.Show()
}

func (d *dialogProgress) SetTicks(ticks int) {
	if ticks < 1 {
		ticks = 1
	}
	d.steps = 0
	d.bar.Max = float64(ticks)
	d.bar.SetValue(0)
}

func (d *dialogProgress) Step(n int) {
	d.steps += n
	d.bar.SetValue(float64(d.steps))
}

func (d *dialogProgress) SetStatus(s string) { d.status.SetText(s) }

func (d *dialogProgress) Done() {
	if d.dlg != nil {
		d.dlg.Hide()
		d.dlg = nil
	}
}
