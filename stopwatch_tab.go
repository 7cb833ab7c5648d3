package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/timehub/timehub/pkg/display"
	"github.com/timehub/timehub/pkg/stopwatch"
)

func (mw *MainWindow) buildStopwatchTab() fyne.CanvasObject {
	mw.stopwatchText = canvas.NewText(display.FormatStopwatch(0), theme.Color(theme.ColorNameForeground))
	mw.stopwatchText.TextSize = 72
	mw.stopwatchText.TextStyle = fyne.TextStyle{Monospace: true}
	mw.stopwatchText.Alignment = fyne.TextAlignCenter

	var laps []stopwatch.Lap
	mw.lapList = widget.NewList(
		func() int {
			return len(laps)
		},
		func() fyne.CanvasObject {
			return widget.NewLabelWithStyle("template", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(laps) {
				return
			}
			lap := laps[i]
			o.(*widget.Label).SetText(fmt.Sprintf("Lap %-3d  %s   %s",
				lap.ID, display.FormatStopwatch(lap.Split), display.FormatStopwatch(lap.Total)))
		})
	refreshLaps := func() {
		laps = mw.th.stopwatch.Laps()
		mw.lapList.Refresh()
	}

	mw.stopwatchStart = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		mw.th.stopwatch.Toggle()
		mw.refreshStopwatch(mw.th.clock.Now())
	})
	mw.stopwatchStart.Importance = widget.HighImportance

	mw.lapButton = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() {
		if _, ok := mw.th.stopwatch.Lap(); ok {
			refreshLaps()
		}
	})

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.th.stopwatch.Reset()
		refreshLaps()
		mw.refreshStopwatch(mw.th.clock.Now())
	})

	controls := container.NewCenter(container.NewHBox(mw.stopwatchStart, mw.lapButton, resetButton))

	return container.NewBorder(
		container.NewVBox(container.NewPadded(mw.stopwatchText), controls, widget.NewSeparator()),
		nil, nil, nil,
		mw.lapList,
	)
}

func (mw *MainWindow) refreshStopwatch(now time.Time) {
	if mw.stopwatchText == nil {
		return
	}
	text := display.FormatStopwatch(mw.th.stopwatch.Elapsed(now))
	if text != mw.stopwatchText.Text {
		mw.stopwatchText.Text = text
		mw.stopwatchText.Refresh()
	}

	running := mw.th.stopwatch.Running()
	label, icon := "Start", theme.MediaPlayIcon()
	if running {
		label, icon = "Stop", theme.MediaStopIcon()
	}
	if mw.stopwatchStart.Text != label {
		mw.stopwatchStart.SetText(label)
		mw.stopwatchStart.SetIcon(icon)
	}
	if running {
		mw.lapButton.Enable()
	} else {
		mw.lapButton.Disable()
	}
}
