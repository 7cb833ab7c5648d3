package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/display"
)

var timerPresets = []time.Duration{time.Minute, 5 * time.Minute, 10 * time.Minute, 25 * time.Minute}

func (mw *MainWindow) buildTimerTab() fyne.CanvasObject {
	mw.timerText = canvas.NewText(display.FormatCountdown(mw.th.countdown.Duration()), theme.Color(theme.ColorNameForeground))
	mw.timerText.TextSize = 72
	mw.timerText.TextStyle = fyne.TextStyle{Monospace: true}
	mw.timerText.Alignment = fyne.TextAlignCenter

	mw.timerStatus = widget.NewLabel("")
	mw.timerStatus.Alignment = fyne.TextAlignCenter

	d := mw.th.countdown.Duration()
	mw.timerMin = widget.NewEntry()
	mw.timerMin.SetText(strconv.Itoa(int(d / time.Minute)))
	mw.timerSec = widget.NewEntry()
	mw.timerSec.SetText(strconv.Itoa(int(d % time.Minute / time.Second)))

	setButton := widget.NewButton("Set", func() {
		d, err := parseTimerEntries(mw.timerMin.Text, mw.timerSec.Text)
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		mw.setTimerDuration(d)
	})

	presets := container.NewHBox()
	for _, p := range timerPresets {
		p := p // per-iteration copy; go.mod targets go 1.21 (pre-1.22 loop semantics)
		presets.Add(widget.NewButton(fmt.Sprintf("%d min", int(p/time.Minute)), func() {
			mw.setTimerDuration(p)
		}))
	}

	mw.timerStart = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if mw.th.countdown.Running() {
			mw.th.countdown.Pause()
		} else {
			mw.th.silenceTimer()
			mw.th.countdown.Start()
		}
		mw.refreshTimer(mw.th.clock.Now())
	})
	mw.timerStart.Importance = widget.HighImportance

	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		mw.th.silenceTimer()
		mw.th.countdown.Reset()
		mw.refreshTimer(mw.th.clock.Now())
	})

	durationForm := widget.NewForm(
		widget.NewFormItem("Minutes", mw.timerMin),
		widget.NewFormItem("Seconds", mw.timerSec),
	)

	return container.NewVBox(
		container.NewPadded(mw.timerText),
		mw.timerStatus,
		container.NewCenter(container.NewHBox(mw.timerStart, resetButton)),
		widget.NewSeparator(),
		durationForm,
		container.NewHBox(setButton),
		container.NewCenter(presets),
	)
}

func (mw *MainWindow) setTimerDuration(d time.Duration) {
	mw.th.silenceTimer()
	mw.th.countdown.SetDuration(d)
	mw.th.config.TimerDuration = int(d / time.Second)
	mw.th.saveConfig()
	mw.th.log.Debug("timer duration set", zap.Duration("duration", d))

	mw.timerMin.SetText(strconv.Itoa(int(d / time.Minute)))
	mw.timerSec.SetText(strconv.Itoa(int(d % time.Minute / time.Second)))
	mw.refreshTimer(mw.th.clock.Now())
}

func (mw *MainWindow) refreshTimer(now time.Time) {
	if mw.timerText == nil {
		return
	}
	text := display.FormatCountdown(mw.th.countdown.Remaining(now))
	if text != mw.timerText.Text {
		mw.timerText.Text = text
		mw.timerText.Refresh()
	}

	status, label, icon := "", "Start", theme.MediaPlayIcon()
	switch {
	case mw.th.countdown.Running():
		label, icon = "Pause", theme.MediaPauseIcon()
	case mw.th.countdown.Finished():
		status = "Time is up"
	}
	if mw.timerStart.Text != label {
		mw.timerStart.SetText(label)
		mw.timerStart.SetIcon(icon)
	}
	if mw.timerStatus.Text != status {
		mw.timerStatus.SetText(status)
	}
}

// parseTimerEntries reads the minute and second fields; empty means zero
func parseTimerEntries(minText, secText string) (time.Duration, error) {
	parse := func(s, field string) (int, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s must be a positive number", field)
		}
		return n, nil
	}

	mins, err := parse(minText, "minutes")
	if err != nil {
		return 0, err
	}
	secs, err := parse(secText, "seconds")
	if err != nil {
		return 0, err
	}
	if secs > 59 {
		return 0, fmt.Errorf("seconds must be below 60")
	}
	d := time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second
	if d <= 0 {
		return 0, fmt.Errorf("please set at least 1 second")
	}
	return d, nil
}
