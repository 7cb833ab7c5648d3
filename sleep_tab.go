package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/ambient"
	"github.com/timehub/timehub/pkg/audio"
	"github.com/timehub/timehub/pkg/display"
	"github.com/timehub/timehub/pkg/sleep"
)

var sleepTimerOptions = []int{0, 15, 30, 45, 60, 90}

func (mw *MainWindow) buildSleepTab() fyne.CanvasObject {
	return container.NewVScroll(container.NewVBox(
		mw.buildCalculator(),
		widget.NewSeparator(),
		mw.buildAmbient(),
	))
}

func (mw *MainWindow) buildCalculator() fyne.CanvasObject {
	hours := make([]string, 12)
	for i := range hours {
		hours[i] = strconv.Itoa(i + 1)
	}
	minutes := make([]string, 12)
	for i := range minutes {
		minutes[i] = fmt.Sprintf("%02d", i*5)
	}

	hourSelect := widget.NewSelect(hours, nil)
	minuteSelect := widget.NewSelect(minutes, nil)
	periodSelect := widget.NewSelect([]string{"AM", "PM"}, nil)
	modeRadio := widget.NewRadioGroup([]string{"I want to wake up at", "I'm going to bed at"}, nil)
	modeRadio.Horizontal = true
	modeRadio.Required = true
	modeRadio.SetSelected("I want to wake up at")

	setAnchor := func(a sleep.Anchor) {
		hourSelect.SetSelected(strconv.Itoa(a.Hour))
		minuteSelect.SetSelected(fmt.Sprintf("%02d", a.Minute/5*5))
		if a.PM {
			periodSelect.SetSelected("PM")
		} else {
			periodSelect.SetSelected("AM")
		}
	}
	setAnchor(sleep.AnchorFromPicker(mw.th.clock.Now()))

	mw.sleepResults = container.NewVBox()

	calculate := func() {
		hour, _ := strconv.Atoi(hourSelect.Selected)
		minute, _ := strconv.Atoi(minuteSelect.Selected)
		anchor := sleep.Anchor{Hour: hour, Minute: minute, PM: periodSelect.Selected == "PM"}
		mode := sleep.ModeBedtime
		if modeRadio.Selected == "I'm going to bed at" {
			mode = sleep.ModeWakeup
		}
		mw.showSleepResults(sleep.Calculate(mode, anchor))
	}

	nowButton := widget.NewButtonWithIcon("Now", theme.HistoryIcon(), func() {
		setAnchor(sleep.AnchorFromPicker(mw.th.clock.Now()))
		modeRadio.SetSelected("I'm going to bed at")
		calculate()
	})
	calcButton := widget.NewButton("Calculate", calculate)
	calcButton.Importance = widget.HighImportance

	header := widget.NewLabelWithStyle("Sleep Cycles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	hint := widget.NewLabel(fmt.Sprintf("Cycles last %d minutes; %d minutes are allowed for falling asleep.",
		sleep.CycleMinutes, sleep.FallAsleepMinutes))
	hint.Importance = widget.LowImportance
	hint.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		header,
		modeRadio,
		container.NewHBox(hourSelect, widget.NewLabel(":"), minuteSelect, periodSelect, calcButton, nowButton),
		hint,
		mw.sleepResults,
	)
}

func (mw *MainWindow) showSleepResults(c sleep.Calculation) {
	mw.sleepResults.RemoveAll()

	verb := "Go to bed at"
	if c.Mode == sleep.ModeWakeup {
		verb = "Wake up at"
	}
	mw.sleepResults.Add(widget.NewLabel(fmt.Sprintf("%s one of these times (anchor %s):", verb, c.Anchor)))

	suggested := container.NewHBox()
	for _, t := range c.Suggested() {
		l := widget.NewLabelWithStyle(t, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		l.Importance = widget.SuccessImportance
		suggested.Add(l)
	}
	mw.sleepResults.Add(container.NewBorder(nil, nil, widget.NewLabel("Suggested:"), nil, suggested))

	others := container.NewHBox()
	for _, t := range c.Alternatives() {
		others.Add(widget.NewLabel(t))
	}
	mw.sleepResults.Add(container.NewBorder(nil, nil, widget.NewLabel("Also good:"), nil, others))
	mw.th.log.Debug("sleep calculation", zap.String("mode", string(c.Mode)), zap.Stringer("anchor", c.Anchor))
}

func (mw *MainWindow) buildAmbient() fyne.CanvasObject {
	sounds := audio.Catalog()
	names := make([]string, len(sounds))
	for i, s := range sounds {
		names[i] = s.Name
	}
	soundSelect := widget.NewSelect(names, nil)
	soundSelect.SetSelectedIndex(0)

	mw.ambientStatus = widget.NewLabel("")
	mw.ambientStatus.Wrapping = fyne.TextWrapWord
	mw.sleepLeftLabel = widget.NewLabel("")

	var play func()
	mw.ambientRetry = widget.NewButtonWithIcon("Retry", theme.ViewRefreshIcon(), func() { play() })
	mw.ambientRetry.Hide()

	play = func() {
		idx := soundSelect.SelectedIndex()
		if idx < 0 {
			return
		}
		sound := sounds[idx]
		mw.ambientStatus.SetText(fmt.Sprintf("Loading %s...", sound.Name))
		mw.ambientRetry.Hide()

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			err := mw.th.ambient.Play(ctx, sound.ID)
			fyne.Do(func() {
				switch {
				case err == nil:
					mw.ambientStatus.SetText(fmt.Sprintf("Playing %s", sound.Name))
					// Stop cancels the sleep timer; arm it again for the new sound
					if _, armed := mw.th.ambient.SleepRemaining(mw.th.clock.Now()); !armed && mw.th.config.SleepTimerMinutes > 0 {
						mw.th.ambient.SetSleepTimer(mw.th.config.SleepTimerMinutes)
					}
				case audio.IsRetryable(err):
					mw.ambientStatus.SetText("Could not download the sound. Check your connection.")
					mw.ambientRetry.Show()
				default:
					mw.ambientStatus.SetText(fmt.Sprintf("Could not play %s", sound.Name))
				}
			})
		}()
	}

	playButton := widget.NewButtonWithIcon("Play", theme.MediaPlayIcon(), play)
	playButton.Importance = widget.HighImportance
	stopButton := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), func() {
		mw.th.ambient.Stop()
		mw.ambientStatus.SetText("")
		mw.ambientRetry.Hide()
	})

	volume := widget.NewSlider(0, 100)
	volume.Step = 5
	volume.SetValue(mw.th.config.AmbientVolume * 100)
	volume.OnChanged = func(v float64) {
		mw.th.ambient.SetVolume(v / 100)
	}
	volume.OnChangeEnded = func(v float64) {
		mw.th.config.AmbientVolume = v / 100
		mw.th.saveConfig()
	}

	timerOptions := make([]string, len(sleepTimerOptions))
	for i, m := range sleepTimerOptions {
		timerOptions[i] = sleepTimerLabel(m)
	}
	sleepSelect := widget.NewSelect(timerOptions, nil)
	sleepSelect.SetSelected(sleepTimerLabel(mw.th.config.SleepTimerMinutes))
	sleepSelect.OnChanged = func(selected string) {
		for _, m := range sleepTimerOptions {
			if sleepTimerLabel(m) == selected {
				mw.th.ambient.SetSleepTimer(m)
				mw.th.config.SleepTimerMinutes = m
				mw.th.saveConfig()
				mw.refreshSleepTimer(mw.th.clock.Now())
				return
			}
		}
	}

	mw.th.ambient.OnChange(func(st ambient.State) {
		if st.SoundID != "" {
			return
		}
		fyne.Do(func() {
			if mw.ambientStatus.Text != "" && !mw.ambientRetry.Visible() {
				mw.ambientStatus.SetText("Stopped")
			}
		})
	})

	header := widget.NewLabelWithStyle("Ambient Sounds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	form := widget.NewForm(
		widget.NewFormItem("Sound", soundSelect),
		widget.NewFormItem("Volume", volume),
		widget.NewFormItem("Sleep timer", container.NewBorder(nil, nil, nil, mw.sleepLeftLabel, sleepSelect)),
	)

	return container.NewVBox(
		header,
		form,
		container.NewHBox(playButton, stopButton, mw.ambientRetry),
		mw.ambientStatus,
	)
}

func (mw *MainWindow) refreshSleepTimer(now time.Time) {
	if mw.sleepLeftLabel == nil {
		return
	}
	text := ""
	if left, ok := mw.th.ambient.SleepRemaining(now); ok {
		text = display.FormatCountdown(left) + " left"
	}
	if mw.sleepLeftLabel.Text != text {
		mw.sleepLeftLabel.SetText(text)
	}
}

func sleepTimerLabel(minutes int) string {
	if minutes <= 0 {
		return "Off"
	}
	return fmt.Sprintf("%d min", minutes)
}
