package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

func (mw *MainWindow) buildSettingsTab() fyne.CanvasObject {
	current := mw.th.settings.Get()

	// Display settings go through the settings service so every view updates
	use12h := widget.NewCheck("12-hour clock", nil)
	use12h.SetChecked(current.Use12HourFormat)
	use12h.OnChanged = func(v bool) {
		mw.updateSetting(models.SettingUse12HourFormat, v)
	}

	showDate := widget.NewCheck("Show date", nil)
	showDate.SetChecked(current.ShowDate)
	showDate.OnChanged = func(v bool) {
		mw.updateSetting(models.SettingShowDate, v)
	}

	colorNames := make([]string, len(models.ClockColors))
	for i, c := range models.ClockColors {
		colorNames[i] = colorLabel(c)
	}
	colorSelect := widget.NewSelect(colorNames, nil)
	colorSelect.SetSelected(colorLabel(current.ClockColor))
	colorSelect.OnChanged = func(selected string) {
		mw.updateSetting(models.SettingClockColor, strings.ToLower(selected))
	}

	// App preferences
	holdOptions := make([]string, 10)
	for i := range holdOptions {
		holdOptions[i] = fmt.Sprintf("%d sec", i+1)
	}
	holdSelect := widget.NewSelect(holdOptions, nil)
	holdSelect.SetSelected(fmt.Sprintf("%d sec", mw.th.config.ClampHoldTime()))
	holdSelect.OnChanged = func(selected string) {
		var val int
		if _, err := fmt.Sscanf(selected, "%d sec", &val); err == nil {
			mw.th.config.HoldTimeSeconds = val
			mw.th.saveConfig()
		}
	}

	stopHotkey := widget.NewCheck("Ctrl+Shift+S stops a ringing alarm", nil)
	stopHotkey.SetChecked(mw.th.config.StopHotkey)
	stopHotkey.OnChanged = func(v bool) {
		mw.th.config.StopHotkey = v
		mw.th.saveConfig()
	}

	autoStart := widget.NewCheck("Launch at login", nil)
	autoStart.SetChecked(mw.th.config.AutoStart)
	autoStart.OnChanged = func(v bool) {
		mw.setAutostart(autoStart, v)
	}

	display := widget.NewForm(
		widget.NewFormItem("Clock", use12h),
		widget.NewFormItem("", showDate),
		widget.NewFormItem("Clock color", colorSelect),
	)
	alarms := widget.NewForm(
		widget.NewFormItem("Hold to stop", holdSelect),
		widget.NewFormItem("Hotkey", stopHotkey),
	)
	general := widget.NewForm(
		widget.NewFormItem("Startup", autoStart),
	)

	return container.NewVScroll(container.NewVBox(
		widget.NewCard("Display", "", display),
		widget.NewCard("Alarms", "", alarms),
		widget.NewCard("General", "", general),
	))
}

func (mw *MainWindow) setAutostart(check *widget.Check, enable bool) {
	if enable == mw.th.config.AutoStart {
		return
	}
	if err := setupAutostart(enable, mw.th.log); err != nil {
		mw.th.log.Error("failed to set autostart", zap.Error(err))
		dialog.ShowError(fmt.Errorf("failed to set autostart: %w", err), mw.window)
		// Reverting re-enters with the stored value and returns early
		check.SetChecked(mw.th.config.AutoStart)
		return
	}
	mw.th.config.AutoStart = enable
	mw.th.saveConfig()
}

func (mw *MainWindow) updateSetting(setting string, value any) {
	if err := mw.th.settings.Update(setting, value); err != nil {
		mw.th.log.Warn("failed to update setting", zap.String("setting", setting), zap.Error(err))
		dialog.ShowError(err, mw.window)
	}
}

func colorLabel(c models.ClockColor) string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
