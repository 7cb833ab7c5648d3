package main

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/timehub/timehub/pkg/models"
	"github.com/timehub/timehub/pkg/platform"
	"github.com/timehub/timehub/pkg/ui/components"
)

// refreshInterval drives the on-screen clock, timer and stopwatch
const refreshInterval = 50 * time.Millisecond

type MainWindow struct {
	th     *TimeHub
	window fyne.Window

	// Clock tab
	clockText *canvas.Text
	dateLabel *widget.Label
	alarmList *components.AlarmList

	// Timer tab
	timerText   *canvas.Text
	timerStart  *widget.Button
	timerMin    *widget.Entry
	timerSec    *widget.Entry
	timerStatus *widget.Label

	// Stopwatch tab
	stopwatchText  *canvas.Text
	stopwatchStart *widget.Button
	lapButton      *widget.Button
	lapList        *widget.List

	// Sleep tab
	sleepResults   *fyne.Container
	ambientStatus  *widget.Label
	ambientRetry   *widget.Button
	sleepLeftLabel *widget.Label

	lastSecond  int64
	lastMinute  int64
	stopOnce    sync.Once
	stopRefresh func()
}

func NewMainWindow(th *TimeHub) *MainWindow {
	mw := &MainWindow{th: th}

	mw.window = th.app.NewWindow("TimeHub")
	mw.buildUI()

	th.settings.Subscribe(func(change models.SettingChange) {
		fyne.Do(func() {
			mw.applySettings()
			th.updateSystemTrayMenu()
		})
	})

	done := make(chan struct{})
	mw.stopRefresh = func() {
		mw.stopOnce.Do(func() { close(done) })
	}
	go mw.refreshLoop(done)

	return mw
}

func (mw *MainWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Clock", mw.buildClockTab()),
		container.NewTabItem("Timer", mw.buildTimerTab()),
		container.NewTabItem("Stopwatch", mw.buildStopwatchTab()),
		container.NewTabItem("Sleep", mw.buildSleepTab()),
		container.NewTabItem("Settings", mw.buildSettingsTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(tabs)
	mw.window.Resize(fyne.NewSize(720, 640))
	mw.window.CenterOnScreen()
	mw.setupKeyboardShortcuts()

	// Closing the window keeps the app running in the tray
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
		platform.SetDockIconVisible(false)
	})

	mw.applySettings()
	mw.refreshAlarms()
}

func (mw *MainWindow) Show() {
	mw.window.Show()
	mw.window.RequestFocus()
}

func (mw *MainWindow) refreshLoop(done <-chan struct{}) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			now := mw.th.clock.Now()
			if mw.th.countdown.Tick(now) {
				go mw.th.playTimerDone()
			}
			fyne.Do(func() {
				mw.refresh(now)
			})
		}
	}
}

func (mw *MainWindow) refresh(now time.Time) {
	if sec := now.Unix(); sec != mw.lastSecond {
		mw.lastSecond = sec
		mw.refreshClock(now)
		mw.refreshSleepTimer(now)
	}
	if minute := now.Unix() / 60; minute != mw.lastMinute {
		mw.lastMinute = minute
		mw.refreshAlarms()
		mw.th.updateSystemTrayMenu()
	}
	mw.refreshTimer(now)
	mw.refreshStopwatch(now)
}

// applySettings re-renders everything that depends on the display settings
func (mw *MainWindow) applySettings() {
	mw.refreshClock(mw.th.clock.Now())
	if mw.alarmList != nil {
		mw.alarmList.Refresh()
	}
}

func (mw *MainWindow) setupKeyboardShortcuts() {
	mw.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.window.Hide()
			platform.SetDockIconVisible(false)
		}
	})
}
