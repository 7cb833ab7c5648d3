package main

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
	"golang.design/x/hotkey"

	"github.com/timehub/timehub/pkg/display"
	"github.com/timehub/timehub/pkg/models"
	"github.com/timehub/timehub/pkg/platform"
	"github.com/timehub/timehub/pkg/ui/components"
)

// AlarmWindow is the full-screen window shown while an alarm rings
type AlarmWindow struct {
	th     *TimeHub
	window fyne.Window
	alarm  models.Alarm
	log    *zap.Logger

	mu             sync.Mutex
	stopHotkey     *hotkey.Hotkey
	stopMonitoring chan struct{}
	closeOnce      sync.Once
}

func NewAlarmWindow(th *TimeHub, a models.Alarm) *AlarmWindow {
	aw := &AlarmWindow{
		th:             th,
		alarm:          a,
		log:            th.log.With(zap.String("alarm_id", a.ID)),
		stopMonitoring: make(chan struct{}),
	}

	aw.window = th.app.NewWindow("Alarm")
	aw.window.SetFullScreen(true)
	aw.buildUI()

	// Only the hold button, the hotkey or the tray can dismiss a ringing alarm
	aw.window.SetCloseIntercept(func() {
		aw.log.Debug("close request ignored while alarm rings")
	})

	if th.config.StopHotkey {
		aw.registerStopHotkey()
	}
	if platform.FocusSupported {
		aw.setupFocusMonitoring()
	}

	aw.window.SetOnClosed(func() {
		// Stop monitoring first
		close(aw.stopMonitoring)

		aw.mu.Lock()
		hk := aw.stopHotkey
		aw.stopHotkey = nil
		aw.mu.Unlock()
		if hk != nil {
			if err := hk.Unregister(); err != nil {
				aw.log.Debug("failed to unregister stop hotkey", zap.Error(err))
			}
		}
	})

	return aw
}

func (aw *AlarmWindow) buildUI() {
	use12h := aw.th.settings.Get().Use12HourFormat

	title := canvas.NewText(alarmDisplayTime(aw.alarm.Time, use12h), theme.Color(theme.ColorNameForeground))
	title.TextSize = 96
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	if c := display.ClockColorRGBA(aw.th.settings.Get().ClockColor); c != nil {
		title.Color = c
	}

	subtitle := widget.NewLabel("Alarm")
	subtitle.Alignment = fyne.TextAlignCenter

	hold := aw.th.config.ClampHoldTime()
	stopButton := components.NewHoldButton(
		fmt.Sprintf("Stop (Hold %ds)", hold),
		time.Duration(hold)*time.Second,
		aw.th.stopAlarm,
	)

	content := container.NewVBox(
		container.NewPadded(title),
		subtitle,
		widget.NewSeparator(),
		container.NewCenter(stopButton),
	)
	if aw.th.config.StopHotkey {
		hint := widget.NewLabel("or press Ctrl+Shift+S")
		hint.Alignment = fyne.TextAlignCenter
		hint.Importance = widget.LowImportance
		content.Add(hint)
	}

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *AlarmWindow) Show() {
	aw.window.Show()
	aw.window.RequestFocus()
}

// Close closes the window without touching the alarm state
func (aw *AlarmWindow) Close() {
	aw.closeOnce.Do(aw.window.Close)
}

func (aw *AlarmWindow) registerStopHotkey() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyS)
		if err := hk.Register(); err != nil {
			aw.log.Warn("failed to register stop hotkey", zap.Error(err))
			return
		}

		aw.mu.Lock()
		select {
		case <-aw.stopMonitoring:
			// Window closed while registering
			aw.mu.Unlock()
			_ = hk.Unregister()
			return
		default:
		}
		aw.stopHotkey = hk
		aw.mu.Unlock()

		for {
			select {
			case <-aw.stopMonitoring:
				return
			case _, ok := <-hk.Keydown():
				if !ok {
					return
				}
				aw.log.Info("alarm stopped with hotkey")
				aw.th.stopAlarm()
				return
			}
		}
	}()
}

func (aw *AlarmWindow) setupFocusMonitoring() {
	// Keep the alarm in front until it is stopped
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-aw.stopMonitoring:
				aw.log.Debug("stopping focus monitoring")
				return
			case <-ticker.C:
				if platform.IsFrontmost() {
					continue
				}
				aw.log.Debug("alarm window not active - bringing to front")
				platform.BringToFront()
				fyne.Do(func() {
					select {
					case <-aw.stopMonitoring:
					default:
						aw.window.Show()
					}
				})
			}
		}
	}()
}

// alarmDisplayTime renders a stored HH:MM alarm time in the chosen clock format
func alarmDisplayTime(hhmm string, use12h bool) string {
	t, err := time.Parse(models.ClockTimeLayout, hhmm)
	if err != nil {
		return hhmm
	}
	if use12h {
		return t.Format("3:04 PM")
	}
	return t.Format(models.ClockTimeLayout)
}
