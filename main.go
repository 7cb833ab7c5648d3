package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/alarm"
	"github.com/timehub/timehub/pkg/ambient"
	"github.com/timehub/timehub/pkg/audio"
	"github.com/timehub/timehub/pkg/clock"
	"github.com/timehub/timehub/pkg/config"
	"github.com/timehub/timehub/pkg/logger"
	"github.com/timehub/timehub/pkg/models"
	"github.com/timehub/timehub/pkg/platform"
	"github.com/timehub/timehub/pkg/settings"
	"github.com/timehub/timehub/pkg/stopwatch"
	"github.com/timehub/timehub/pkg/store"
	"github.com/timehub/timehub/pkg/timer"
)

type TimeHub struct {
	app   fyne.App
	env   config.Env
	log   *zap.Logger
	clock clock.Clock

	configStore *store.ConfigStore
	config      *models.Config

	engine    *audio.Engine
	scheduler *alarm.Scheduler
	settings  *settings.Service
	countdown *timer.Countdown
	stopwatch *stopwatch.Stopwatch
	ambient   *ambient.Controller

	timerMu    sync.Mutex
	timerSound audio.Playback

	mainWindow  *MainWindow
	alarmWindow *AlarmWindow
	cancel      context.CancelFunc
}

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	th := newTimeHub(app.NewWithID(env.AppID), env, log)
	th.initialize()
	th.run()
}

func newTimeHub(a fyne.App, env config.Env, log *zap.Logger) *TimeHub {
	th := &TimeHub{
		app:   a,
		env:   env,
		log:   log,
		clock: clock.Real{},
	}

	prefs := a.Preferences()
	th.configStore = store.NewConfigStore(prefs, log)
	th.config = th.configStore.Load()

	th.engine = audio.NewEngine(log.Named("audio"))
	th.scheduler = alarm.NewScheduler(
		store.NewAlarmStore(prefs, log),
		log.Named("alarm"),
		alarm.WithClock(th.clock),
		alarm.WithRinger(th.ringAlarm),
	)
	th.settings = settings.NewService(th.configStore, log.Named("settings"))
	th.countdown = timer.NewCountdown(th.clock, time.Duration(th.config.TimerDuration)*time.Second)
	th.stopwatch = stopwatch.New(th.clock)

	fetcher := audio.NewFetcher(env.AudioCacheDir, env.FetchRetries, env.FetchTimeout, log.Named("fetch"))
	th.ambient = ambient.NewController(th.engine, audio.NewLibrary(fetcher, log.Named("library")),
		th.clock, th.config.AmbientVolume, log.Named("ambient"))

	return th
}

func (th *TimeHub) initialize() {
	// Sync autostart state with config on startup
	if err := setupAutostart(th.config.AutoStart, th.log); err != nil {
		th.log.Warn("failed to setup autostart", zap.Error(err))
	}
	th.configStore.Save(th.config)

	th.scheduler.OnFire(func(a models.Alarm) {
		fyne.Do(func() {
			th.showAlarm(a)
			th.updateSystemTrayMenu()
		})
	})

	th.mainWindow = NewMainWindow(th)
	th.setupSystemTray()

	ctx, cancel := context.WithCancel(context.Background())
	th.cancel = cancel
	go th.scheduler.Run(ctx, th.env.TickInterval)
}

func (th *TimeHub) run() {
	th.app.Lifecycle().SetOnStarted(func() {
		th.log.Info("timehub started", zap.Int("alarms", len(th.scheduler.Alarms())))
		th.mainWindow.Show()
	})
	th.app.Run()
}

// ringAlarm starts the looping chime. The alarm still fires when audio fails.
func (th *TimeHub) ringAlarm() (alarm.Sound, error) {
	pb, err := th.engine.Play(audio.Chime(), true)
	if err != nil {
		return nil, err
	}
	return pb, nil
}

// playTimerDone loops the chime once the countdown reaches zero, until
// silenceTimer is called
func (th *TimeHub) playTimerDone() {
	th.app.SendNotification(fyne.NewNotification("Timer", "Time is up"))

	pb, err := th.engine.Play(audio.Chime(), true)
	if err != nil {
		th.log.Warn("failed to play timer sound", zap.Error(err))
		return
	}
	th.timerMu.Lock()
	prev := th.timerSound
	th.timerSound = pb
	th.timerMu.Unlock()
	if prev != nil {
		prev.Stop()
	}
}

func (th *TimeHub) silenceTimer() {
	th.timerMu.Lock()
	pb := th.timerSound
	th.timerSound = nil
	th.timerMu.Unlock()
	if pb != nil {
		pb.Stop()
	}
}

func (th *TimeHub) showAlarm(a models.Alarm) {
	if th.alarmWindow != nil {
		th.alarmWindow.Close()
	}
	th.alarmWindow = NewAlarmWindow(th, a)
	th.alarmWindow.Show()
}

// stopAlarm silences the active alarm from any surface: window, hotkey or tray
func (th *TimeHub) stopAlarm() {
	id, ok := th.scheduler.Stop()
	if ok {
		th.log.Info("alarm stopped", zap.String("alarm_id", id))
	}
	fyne.Do(func() {
		if th.alarmWindow != nil {
			w := th.alarmWindow
			th.alarmWindow = nil
			w.Close()
		}
		th.mainWindow.refreshAlarms()
		th.updateSystemTrayMenu()
	})
}

func (th *TimeHub) saveConfig() {
	th.configStore.Save(th.config)
}

func (th *TimeHub) showMainWindow() {
	platform.SetDockIconVisible(true)
	th.mainWindow.Show()
}

func (th *TimeHub) quit() {
	if th.cancel != nil {
		th.cancel()
	}
	th.scheduler.Stop()
	th.silenceTimer()
	th.ambient.Stop()
	th.mainWindow.stopRefresh()
	th.app.Quit()
}
