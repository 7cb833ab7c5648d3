package main

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/alarm"
	"github.com/timehub/timehub/pkg/calendar"
	"github.com/timehub/timehub/pkg/display"
	"github.com/timehub/timehub/pkg/ui/components"
)

func (mw *MainWindow) buildClockTab() fyne.CanvasObject {
	mw.clockText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	mw.clockText.TextSize = 64
	mw.clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mw.clockText.Alignment = fyne.TextAlignCenter

	mw.dateLabel = widget.NewLabel("")
	mw.dateLabel.Alignment = fyne.TextAlignCenter

	list, listContainer := components.NewAlarmList(components.AlarmListConfig{
		FormatTime: func(hhmm string) string {
			return alarmDisplayTime(hhmm, mw.th.settings.Get().Use12HourFormat)
		},
		OnAdd: func(text string) error {
			if _, err := mw.th.scheduler.Add(text); err != nil {
				if errors.Is(err, alarm.ErrInvalidTime) {
					return fmt.Errorf("enter a time like 07:30")
				}
				return err
			}
			mw.refreshAlarms()
			mw.th.updateSystemTrayMenu()
			return nil
		},
		OnToggle: func(id string) {
			if _, err := mw.th.scheduler.Toggle(id); err != nil {
				dialog.ShowError(err, mw.window)
			}
			mw.refreshAlarms()
			mw.th.updateSystemTrayMenu()
		},
		OnDelete: func(id string) {
			if err := mw.th.scheduler.Delete(id); err != nil {
				dialog.ShowError(err, mw.window)
			}
			mw.refreshAlarms()
			mw.th.updateSystemTrayMenu()
			if _, ringing := mw.th.scheduler.Active(); !ringing && mw.th.alarmWindow != nil {
				mw.th.alarmWindow.Close()
				mw.th.alarmWindow = nil
			}
		},
	})
	mw.alarmList = list

	importButton := widget.NewButtonWithIcon("Import", theme.DownloadIcon(), mw.showImportDialog)
	exportButton := widget.NewButtonWithIcon("Export", theme.UploadIcon(), mw.showExportDialog)

	header := widget.NewLabelWithStyle("Alarms", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	alarmsHeader := container.NewBorder(nil, nil, header, container.NewHBox(importButton, exportButton))

	return container.NewBorder(
		container.NewVBox(container.NewPadded(mw.clockText), mw.dateLabel, widget.NewSeparator(), alarmsHeader),
		nil, nil, nil,
		container.NewPadded(listContainer),
	)
}

func (mw *MainWindow) refreshClock(now time.Time) {
	if mw.clockText == nil {
		return
	}
	s := mw.th.settings.Get()
	mw.clockText.Text = display.FormatClock(now, s.Use12HourFormat)
	if c := display.ClockColorRGBA(s.ClockColor); c != nil {
		mw.clockText.Color = c
	} else {
		mw.clockText.Color = theme.Color(theme.ColorNameForeground)
	}
	mw.clockText.Refresh()

	if s.ShowDate {
		mw.dateLabel.SetText(display.FormatDate(now))
		mw.dateLabel.Show()
	} else {
		mw.dateLabel.Hide()
	}
}

func (mw *MainWindow) refreshAlarms() {
	if mw.alarmList == nil {
		return
	}
	mw.alarmList.SetAlarms(mw.th.scheduler.Alarms())
}

func (mw *MainWindow) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()

		drafts, err := calendar.ImportAlarms(r, mw.th.log.Named("calendar"))
		if err != nil {
			mw.th.log.Warn("alarm import failed", zap.String("uri", r.URI().String()), zap.Error(err))
			dialog.ShowError(err, mw.window)
			return
		}
		added := mw.th.scheduler.Import(drafts)
		mw.refreshAlarms()
		mw.th.updateSystemTrayMenu()
		dialog.ShowInformation("Import",
			fmt.Sprintf("Imported %d of %d alarms", added, len(drafts)), mw.window)
	}, mw.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	d.Show()
}

func (mw *MainWindow) showExportDialog() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		alarms := mw.th.scheduler.Alarms()
		if err := calendar.ExportAlarms(w, alarms, mw.th.clock.Now()); err != nil {
			mw.th.log.Error("alarm export failed", zap.Error(err))
			dialog.ShowError(err, mw.window)
			return
		}
		mw.th.log.Info("alarms exported", zap.Int("count", len(alarms)), zap.String("uri", w.URI().String()))
	}, mw.window)
	d.SetFileName("timehub-alarms.ics")
	d.Show()
}
