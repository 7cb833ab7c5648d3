package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func (th *TimeHub) setupSystemTray() {
	th.updateSystemTrayMenu()
}

func (th *TimeHub) updateSystemTrayMenu() {
	desk, ok := th.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Ringing alarm or the next one at the top
	if active, ringing := th.scheduler.Active(); ringing {
		header := fyne.NewMenuItem(fmt.Sprintf("Ringing: %s", alarmDisplayTime(active.Time, th.settings.Get().Use12HourFormat)), nil)
		header.Disabled = true
		menuItems = append(menuItems, header,
			fyne.NewMenuItem("Stop Alarm", func() {
				th.stopAlarm()
			}),
		)
	} else {
		menuItems = append(menuItems, th.nextAlarmItem())
	}
	menuItems = append(menuItems, fyne.NewMenuItemSeparator())

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show TimeHub", func() {
			th.showMainWindow()
		}),
	)

	quitItem := fyne.NewMenuItem("Quit", func() {
		th.quit()
	})
	quitItem.IsQuit = true
	menuItems = append(menuItems, fyne.NewMenuItemSeparator(), quitItem)

	menu := fyne.NewMenu("TimeHub", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

func (th *TimeHub) nextAlarmItem() *fyne.MenuItem {
	text := "No alarms set"
	if a, at, ok := th.scheduler.Next(th.clock.Now()); ok {
		day := "Today"
		if at.Day() != th.clock.Now().Day() {
			day = "Tomorrow"
		}
		text = fmt.Sprintf("Next: %s %s", day, alarmDisplayTime(a.Time, th.settings.Get().Use12HourFormat))
	}
	item := fyne.NewMenuItem(text, nil)
	item.Disabled = true
	return item
}
