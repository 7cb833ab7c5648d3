package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/timehub/timehub/pkg/models"
)

// AlarmList shows the alarms with an enable check and a delete button per row,
// and an entry for adding new ones
type AlarmList struct {
	list     *widget.List
	alarms   []models.Alarm
	entry    *widget.Entry
	errLabel *widget.Label

	formatTime func(string) string
	onAdd      func(string) error // Returns error if validation fails
	onToggle   func(string)
	onDelete   func(string)
}

// AlarmListConfig configures the alarm list
type AlarmListConfig struct {
	FormatTime func(string) string // Renders a stored HH:MM time for display
	OnAdd      func(string) error  // Called with the entry text
	OnToggle   func(string)        // Called with the alarm id
	OnDelete   func(string)        // Called with the alarm id
}

// NewAlarmList creates the alarm list component
func NewAlarmList(config AlarmListConfig) (*AlarmList, *fyne.Container) {
	al := &AlarmList{
		formatTime: config.FormatTime,
		onAdd:      config.OnAdd,
		onToggle:   config.OnToggle,
		onDelete:   config.OnDelete,
	}

	al.list = widget.NewList(
		func() int {
			return len(al.alarms)
		},
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			label := widget.NewLabel("00:00")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
			return container.NewHBox(check, label, layout.NewSpacer(), remove)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(al.alarms) {
				return
			}
			a := al.alarms[i]
			row := o.(*fyne.Container)
			check := row.Objects[0].(*widget.Check)
			label := row.Objects[1].(*widget.Label)
			remove := row.Objects[3].(*widget.Button)

			check.OnChanged = nil
			check.SetChecked(a.Enabled)
			check.OnChanged = func(bool) {
				if al.onToggle != nil {
					al.onToggle(a.ID)
				}
			}

			text := a.Time
			if al.formatTime != nil {
				text = al.formatTime(a.Time)
			}
			if a.Triggered {
				text += "  (done today)"
			}
			label.SetText(text)

			remove.OnTapped = func() {
				if al.onDelete != nil {
					al.onDelete(a.ID)
				}
			}
		})

	al.entry = widget.NewEntry()
	al.entry.SetPlaceHolder("HH:MM (24-hour)")
	al.errLabel = widget.NewLabel("")
	al.errLabel.Importance = widget.DangerImportance
	al.errLabel.Hide()

	plusButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), al.submit)
	al.entry.OnSubmitted = func(string) { al.submit() }

	addControls := container.NewBorder(nil, nil, nil, plusButton, al.entry)

	// Wrap list in scroll with border
	listScroll := container.NewScroll(al.list)
	listScroll.SetMinSize(fyne.NewSize(0, 180))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		nil,
		nil,
		listScroll,
	)

	return al, container.NewVBox(addControls, al.errLabel, listWithBorder)
}

func (al *AlarmList) submit() {
	if al.onAdd == nil {
		return
	}
	if err := al.onAdd(al.entry.Text); err != nil {
		al.errLabel.SetText(err.Error())
		al.errLabel.Show()
		return
	}
	al.errLabel.Hide()
	al.entry.SetText("")
}

// SetAlarms replaces the displayed alarms
func (al *AlarmList) SetAlarms(alarms []models.Alarm) {
	al.alarms = alarms
	al.list.Refresh()
}

// Refresh redraws the rows, e.g. after the time format changed
func (al *AlarmList) Refresh() {
	al.list.Refresh()
}
