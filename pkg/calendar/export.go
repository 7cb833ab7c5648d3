// Package calendar exchanges alarms with other calendar apps as iCalendar
// files: every alarm becomes a daily recurring event with an audio reminder.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/timehub/timehub/pkg/models"
)

const (
	productID = "-//TimeHub//Alarms//EN"

	// PropEnabled carries the alarm's on/off state, which iCalendar has no field for
	PropEnabled = "X-TIMEHUB-ENABLED"

	alarmSummary = "Alarm"

	floatingLayout = "20060102T150405"
)

// ExportAlarms writes alarms as an iCalendar document. Each event starts on
// day at the alarm's wall-clock time, in floating local time, and repeats daily.
func ExportAlarms(w io.Writer, alarms []models.Alarm, day time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := time.Now().UTC()
	for _, a := range alarms {
		event, err := alarmEvent(a, day, stamp)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

func alarmEvent(a models.Alarm, day, stamp time.Time) (*ical.Event, error) {
	minute, err := a.MinuteOfDay()
	if err != nil {
		return nil, fmt.Errorf("alarm %s: %w", a.ID, err)
	}
	local := day.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), minute/60, minute%60, 0, 0, time.Local)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, a.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	// Floating DTSTART with no TZID; the alarm follows the wall clock
	dtstart := ical.NewProp(ical.PropDateTimeStart)
	dtstart.Value = start.Format(floatingLayout)
	event.Props.Set(dtstart)
	event.Props.SetText(ical.PropSummary, alarmSummary+" "+a.Time)
	event.Props.SetRecurrenceRule(&rrule.ROption{Freq: rrule.DAILY})

	enabled := ical.NewProp(PropEnabled)
	enabled.Value = strings.ToUpper(fmt.Sprint(a.Enabled))
	event.Props.Set(enabled)

	reminder := ical.NewComponent(ical.CompAlarm)
	reminder.Props.SetText(ical.PropAction, "AUDIO")
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = "PT0S"
	reminder.Props.Set(trigger)
	event.Children = append(event.Children, reminder)

	return event, nil
}
