package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

func parseAlarmEvent(comp *ical.Component, stats *importStats, log *zap.Logger) (models.Alarm, bool) {
	a := models.Alarm{Enabled: true}

	// iCal UID becomes the alarm id
	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		a.ID = strings.TrimSpace(uidProp.Value)
	}

	summary := ""
	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		summary = summaryProp.Value
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil &&
		strings.EqualFold(statusProp.Value, "CANCELLED") {
		stats.skippedCancelled++
		log.Debug("skipping cancelled event", zap.String("summary", summary))
		return a, false
	}

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		stats.skippedMissingTime++
		log.Debug("skipping event without start", zap.String("summary", summary))
		return a, false
	}
	if startProp.ValueType() == ical.ValueDate {
		stats.skippedAllDay++
		log.Debug("skipping all-day event", zap.String("summary", summary))
		return a, false
	}
	start, err := parseDateTimeProperty(startProp, getTimezoneFromComponent(comp))
	if err != nil {
		stats.skippedMissingTime++
		log.Debug("skipping event with unreadable start", zap.String("summary", summary), zap.Error(err))
		return a, false
	}

	rule, err := comp.Props.RecurrenceRule()
	if err != nil || !isDaily(rule) {
		stats.skippedNotDaily++
		log.Debug("skipping event that does not repeat daily", zap.String("summary", summary))
		return a, false
	}

	if prop := comp.Props.Get(PropEnabled); prop != nil {
		a.Enabled = !strings.EqualFold(strings.TrimSpace(prop.Value), "FALSE")
	}
	a.Time = models.ClockTime(start)
	return a, true
}

// isDaily accepts an unbounded rule that fires every day. Alarms have no end
// date, so COUNT and UNTIL rules are skipped.
func isDaily(rule *rrule.ROption) bool {
	if rule == nil || rule.Freq != rrule.DAILY || rule.Interval > 1 {
		return false
	}
	if rule.Count > 0 || !rule.Until.IsZero() {
		return false
	}
	return len(rule.Byweekday) == 0 && len(rule.Bymonth) == 0 && len(rule.Bymonthday) == 0
}

func parseDateTimeProperty(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	// First try the standard DateTime method
	if t, err := prop.DateTime(loc); err == nil {
		return t.In(time.Local), nil
	}

	// If that fails, try parsing the raw value directly
	value := prop.Value

	formats := []string{
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102T150405Z",    // UTC format
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t.In(time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}
