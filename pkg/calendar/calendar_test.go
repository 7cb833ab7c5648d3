package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

func TestExportAlarms_WritesDailyEvents(t *testing.T) {
	alarms := []models.Alarm{
		{ID: "a1", Time: "07:30", Enabled: true},
		{ID: "a2", Time: "22:05", Enabled: false, Triggered: true},
	}
	var buf bytes.Buffer
	require.NoError(t, ExportAlarms(&buf, alarms, time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(out, "RRULE:FREQ=DAILY"))
	assert.Equal(t, 2, strings.Count(out, "ACTION:AUDIO"))
	assert.Contains(t, out, "DTSTART:20260504T073000")
	assert.Contains(t, out, "DTSTART:20260504T220500")
	assert.NotContains(t, out, "TZID")
	assert.Contains(t, out, PropEnabled+":TRUE")
	assert.Contains(t, out, PropEnabled+":FALSE")
}

func TestExportAlarms_RejectsBadTime(t *testing.T) {
	var buf bytes.Buffer
	err := ExportAlarms(&buf, []models.Alarm{{ID: "x", Time: "25:99"}}, time.Now())
	assert.Error(t, err)
}

func TestImportAlarms_ReadsExport(t *testing.T) {
	alarms := []models.Alarm{
		{ID: "a1", Time: "07:30", Enabled: true},
		{ID: "a2", Time: "22:05", Enabled: false, Triggered: true},
	}
	var buf bytes.Buffer
	require.NoError(t, ExportAlarms(&buf, alarms, time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)))

	got, err := ImportAlarms(&buf, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []models.Alarm{
		{ID: "a1", Time: "07:30", Enabled: true},
		{ID: "a2", Time: "22:05", Enabled: false},
	}, got)
}

const mixedCalendar = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Other//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:daily\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T063000\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"SUMMARY:Wake up\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:bounded\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T064500\r\n" +
	"RRULE:FREQ=DAILY;COUNT=30\r\n" +
	"SUMMARY:Training plan\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T090000\r\n" +
	"RRULE:FREQ=WEEKLY;BYDAY=MO\r\n" +
	"SUMMARY:Standup\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:once\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T100000\r\n" +
	"SUMMARY:Dentist\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20260501\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"SUMMARY:Holiday\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:cancelled\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T110000\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:tokyo\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART;TZID=Tokyo Standard Time:20260501T080000\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:daily\r\n" +
	"DTSTAMP:20260501T000000Z\r\n" +
	"DTSTART:20260501T063000\r\n" +
	"RRULE:FREQ=DAILY\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportAlarms_SkipsNonDailyEvents(t *testing.T) {
	got, err := ImportAlarms(strings.NewReader(mixedCalendar), zap.NewNop())
	require.NoError(t, err)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	tokyoLocal := models.ClockTime(time.Date(2026, time.May, 1, 8, 0, 0, 0, tokyo).In(time.Local))

	assert.Equal(t, []models.Alarm{
		{ID: "daily", Time: "06:30", Enabled: true},
		{ID: "tokyo", Time: tokyoLocal, Enabled: true},
	}, got)
}

func TestImportAlarms_RejectsNonCalendar(t *testing.T) {
	_, err := ImportAlarms(strings.NewReader("<!DOCTYPE html><html></html>"), zap.NewNop())
	assert.ErrorContains(t, err, "HTML")

	_, err = ImportAlarms(strings.NewReader("id,time\n1,07:00\n"), zap.NewNop())
	assert.ErrorContains(t, err, "BEGIN:VCALENDAR")
}

func TestImportAlarms_AcceptsByteOrderMark(t *testing.T) {
	got, err := ImportAlarms(strings.NewReader("\ufeff"+mixedCalendar), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestImportAlarms_SkipsBoundedDailyRules(t *testing.T) {
	cal := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Other//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:count\r\n" +
		"DTSTAMP:20260501T000000Z\r\n" +
		"DTSTART:20260501T063000\r\n" +
		"RRULE:FREQ=DAILY;COUNT=5\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:until\r\n" +
		"DTSTAMP:20260501T000000Z\r\n" +
		"DTSTART:20260501T070000\r\n" +
		"RRULE:FREQ=DAILY;UNTIL=20260601T000000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:forever\r\n" +
		"DTSTAMP:20260501T000000Z\r\n" +
		"DTSTART:20260501T073000\r\n" +
		"RRULE:FREQ=DAILY;INTERVAL=1\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	got, err := ImportAlarms(strings.NewReader(cal), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []models.Alarm{{ID: "forever", Time: "07:30", Enabled: true}}, got)
}
