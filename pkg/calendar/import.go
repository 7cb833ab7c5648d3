package calendar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/models"
)

// ImportAlarms reads VEVENTs into alarm drafts. Events that do not repeat
// daily forever (COUNT or UNTIL bounded rules included), all-day events and
// cancelled events are skipped. Drafts keep the event UID as their id so
// importing the same file twice adds nothing.
func ImportAlarms(r io.Reader, log *zap.Logger) ([]models.Alarm, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(3); string(bom) == "\ufeff" {
		_, _ = br.Discard(3)
	}
	if err := validateICalFormat(br); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(br)
	alarms := []models.Alarm{}
	seen := make(map[string]bool)
	stats := &importStats{}

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			normalizeComponentTimezones(comp)
			a, ok := parseAlarmEvent(comp, stats, log)
			if !ok {
				continue
			}
			if a.ID != "" && seen[a.ID] {
				stats.skippedDuplicates++
				continue
			}
			seen[a.ID] = true
			alarms = append(alarms, a)
		}
	}

	stats.logSummary(log, len(alarms))
	return alarms, nil
}

func validateICalFormat(br *bufio.Reader) error {
	head, _ := br.Peek(512)
	body := strings.TrimSpace(string(head))

	// Check if the file is HTML instead of iCalendar
	upper := strings.ToUpper(body)
	if strings.HasPrefix(upper, "<!DOCTYPE") || strings.HasPrefix(upper, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data")
	}

	if !strings.HasPrefix(upper, "BEGIN:VCALENDAR") {
		previewLen := 100
		if len(body) < previewLen {
			previewLen = len(body)
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", body[:previewLen])
	}
	return nil
}
