package calendar

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// Outlook exports Windows zone names in TZID; map the common ones to IANA
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"Atlantic Standard Time":       "America/Halifax",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"GMT Standard Time":            "Europe/London",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Central Europe Standard Time": "Europe/Budapest",
	"Romance Standard Time":        "Europe/Paris",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

// normalizeComponentTimezones rewrites a Windows TZID on DTSTART to its IANA name
func normalizeComponentTimezones(comp *ical.Component) {
	if dtstart := comp.Props.Get(ical.PropDateTimeStart); dtstart != nil {
		if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
			if ianaName, ok := windowsToIANA[tzid]; ok {
				dtstart.Params.Set(ical.ParamTimezoneID, ianaName)
			}
		}
	}
}

// getTimezoneFromComponent picks the zone DTSTART is expressed in. Floating
// times resolve to the local zone.
func getTimezoneFromComponent(comp *ical.Component) *time.Location {
	if dtstart := comp.Props.Get(ical.PropDateTimeStart); dtstart != nil {
		if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
			if loc, err := time.LoadLocation(tzid); err == nil {
				return loc
			}
		}

		if strings.HasSuffix(dtstart.Value, "Z") {
			return time.UTC
		}
	}

	return time.Local
}
