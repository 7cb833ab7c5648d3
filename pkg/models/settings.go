package models

// ClockColor is the accent color of the clock face
type ClockColor string

const (
	ClockColorDefault ClockColor = "default"
	ClockColorBlue    ClockColor = "blue"
	ClockColorGreen   ClockColor = "green"
	ClockColorPurple  ClockColor = "purple"
	ClockColorRed     ClockColor = "red"
)

// ClockColors lists the selectable colors in display order
var ClockColors = []ClockColor{
	ClockColorDefault,
	ClockColorBlue,
	ClockColorGreen,
	ClockColorPurple,
	ClockColorRed,
}

// Setting keys carried by SettingChange
const (
	SettingUse12HourFormat = "use12HourFormat"
	SettingShowDate        = "showDate"
	SettingClockColor      = "clockColor"
)

// Settings holds the clock display settings
type Settings struct {
	Use12HourFormat bool       `json:"use12HourFormat"`
	ShowDate        bool       `json:"showDate"`
	ClockColor      ClockColor `json:"clockColor" validate:"oneof=default blue green purple red"`
}

// DefaultSettings returns the display settings used when nothing valid is stored
func DefaultSettings() Settings {
	return Settings{
		Use12HourFormat: true,
		ShowDate:        true,
		ClockColor:      ClockColorDefault,
	}
}

// SettingChange is delivered to subscribers after a setting is updated
type SettingChange struct {
	Setting string
	Value   any
}
