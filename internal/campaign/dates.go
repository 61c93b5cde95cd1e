package campaign

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dateTimeLayouts lists the accepted campaign date-time forms, ISO first,
// then the natural forms marketing staff type into the sheet
// ("1 Nov 2025 9:00", "Nov 1, 2025 9am", "1st November 2025 09:00 AM").
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"2 Jan 2006 3:04 PM",
	"2 Jan 2006 3:04PM",
	"2 Jan 2006 3:04 pm",
	"2 Jan 2006 3:04pm",
	"2 Jan 2006 3PM",
	"2 Jan 2006 3pm",
	"2 Jan 2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 3:04pm",
	"Jan 2, 2006 3PM",
	"Jan 2, 2006 3pm",
	"Jan 2, 2006",
	"2 January 2006 15:04",
	"2 January 2006 3:04 PM",
	"2 January 2006 3:04 pm",
	"2 January 2006",
	"January 2, 2006 15:04",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
}

var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// ParseDateTime parses a campaign start/end cell leniently. Values without an
// explicit offset are interpreted in local time, matching the sheet's
// convention.
func ParseDateTime(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("date-time value is empty")
	}
	v = ordinalSuffix.ReplaceAllString(v, "$1")

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date-time: %q", value)
}
