package dispatch

import (
	"fmt"
	"strings"
	"time"
)

// sendTimeLayouts are the accepted time-of-day forms for a message slot's
// send timing cell.
var sendTimeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04 pm",
	"15.04",
	"3.04 PM",
	"3.04 pm",
}

// ParseSendTime parses a time-only timing cell.
func ParseSendTime(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("send timing is empty")
	}
	for _, layout := range sendTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse send timing: %q", value)
}

// DueNow reports whether the scheduled time of day has been reached. There is
// no scheduler behind this: the trigger evaluates once per run and either
// sends now or leaves the slot for a later run.
func DueNow(scheduled, now time.Time) bool {
	schedSecs := scheduled.Hour()*3600 + scheduled.Minute()*60 + scheduled.Second()
	nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	return nowSecs >= schedSecs
}
