package campaign

import (
	"strings"
	"time"
)

// Status is the campaign lifecycle state. It is a pure function of the
// campaign's time window and the current time, never stored ground truth.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusUpcoming Status = "UPCOMING"
	StatusInactive Status = "INACTIVE"
	StatusNone     Status = ""
)

// ComputeStatus evaluates the time window against now. The precedence is
// fixed: active wins inside [start, end), then ended, then not yet started.
// The branches are exhaustive; the empty fallback exists for robustness only.
func ComputeStatus(start, end, now time.Time) Status {
	switch {
	case !now.Before(start) && now.Before(end):
		return StatusActive
	case !now.Before(end):
		return StatusInactive
	case start.After(now):
		return StatusUpcoming
	}
	return StatusNone
}

// Live reports whether the campaign should be targeted and dispatched.
func (s Status) Live() bool {
	return s == StatusActive || s == StatusUpcoming
}

// ParseStatus reads a stored status cell, tolerating case and whitespace.
// Anything unrecognized maps to StatusNone.
func ParseStatus(raw string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive
	case StatusUpcoming:
		return StatusUpcoming
	case StatusInactive:
		return StatusInactive
	}
	return StatusNone
}

func (s Status) String() string {
	return string(s)
}
