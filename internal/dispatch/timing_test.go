package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSendTime_AcceptedForms(t *testing.T) {
	cases := []struct {
		raw      string
		hour     int
		minute   int
	}{
		{"14:30", 14, 30},
		{"2:30 PM", 14, 30},
		{"2:30 pm", 14, 30},
		{"14.30", 14, 30},
		{"2.30 PM", 14, 30},
		{"09:05", 9, 5},
		{"9:05 AM", 9, 5},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			parsed, err := ParseSendTime(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.hour, parsed.Hour())
			assert.Equal(t, tc.minute, parsed.Minute())
		})
	}
}

func TestParseSendTime_Invalid(t *testing.T) {
	for _, raw := range []string{"", "noon", "25:00", "2026-01-01 14:30"} {
		_, err := ParseSendTime(raw)
		assert.Error(t, err, raw)
	}
}

func TestDueNow_GateOpensAtScheduledTime(t *testing.T) {
	scheduled, err := ParseSendTime("14:30")
	require.NoError(t, err)

	exact := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	assert.True(t, DueNow(scheduled, exact))
	assert.True(t, DueNow(scheduled, exact.Add(2*time.Hour)))
	assert.False(t, DueNow(scheduled, exact.Add(-time.Second)))
}

func TestDueNow_IgnoresDate(t *testing.T) {
	scheduled, err := ParseSendTime("08:00")
	require.NoError(t, err)

	now := time.Date(1999, 12, 31, 8, 0, 0, 0, time.Local)
	assert.True(t, DueNow(scheduled, now))
}
