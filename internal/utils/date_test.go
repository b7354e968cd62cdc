package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampAcceptedLayouts(t *testing.T) {
	cases := []string{
		"2026-03-15T09:30:00Z",
		"2026-03-15T09:30:00+04:00",
		"2026-03-15T09:30:00",
		"2026-03-15T09:30",
		"2026-03-15",
	}
	for _, value := range cases {
		parsed, err := ParseTimestamp(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, time.March, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "tomorrow", "15/03/2026"} {
		_, err := ParseTimestamp(value)
		assert.Error(t, err, value)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	out := EndOfDay(in)
	assert.Equal(t, 23, out.Hour())
	assert.Equal(t, 59, out.Minute())
	assert.Equal(t, 59, out.Second())
	assert.Equal(t, 15, out.Day())
	assert.True(t, out.Before(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}
