package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("calendar date anchors at midnight UTC", func(t *testing.T) {
		got, err := ParseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rfc3339 keeps the instant, normalized to UTC", func(t *testing.T) {
		got, err := ParseDate("2024-03-15T10:30:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC), got)
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, s := range []string{"", "15/03/2024", "2024-3-15", "March 15th", "1710501000"} {
			_, err := ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestFormatDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2024-03-14", FormatDate(time.Date(2024, 3, 15, 3, 0, 0, 0, loc)))
}

func TestFormatTimestamp(t *testing.T) {
	got := FormatTimestamp(time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-15T08:30:00Z", got)
}
