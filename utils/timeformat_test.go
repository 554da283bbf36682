package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRFC3339(t *testing.T) {
	got, err := ParseRFC3339("2024-03-01T10:20:30.123456789+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 20, 30, 123456789, time.UTC), got)

	_, err = ParseRFC3339("yesterday")
	assert.Error(t, err)
}

func TestParseOptionalRFC3339(t *testing.T) {
	for _, raw := range []string{"", "0001-01-01T00:00:00Z"} {
		got, err := ParseOptionalRFC3339(raw)
		require.NoError(t, err, raw)
		assert.Nil(t, got, raw)
	}

	got, err := ParseOptionalRFC3339("2024-03-01T10:20:30Z")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())

	_, err = ParseOptionalRFC3339("not-a-time")
	assert.Error(t, err)
}
