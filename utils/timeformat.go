package utils

import (
	"fmt"
	"time"
)

// zeroEngineTime is what the engine reports for a timestamp that was never set,
// e.g. FinishedAt of a container that is still running.
const zeroEngineTime = "0001-01-01T00:00:00Z"

func ParseRFC3339(rfc3339 string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, rfc3339)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time: %w", err)
	}
	return t.UTC(), nil
}

// ParseOptionalRFC3339 returns nil for an empty or zero engine timestamp.
func ParseOptionalRFC3339(rfc3339 string) (*time.Time, error) {
	if rfc3339 == "" || rfc3339 == zeroEngineTime {
		return nil, nil
	}
	t, err := ParseRFC3339(rfc3339)
	if err != nil {
		return nil, err
	}
	if t.IsZero() {
		return nil, nil
	}
	return &t, nil
}

// FormatDatetime is the persisted text form of a timestamp.
func FormatDatetime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
