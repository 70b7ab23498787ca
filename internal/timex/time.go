package timex

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// naiveLayout matches ISO-8601 timestamps without an offset. Fractional
// seconds are accepted by time.Parse even though the layout omits them.
const naiveLayout = "2006-01-02T15:04:05"

var errInvalidTime = errors.New("invalid timestamp")

// Time is a timestamp that decodes from RFC 3339 or from a naive ISO-8601
// string such as "2025-06-01T12:34:56.789012". Naive values are read as UTC.
type Time struct {
	time.Time
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		t.Time = time.Time{}
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, *s, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: %q", errInvalidTime, *s)
	}
	t.Time = parsed
	return nil
}
