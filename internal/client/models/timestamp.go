package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire format of entry creation times: UTC, seconds
// precision, no zone designator.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is used by goal start and end dates.
const DateLayout = "2006-01-02"

// Timestamp serializes a time in TimestampLayout.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

// String renders the wire form. Sub-second parts are truncated.
func (t Timestamp) String() string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// ParseTimestamp reads a backend timestamp. It accepts the canonical
// layout, RFC 3339 and a bare date, and always returns UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999999", DateLayout} {
		if v, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: v.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}
