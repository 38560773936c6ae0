// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the wire format for every timestamp in the API.
// The dashboard parses this layout, so it must not change.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a UTC instant serialized as "YYYY-MM-DD HH:MM:SS".
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalized to UTC with second precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// MarshalJSON writes the timestamp in TimestampLayout.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(TimestampLayout))
}

// UnmarshalJSON accepts TimestampLayout or RFC 3339.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		ts.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	if t, err := time.ParseInLocation(TimestampLayout, s, time.UTC); err == nil {
		ts.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("timestamp: cannot parse %q", s)
	}
	ts.Time = t.UTC()
	return nil
}
