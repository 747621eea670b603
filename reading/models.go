package reading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ID identifies a sensor, topic or location. The data API sends these as
// either JSON numbers or strings so both are accepted.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Reading is a single raw sensor observation as delivered by the data API.
type Reading struct {
	Timestamp  Timestamp `json:"timestamp"`
	SensorID   ID        `json:"sensor_id,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	LocationID ID        `json:"location_id,omitempty"`
	Raw        RawValue  `json:"topic_value"`
}

// Selector is the stream this reading belongs to. Older feeds only carry a topic.
func (r Reading) Selector() ID {
	if r.SensorID != "" {
		return r.SensorID
	}
	return ID(r.Topic)
}

// Value parses the reading's raw text.
func (r Reading) Value() Value {
	return ParseValue(string(r.Raw))
}

// Snapshot is the result of one successful fetch. It is never modified after
// creation, a new fetch produces a new Snapshot.
type Snapshot struct {
	Location  ID
	FetchedAt time.Time
	Readings  []Reading
}

// NewSnapshot copies readings so later changes by the caller do not leak in.
func NewSnapshot(location ID, fetchedAt time.Time, readings []Reading) Snapshot {
	rs := make([]Reading, len(readings))
	copy(rs, readings)
	return Snapshot{Location: location, FetchedAt: fetchedAt, Readings: rs}
}

// Len is the number of readings held.
func (s Snapshot) Len() int {
	return len(s.Readings)
}

// Recent returns up to the last n readings in fetch order, most recent last.
func (s Snapshot) Recent(n int) []Reading {
	if n <= 0 {
		return nil
	}
	if n >= len(s.Readings) {
		return s.Readings
	}
	return s.Readings[len(s.Readings)-n:]
}

// Select filters readings down to a single selector, keeping order.
func Select(readings []Reading, sel ID) []Reading {
	out := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if r.Selector() == sel {
			out = append(out, r)
		}
	}
	return out
}
