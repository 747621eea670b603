package reading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/relvacode/iso8601"
)

// ISOLayout matches the millisecond UTC form browsers produce for Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// fallback layouts for timestamps iso8601 will not take.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC1123Z,
	time.RFC1123,
}

// maxUnixMilli is the largest distance from the epoch a browser Date can hold.
const maxUnixMilli = 8.64e15

// Timestamp is when a reading was taken. Valid is false when the API sent
// something that could not be understood; the original text is kept in Raw.
type Timestamp struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// At builds a valid Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true, Raw: t.UTC().Format(ISOLayout)}
}

// ParseTimestamp understands ISO 8601, "YYYY-MM-DD HH:MM:SS" and RFC 1123.
func ParseTimestamp(s string) Timestamp {
	if t, err := iso8601.ParseString(s); err == nil {
		return checked(t, s)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return checked(t, s)
		}
	}
	return Timestamp{Raw: s}
}

// checked only marks t valid if ISOLayout can write it back, years 0 to 9999.
func checked(t time.Time, raw string) Timestamp {
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return Timestamp{Raw: raw}
	}
	return Timestamp{Time: t, Valid: true, Raw: raw}
}

// String is the canonical ISO form, or "" when invalid.
func (ts Timestamp) String() string {
	if !ts.Valid {
		return ""
	}
	return ts.Time.UTC().Format(ISOLayout)
}

// UnmarshalJSON accepts a string or a number of Unix milliseconds.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*ts = ParseTimestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("timestamp must be a string or number: %w", err)
	}
	ms, err := n.Float64()
	if err != nil || math.IsNaN(ms) || math.Abs(ms) > maxUnixMilli {
		*ts = Timestamp{Raw: n.String()}
		return nil
	}
	*ts = checked(time.UnixMilli(int64(ms)).UTC(), n.String())
	return nil
}

// MarshalJSON writes the canonical ISO form, or null when invalid.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}
