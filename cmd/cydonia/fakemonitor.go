package main

import (
	"context"
	"strconv"
	"time"

	"gitlab.com/lologarithm/cydonia/reading"
)

// fakeMonitor stands in for the data API when running locally with -fake.
type fakeMonitor struct {
	now     func() time.Time
	samples int           // readings per sensor
	step    time.Duration // time between samples
}

func newFakeMonitor() *fakeMonitor {
	return &fakeMonitor{now: time.Now, samples: 30, step: time.Minute}
}

// Fetch makes up readings for temperature, humidity and air quality.
// Every 13th value is garbage so the gap handling gets exercised.
func (f *fakeMonitor) Fetch(ctx context.Context, location reading.ID) ([]reading.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset, _ := strconv.Atoi(string(location))
	now := f.now().UTC()
	bases := []struct {
		id   reading.ID
		base float64
	}{
		{"1", 20 + float64(offset)},
		{"2", 40 + 5*float64(offset)},
		{"3", 400 + 25*float64(offset)},
	}

	rs := make([]reading.Reading, 0, f.samples*len(bases))
	k := 0
	for i := 0; i < f.samples; i++ {
		at := reading.At(now.Add(-time.Duration(f.samples-i) * f.step))
		for _, b := range bases {
			k++
			raw := strconv.FormatFloat(b.base+float64(i%3)+0.25*float64(i%4), 'f', 2, 64)
			if k%13 == 0 {
				raw = "err"
			}
			rs = append(rs, reading.Reading{
				Timestamp:  at,
				SensorID:   b.id,
				LocationID: location,
				Raw:        reading.RawValue(raw),
			})
		}
	}
	return rs, nil
}
