// Package stats turns raw readings into chart series and summary statistics.
// Everything here is pure: the same input always gives the same output.
package stats

import (
	"math"
	"sort"

	"gitlab.com/lologarithm/cydonia/reading"
)

// Point is one chart sample.
type Point struct {
	X reading.Timestamp `json:"x"`
	Y reading.Value     `json:"y"`
}

// SeriesFor maps the readings of one selector to chart points. Order follows
// the input, nothing is sorted and nothing is dropped: bad timestamps and
// bad values stay in as gaps.
func SeriesFor(readings []reading.Reading, sel reading.ID) []Point {
	selected := reading.Select(readings, sel)
	pts := make([]Point, 0, len(selected))
	for _, r := range selected {
		pts = append(pts, Point{X: r.Timestamp, Y: r.Value()})
	}
	return pts
}

// InvalidPolicy decides what unparseable values do to a Summary.
type InvalidPolicy int

const (
	// SkipInvalid leaves bad values out and counts them in Summary.Excluded.
	SkipInvalid InvalidPolicy = iota
	// PropagateInvalid makes every statistic NaN if any value is bad.
	PropagateInvalid
)

// Options tune StatsFor. The zero value is the default behaviour.
type Options struct {
	Invalid InvalidPolicy
	// RoundedMeanVariance takes deviations from the mean after it has been
	// rounded to two decimals, matching the older browser dashboard.
	RoundedMeanVariance bool
}

// Summary holds the summary statistics for one selector.
type Summary struct {
	Count    int   `json:"count"`
	Excluded int   `json:"excluded"`
	Mean     Fixed `json:"mean"`
	Median   Fixed `json:"median"`
	Min      Fixed `json:"min"`
	Max      Fixed `json:"max"`
	StdDev   Fixed `json:"stdDev"`
}

// Zero is returned when there is nothing to summarize.
var Zero = Summary{}

// StatsFor summarizes the values of one selector.
func StatsFor(readings []reading.Reading, sel reading.ID, opts Options) Summary {
	selected := reading.Select(readings, sel)
	values := make([]float64, 0, len(selected))
	excluded := 0
	for _, r := range selected {
		v := r.Value()
		if !v.OK {
			excluded++
			continue
		}
		values = append(values, v.Float)
	}

	if excluded > 0 && opts.Invalid == PropagateInvalid {
		return Summary{
			Count:    len(values) + excluded,
			Excluded: excluded,
			Mean:     NaN,
			Median:   NaN,
			Min:      NaN,
			Max:      NaN,
			StdDev:   NaN,
		}
	}
	if len(values) == 0 {
		s := Zero
		s.Excluded = excluded
		return s
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	m := mean(values)
	rmean := Round2(m)

	center := m
	if opts.RoundedMeanVariance {
		center = rmean.Float()
	}

	return Summary{
		Count:    len(values),
		Excluded: excluded,
		Mean:     rmean,
		Median:   Round2(median(values)),
		Min:      Round2(lo),
		Max:      Round2(hi),
		StdDev:   Round2(stdDev(values, center, math.Max(math.Abs(lo), math.Abs(hi)))),
	}
}

// mean falls back to summing v/n when the plain sum overflows, so finite
// input always gives a finite mean.
func mean(values []float64) float64 {
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if !math.IsInf(sum, 0) {
		return sum / n
	}
	m := 0.0
	for _, v := range values {
		m += v / n
	}
	return m
}

// stdDev is the population standard deviation around center. scale is the
// largest magnitude in values; it is only used when the squares overflow.
func stdDev(values []float64, center, scale float64) float64 {
	n := float64(len(values))
	sq := 0.0
	for _, v := range values {
		d := v - center
		sq += d * d
	}
	if !math.IsInf(sq, 0) || scale == 0 {
		return math.Sqrt(sq / n)
	}
	sq = 0
	for _, v := range values {
		d := v/scale - center/scale
		sq += d * d
	}
	return scale * math.Sqrt(sq/n)
}

// median sorts a copy numerically; values must be non-empty.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return sorted[mid-1]/2 + sorted[mid]/2
	}
	return sorted[mid]
}
