package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/lologarithm/cydonia/reading"
)

func readingsOf(sel reading.ID, raws ...string) []reading.Reading {
	rs := make([]reading.Reading, 0, len(raws))
	for _, raw := range raws {
		rs = append(rs, reading.Reading{SensorID: sel, Raw: reading.RawValue(raw)})
	}
	return rs
}

func summaryStrings(s Summary) []string {
	return []string{s.Mean.String(), s.Median.String(), s.Min.String(), s.Max.String(), s.StdDev.String()}
}

func TestStatsForEmpty(t *testing.T) {
	assert.Equal(t, Zero, StatsFor(nil, "1", Options{}))
	assert.Equal(t, Zero, StatsFor(readingsOf("2", "5", "6"), "1", Options{}))
	assert.Equal(t, []string{"0.00", "0.00", "0.00", "0.00", "0.00"}, summaryStrings(Zero))
}

func TestStatsForSingle(t *testing.T) {
	s := StatsFor(readingsOf("1", "21.456"), "1", Options{})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, []string{"21.46", "21.46", "21.46", "21.46", "0.00"}, summaryStrings(s))
}

func TestStatsForTwoValues(t *testing.T) {
	s := StatsFor(readingsOf("1", "10", "20"), "1", Options{})
	assert.Equal(t, []string{"15.00", "15.00", "10.00", "20.00", "5.00"}, summaryStrings(s))

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":2,"excluded":0,"mean":"15.00","median":"15.00","min":"10.00","max":"20.00","stdDev":"5.00"}`, string(b))
}

func TestStatsForMedian(t *testing.T) {
	// numeric sort: lexically "100" < "9"
	odd := StatsFor(readingsOf("1", "100", "9", "20"), "1", Options{})
	assert.Equal(t, "20.00", odd.Median.String())

	even := StatsFor(readingsOf("1", "100", "9", "20", "3"), "1", Options{})
	assert.Equal(t, "14.50", even.Median.String())
	assert.Equal(t, "3.00", even.Min.String())
	assert.Equal(t, "100.00", even.Max.String())
}

func TestStatsForOrderIndependent(t *testing.T) {
	raws := []string{"4.2", "-1", "17.75", "3", "3", "8.125"}
	fwd := StatsFor(readingsOf("1", raws...), "1", Options{})

	rev := make([]string, len(raws))
	for i, r := range raws {
		rev[len(raws)-1-i] = r
	}
	back := StatsFor(readingsOf("1", rev...), "1", Options{})
	assert.Equal(t, summaryStrings(fwd), summaryStrings(back))
}

func TestStatsForIdempotent(t *testing.T) {
	rs := readingsOf("1", "1.1", "2.2", "3.3", "x")
	first := StatsFor(rs, "1", Options{})
	for i := 0; i < 5; i++ {
		again := StatsFor(rs, "1", Options{})
		assert.Equal(t, summaryStrings(first), summaryStrings(again))
		assert.Equal(t, first.Excluded, again.Excluded)
	}
	assert.Equal(t, reading.RawValue("1.1"), rs[0].Raw)
}

func TestStatsForInvalidSkipped(t *testing.T) {
	s := StatsFor(readingsOf("1", "abc", "10", "20"), "1", Options{})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 1, s.Excluded)
	assert.Equal(t, []string{"15.00", "15.00", "10.00", "20.00", "5.00"}, summaryStrings(s))

	only := StatsFor(readingsOf("1", "abc"), "1", Options{})
	assert.Equal(t, 1, only.Excluded)
	assert.Equal(t, []string{"0.00", "0.00", "0.00", "0.00", "0.00"}, summaryStrings(only))
}

func TestStatsForInvalidPropagated(t *testing.T) {
	s := StatsFor(readingsOf("1", "abc", "10"), "1", Options{Invalid: PropagateInvalid})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, []string{"NaN", "NaN", "NaN", "NaN", "NaN"}, summaryStrings(s))
	assert.True(t, s.Mean.IsNaN())
	assert.True(t, math.IsNaN(s.StdDev.Float()))

	clean := StatsFor(readingsOf("1", "10", "20"), "1", Options{Invalid: PropagateInvalid})
	assert.Equal(t, "15.00", clean.Mean.String())
}

func TestStatsForRoundedMeanVariance(t *testing.T) {
	rs := readingsOf("1", "1.000", "1.008")

	exact := StatsFor(rs, "1", Options{})
	assert.Equal(t, "1.00", exact.Mean.String())
	assert.Equal(t, "0.00", exact.StdDev.String())

	legacy := StatsFor(rs, "1", Options{RoundedMeanVariance: true})
	assert.Equal(t, "1.00", legacy.Mean.String())
	assert.Equal(t, "0.01", legacy.StdDev.String())
}

func TestSeriesFor(t *testing.T) {
	rs := []reading.Reading{
		{SensorID: "1", Raw: "3", Timestamp: reading.ParseTimestamp("2024-01-01T00:02:00Z")},
		{SensorID: "2", Raw: "99", Timestamp: reading.ParseTimestamp("2024-01-01T00:00:30Z")},
		{SensorID: "1", Raw: "abc", Timestamp: reading.ParseTimestamp("2024-01-01T00:00:00Z")},
		{SensorID: "1", Raw: "1.5", Timestamp: reading.ParseTimestamp("not a time")},
	}
	pts := SeriesFor(rs, "1")
	require.Len(t, pts, 3)

	assert.Equal(t, "2024-01-01T00:02:00.000Z", pts[0].X.String())
	assert.Equal(t, 3.0, pts[0].Y.Float)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", pts[1].X.String())
	assert.False(t, pts[1].Y.OK)
	assert.True(t, math.IsNaN(pts[1].Y.Float))
	assert.False(t, pts[2].X.Valid)

	b, err := json.Marshal(pts)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"x":"2024-01-01T00:02:00.000Z","y":3},
		{"x":"2024-01-01T00:00:00.000Z","y":null},
		{"x":null,"y":1.5}
	]`, string(b))

	assert.Empty(t, SeriesFor(rs, "3"))
	assert.Len(t, SeriesFor(rs, "2"), 1)
}

func TestStatsForHugeValues(t *testing.T) {
	s := StatsFor(readingsOf("1", "1e308", "1e308"), "1", Options{})
	assert.Equal(t, 0, s.Excluded)
	assert.False(t, s.Mean.IsNaN())
	assert.False(t, s.Median.IsNaN())
	assert.False(t, s.StdDev.IsNaN())
	assert.Equal(t, 1e308, s.Mean.Float())
	assert.Equal(t, 1e308, s.Median.Float())
	assert.Equal(t, "0.00", s.StdDev.String())

	wide := StatsFor(readingsOf("1", "-1e308", "1e308"), "1", Options{})
	assert.Equal(t, 0.0, wide.Mean.Float())
	assert.Equal(t, 0.0, wide.Median.Float())
	assert.Equal(t, 1e308, wide.StdDev.Float())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "2.50", Round2(2.499999).String())
	assert.Equal(t, "-1.24", Round2(-1.2351).String())
	assert.Equal(t, "NaN", Round2(math.Inf(1)).String())
	assert.Equal(t, 2.5, Round2(2.5).Float())
}
