package dashboard

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/lologarithm/cydonia/reading"
	"gitlab.com/lologarithm/cydonia/sensor"
	"gitlab.com/lologarithm/cydonia/stats"
)

func TestDerive(t *testing.T) {
	rs := []reading.Reading{
		{SensorID: "1", LocationID: "1", Raw: "10", Timestamp: reading.ParseTimestamp("2024-01-01T00:00:00Z")},
		{SensorID: "2", LocationID: "1", Raw: "50", Timestamp: reading.ParseTimestamp("2024-01-01T00:00:00Z")},
		{SensorID: "1", LocationID: "1", Raw: "20", Timestamp: reading.ParseTimestamp("2024-01-01T00:01:00Z")},
	}
	s := State{
		Location: "1",
		Snapshot: reading.NewSnapshot("1", time.Unix(1000, 0), rs),
	}
	c := sensor.DefaultCatalog()
	c.TableRows = 2

	v := Derive(s, c)
	assert.Equal(t, "Mission Site Alpha", v.LocationName)
	require.NotNil(t, v.FetchedAt)
	require.Len(t, v.Sensors, 3)

	temp := v.Sensors[0]
	assert.Equal(t, "Temperature (°C)", temp.Title)
	assert.Len(t, temp.Series, 2)
	assert.Equal(t, "15.00", temp.Stats.Mean.String())
	assert.Equal(t, "5.00", temp.Stats.StdDev.String())

	assert.Len(t, v.Sensors[1].Series, 1)
	assert.Empty(t, v.Sensors[2].Series)
	assert.Equal(t, "0.00", v.Sensors[2].Stats.Max.String())

	require.Len(t, v.Table, 2)
	assert.Equal(t, "50", v.Table[0].Value)
	assert.Equal(t, "20", v.Table[1].Value)
	assert.Equal(t, reading.ID("1"), v.Table[1].SensorID)

	_, err := json.Marshal(v)
	assert.NoError(t, err)
}

func TestDeriveTableLimit(t *testing.T) {
	rs := make([]reading.Reading, 0, 100)
	for i := 0; i < 100; i++ {
		rs = append(rs, reading.Reading{SensorID: "1", Raw: reading.RawValue(strconv.Itoa(i))})
	}
	v := Derive(State{Snapshot: reading.NewSnapshot("", time.Now(), rs)}, sensor.DefaultCatalog())
	require.Len(t, v.Table, 40)
	assert.Equal(t, "60", v.Table[0].Value)
	assert.Equal(t, "99", v.Table[39].Value)
}

func TestDeriveEmpty(t *testing.T) {
	v := Derive(State{Location: "3", Loading: true}, sensor.DefaultCatalog())
	assert.True(t, v.Loading)
	assert.Nil(t, v.FetchedAt)
	assert.Empty(t, v.Table)
	for _, sv := range v.Sensors {
		assert.Empty(t, sv.Series)
	}
}

func TestDeriveHidesOtherLocation(t *testing.T) {
	rs := []reading.Reading{
		{SensorID: "1", LocationID: "1", Raw: "10"},
		{SensorID: "1", LocationID: "1", Raw: "20"},
	}
	s := State{Location: "1", Snapshot: reading.NewSnapshot("1", time.Unix(1000, 0), rs)}
	s = Reduce(s, LocationChanged{Location: "2"})
	s = Reduce(s, FetchStarted{Generation: 1})
	s = Reduce(s, FetchFailed{Generation: 1, Location: "2", Message: "data api returned 500"})
	require.Equal(t, reading.ID("1"), s.Snapshot.Location)

	v := Derive(s, sensor.DefaultCatalog())
	assert.Equal(t, reading.ID("2"), v.Location)
	assert.Equal(t, "Mission Site Lambda", v.LocationName)
	assert.Equal(t, "data api returned 500", v.Error)
	assert.Nil(t, v.FetchedAt)
	assert.Empty(t, v.Table)
	require.Len(t, v.Sensors, 3)
	for _, sv := range v.Sensors {
		assert.Empty(t, sv.Series)
		assert.Equal(t, stats.Zero, sv.Stats)
	}
}
