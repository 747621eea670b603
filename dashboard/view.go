package dashboard

import (
	"time"

	"gitlab.com/lologarithm/cydonia/reading"
	"gitlab.com/lologarithm/cydonia/sensor"
	"gitlab.com/lologarithm/cydonia/stats"
)

// RowTimeLayout is how table timestamps are shown.
const RowTimeLayout = "2006-01-02 15:04:05"

// View is what gets rendered. It is rebuilt from State every time and never
// stored on its own.
type View struct {
	Location     reading.ID   `json:"location"`
	LocationName string       `json:"locationName"`
	Loading      bool         `json:"loading"`
	Error        string       `json:"error,omitempty"`
	FetchedAt    *time.Time   `json:"fetchedAt,omitempty"`
	Sensors      []SensorView `json:"sensors"`
	Table        []Row        `json:"table"`
}

// SensorView is the chart series and statistics of one sensor.
type SensorView struct {
	ID     reading.ID    `json:"id"`
	Title  string        `json:"title"`
	Color  string        `json:"color"`
	Series []stats.Point `json:"series"`
	Stats  stats.Summary `json:"stats"`
}

// Row is one line of the raw readings table.
type Row struct {
	Time     string     `json:"time"`
	SensorID reading.ID `json:"sensorId"`
	Location reading.ID `json:"locationId"`
	Value    string     `json:"value"`
}

// Derive computes the view for s. A snapshot held from another location, which
// is the case until the first fetch for a new location succeeds, is not shown.
func Derive(s State, c sensor.Catalog) View {
	v := View{
		Location:     s.Location,
		LocationName: c.LocationName(s.Location),
		Loading:      s.Loading,
		Error:        s.Err,
		Sensors:      make([]SensorView, 0, len(c.Sensors)),
	}
	snap := s.Snapshot
	if snap.Location != s.Location {
		snap = reading.Snapshot{Location: s.Location}
	}
	if !snap.FetchedAt.IsZero() {
		at := snap.FetchedAt
		v.FetchedAt = &at
	}

	readings := snap.Readings
	for _, sn := range c.Sensors {
		v.Sensors = append(v.Sensors, SensorView{
			ID:     sn.ID,
			Title:  sn.Title(),
			Color:  sn.Color,
			Series: stats.SeriesFor(readings, sn.ID),
			Stats:  stats.StatsFor(readings, sn.ID, c.Stats),
		})
	}

	recent := snap.Recent(c.TableRows)
	v.Table = make([]Row, 0, len(recent))
	for _, r := range recent {
		v.Table = append(v.Table, Row{
			Time:     rowTime(r.Timestamp),
			SensorID: r.Selector(),
			Location: r.LocationID,
			Value:    string(r.Raw),
		})
	}
	return v
}

func rowTime(ts reading.Timestamp) string {
	if !ts.Valid {
		return ts.Raw
	}
	return ts.Time.Local().Format(RowTimeLayout)
}
