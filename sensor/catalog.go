// Package sensor describes which streams the dashboard charts and which sites
// can be monitored.
package sensor

import (
	"gitlab.com/lologarithm/cydonia/reading"
	"gitlab.com/lologarithm/cydonia/stats"
)

// Sensor is one charted measurement stream.
type Sensor struct {
	ID    reading.ID
	Label string
	Unit  string
	Color string // chart line colour, any CSS colour
}

// Title is the label with its unit, e.g. "Temperature (°C)".
func (s Sensor) Title() string {
	if s.Unit == "" {
		return s.Label
	}
	return s.Label + " (" + s.Unit + ")"
}

// Location is a monitored site.
type Location struct {
	ID   reading.ID
	Name string
}

// DefaultTableRows is how many raw readings the table shows.
const DefaultTableRows = 40

// Defaults are the streams every site reports.
var Defaults = []Sensor{
	{ID: "1", Label: "Temperature", Unit: "°C", Color: "rgba(255, 99, 132, 1)"},
	{ID: "2", Label: "Humidity", Unit: "%", Color: "rgba(54, 162, 235, 1)"},
	{ID: "3", Label: "Air Quality", Unit: "PPM", Color: "rgba(75, 192, 192, 1)"},
}

// DefaultLocations are the sites known out of the box.
var DefaultLocations = []Location{
	{ID: "1", Name: "Mission Site Alpha"},
	{ID: "2", Name: "Mission Site Lambda"},
	{ID: "3", Name: "Mission Site Omega"},
}

// Catalog is everything the dashboard needs to know besides the data itself.
type Catalog struct {
	Sensors   []Sensor
	Locations []Location
	TableRows int
	Stats     stats.Options
}

// DefaultCatalog uses the default sensors, sites and table size.
func DefaultCatalog() Catalog {
	return Catalog{
		Sensors:   Defaults,
		Locations: DefaultLocations,
		TableRows: DefaultTableRows,
	}
}

// Location looks up a site by id.
func (c Catalog) Location(id reading.ID) (Location, bool) {
	for _, l := range c.Locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// LocationName is the display name for id, or the id itself if unknown.
func (c Catalog) LocationName(id reading.ID) string {
	if l, ok := c.Location(id); ok {
		return l.Name
	}
	return string(id)
}
