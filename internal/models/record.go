package models

// Record is a disaster-event location that survived filtering.
// Both coordinates are decimal degrees; the record is not modified after the filter creates it.
type Record struct {
	ID        string  // ID is the value of the first column of the source row.
	Latitude  float64 // Latitude in decimal degrees.
	Longitude float64 // Longitude in decimal degrees.
	Label     string  // Label is the place or city name shown on the map.
}

// Position returns the record location.
func (r Record) Position() Coordinates {
	return Coordinates{Longitude: r.Longitude, Latitude: r.Latitude}
}
