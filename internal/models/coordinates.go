package models

// Coordinates represents a geographical point in decimal degrees.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point, west is negative.
	Latitude  float64 // Latitude of the geographical point, south is negative.
}

// LatLng returns the point as a [lat, lon] pair, the order map libraries expect for markers.
func (c Coordinates) LatLng() [2]float64 { return [2]float64{c.Latitude, c.Longitude} }

// LonLat returns the point as a [lon, lat] pair, the GeoJSON position order.
func (c Coordinates) LonLat() [2]float64 { return [2]float64{c.Longitude, c.Latitude} }
