package domain

import "math"

// Immutable geographic coordinates (latitude, longitude) on a flat plane.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Rectangular latitude/longitude box used to reject coordinates outside the
// service area. The zero value disables the check.
type CoordinateBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (b CoordinateBounds) IsZero() bool {
	return b == CoordinateBounds{}
}

// Usable reports whether c can be placed on the map.
// Values must be finite and inside the WGS84 ranges. An exact 0 in either
// component is treated as a missing value, as geocoders emit it on failure.
func (b CoordinateBounds) Usable(c Coordinates) bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return false
	}
	if c.Lat == 0 || c.Lon == 0 {
		return false
	}
	if b.IsZero() {
		return true
	}
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
