package domain

import "time"

// Zone membership of a geolocated package or stop.
type ZoneTag struct {
	Index int
	Color string
}

// Represents one visitable point on the courier map.
// A Stop groups every package delivered at the same building; packages
// without a usable address key or coordinate get a Stop of their own.
// Coordinate is nil for stops whose representative package has none.
type Stop struct {
	Packages       []*Package
	Coordinate     *Coordinates
	AddressKey     string
	DominantStatus Status
	DisplayIndex   int
	Zone           *ZoneTag
}

// Status change of one package observed between two refresh passes.
type Transition struct {
	PackageID    int
	TrackingCode string
	From         Status
	To           Status
}

// View is the result of one refresh pass handed to the rendering side.
type View struct {
	Cycle         int
	ComputedAt    time.Time
	Stops         []Stop
	Transitions   []Transition
	Counts        Counts
	ZoneCount     int
	RouteComplete bool
}
