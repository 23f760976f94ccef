package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidStatus = errors.New("invalid package status")

// Delivery status of a single package.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
)

// ParseStatus accepts the three known statuses, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusDelivered, StatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("parse status %q: %w", s, ErrInvalidStatus)
}

// Represents a single delivery unit assigned to a courier route.
// Packages are owned by the data source; one refresh pass treats them as
// read-only input. Latitude and Longitude are nil when the source has no
// coordinate for the package.
type Package struct {
	ID           int
	RouteID      int
	TrackingCode string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Status       Status
}

// Coordinates returns the package location and whether both values are present.
// Range checks are left to the caller (see CoordinateBounds.Usable).
func (p *Package) Coordinates() (Coordinates, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *p.Latitude, Lon: *p.Longitude}, true
}

// Counts tallies individual packages by status.
type Counts struct {
	Pending   int
	Delivered int
	Failed    int
}

func (c *Counts) Add(s Status) {
	switch s {
	case StatusDelivered:
		c.Delivered++
	case StatusFailed:
		c.Failed++
	default:
		c.Pending++
	}
}

func (c Counts) Total() int { return c.Pending + c.Delivered + c.Failed }
