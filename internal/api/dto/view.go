package dto

import "time"

type ZoneResponse struct {
	Index int    `json:"index"`
	Color string `json:"color"`
}

type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StopResponse struct {
	DisplayIndex   int                 `json:"display_index"`
	DominantStatus string              `json:"dominant_status"`
	AddressKey     string              `json:"address_key,omitempty"`
	Coordinate     *CoordinateResponse `json:"coordinate"`
	Zone           *ZoneResponse       `json:"zone"`
	Packages       []PackageResponse   `json:"packages"`
}

type TransitionResponse struct {
	PackageID    int    `json:"package_id"`
	TrackingCode string `json:"tracking_code"`
	From         string `json:"from"`
	To           string `json:"to"`
}

type CountsResponse struct {
	Pending   int `json:"pending"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

type ViewResponse struct {
	RouteID       int                  `json:"route_id"`
	Cycle         int                  `json:"cycle"`
	ComputedAt    time.Time            `json:"computed_at"`
	ZoneCount     int                  `json:"zone_count"`
	RouteComplete bool                 `json:"route_complete"`
	Counts        CountsResponse       `json:"counts"`
	Stops         []StopResponse       `json:"stops"`
	Transitions   []TransitionResponse `json:"transitions"`
}
