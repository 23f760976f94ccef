package dto

type PackageResponse struct {
	ID           int      `json:"id"`
	RouteID      int      `json:"route_id"`
	TrackingCode string   `json:"tracking_code"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Status       string   `json:"status"`
}

type ListPackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	PackageID int    `json:"package_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
