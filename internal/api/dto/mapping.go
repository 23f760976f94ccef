package dto

import "courier-map-service/internal/domain"

func FromPackage(p *domain.Package) PackageResponse {
	return PackageResponse{
		ID:           p.ID,
		RouteID:      p.RouteID,
		TrackingCode: p.TrackingCode,
		Address:      p.Address,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Status:       string(p.Status),
	}
}

func FromView(routeID int, v *domain.View) ViewResponse {
	res := ViewResponse{
		RouteID:       routeID,
		Cycle:         v.Cycle,
		ComputedAt:    v.ComputedAt,
		ZoneCount:     v.ZoneCount,
		RouteComplete: v.RouteComplete,
		Counts: CountsResponse{
			Pending:   v.Counts.Pending,
			Delivered: v.Counts.Delivered,
			Failed:    v.Counts.Failed,
		},
		Stops:       make([]StopResponse, 0, len(v.Stops)),
		Transitions: make([]TransitionResponse, 0, len(v.Transitions)),
	}

	for _, s := range v.Stops {
		stop := StopResponse{
			DisplayIndex:   s.DisplayIndex,
			DominantStatus: string(s.DominantStatus),
			AddressKey:     s.AddressKey,
			Packages:       make([]PackageResponse, 0, len(s.Packages)),
		}
		if s.Coordinate != nil {
			stop.Coordinate = &CoordinateResponse{Latitude: s.Coordinate.Lat, Longitude: s.Coordinate.Lon}
		}
		if s.Zone != nil {
			stop.Zone = &ZoneResponse{Index: s.Zone.Index, Color: s.Zone.Color}
		}
		for _, p := range s.Packages {
			stop.Packages = append(stop.Packages, FromPackage(p))
		}
		res.Stops = append(res.Stops, stop)
	}

	for _, t := range v.Transitions {
		res.Transitions = append(res.Transitions, TransitionResponse{
			PackageID:    t.PackageID,
			TrackingCode: t.TrackingCode,
			From:         string(t.From),
			To:           string(t.To),
		})
	}

	return res
}
