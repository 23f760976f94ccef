package services

import (
	"courier-map-service/internal/domain"
	"fmt"
)

func ptr(v float64) *float64 { return &v }

func pkgAt(id int, address string, lat, lon float64, status domain.Status) *domain.Package {
	return &domain.Package{
		ID:           id,
		RouteID:      1,
		TrackingCode: fmt.Sprintf("TRK%04d", id),
		Address:      address,
		Latitude:     ptr(lat),
		Longitude:    ptr(lon),
		Status:       status,
	}
}

func pkgNoCoords(id int, address string, status domain.Status) *domain.Package {
	return &domain.Package{
		ID:           id,
		RouteID:      1,
		TrackingCode: fmt.Sprintf("TRK%04d", id),
		Address:      address,
		Status:       status,
	}
}

func stopIDs(s domain.Stop) []int {
	ids := make([]int, 0, len(s.Packages))
	for _, p := range s.Packages {
		ids = append(ids, p.ID)
	}
	return ids
}
