package services

import "courier-map-service/internal/domain"

// DominantStatus is delivered when every package is delivered, failed when
// every package failed, and pending otherwise (including mixed stops).
func DominantStatus(packages []*domain.Package) domain.Status {
	if len(packages) == 0 {
		return domain.StatusPending
	}

	first := packages[0].Status
	if first != domain.StatusDelivered && first != domain.StatusFailed {
		return domain.StatusPending
	}
	for _, pkg := range packages[1:] {
		if pkg.Status != first {
			return domain.StatusPending
		}
	}
	return first
}

// AggregateStops fills DominantStatus and a 1-based DisplayIndex on each stop,
// in slice order. When zones are given, a stop takes the zone of its first
// package.
func AggregateStops(stops []domain.Stop, zones ZoneAssignment) {
	for i := range stops {
		s := &stops[i]
		s.DominantStatus = DominantStatus(s.Packages)
		s.DisplayIndex = i + 1

		s.Zone = nil
		if len(s.Packages) == 0 {
			continue
		}
		if tag, ok := zones.Tags[s.Packages[0].ID]; ok {
			t := tag
			s.Zone = &t
		}
	}
}
