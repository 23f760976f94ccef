package services

import "courier-map-service/internal/domain"

// ClusterStops groups packages into visitable stops.
//
// A package is grouped by address key only when it has both a non-empty key
// and a usable coordinate. Groups keep the first-seen order of their keys and
// take the coordinate of their first package. Every other package becomes a
// singleton stop. Grouped stops come first, followed by the singletons in
// input order; display numbering follows this order.
//
// Each input package appears in exactly one returned stop.
func ClusterStops(packages []*domain.Package, bounds domain.CoordinateBounds) []domain.Stop {
	groups := make(map[string]int)
	grouped := make([]domain.Stop, 0, len(packages))
	singles := make([]domain.Stop, 0)

	for _, pkg := range packages {
		if pkg == nil {
			continue
		}

		coord, ok := pkg.Coordinates()
		if ok && !bounds.Usable(coord) {
			ok = false
		}

		key := NormalizeAddressKey(pkg.Address)
		if key == "" || !ok {
			var rep *domain.Coordinates
			if ok {
				c := coord
				rep = &c
			}
			singles = append(singles, domain.Stop{
				Packages:   []*domain.Package{pkg},
				Coordinate: rep,
			})
			continue
		}

		if i, seen := groups[key]; seen {
			grouped[i].Packages = append(grouped[i].Packages, pkg)
			continue
		}

		c := coord
		groups[key] = len(grouped)
		grouped = append(grouped, domain.Stop{
			Packages:   []*domain.Package{pkg},
			Coordinate: &c,
			AddressKey: key,
		})
	}

	return append(grouped, singles...)
}
