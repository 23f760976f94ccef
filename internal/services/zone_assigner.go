package services

import (
	"courier-map-service/internal/domain"
	"math"
	"slices"
)

// DefaultPalette holds the zone colors, indexed by zone position.
var DefaultPalette = []string{
	"#e53935", // red
	"#1e88e5", // blue
	"#43a047", // green
	"#fb8c00", // orange
	"#8e24aa", // purple
	"#00acc1", // cyan
	"#fdd835", // yellow
	"#6d4c41", // brown
}

// Tunables of the zone partition. Both historical behaviors are expressible:
// {GroupSize: 10, MinZones: 2, MaxZones: 8} and {GroupSize: 15, MinZones: 2, MaxZones: 3}.
type ZoneConfig struct {
	GroupSize  int
	MinZones   int
	MaxZones   int
	Iterations int
	Palette    []string
	// StableSeeding seeds centroids from packages sorted by id instead of
	// input order, so zone colors do not move when the source reorders rows.
	StableSeeding bool
}

func DefaultZoneConfig() ZoneConfig {
	return ZoneConfig{
		GroupSize:  12,
		MinZones:   2,
		MaxZones:   8,
		Iterations: 5,
		Palette:    DefaultPalette,
	}
}

// ZoneAssignment is the transient output of one AssignZones run.
type ZoneAssignment struct {
	Centroids []domain.Coordinates
	// Tags maps package id to its zone; packages without a usable coordinate are absent.
	Tags map[int]domain.ZoneTag
}

func (z ZoneAssignment) Count() int { return len(z.Centroids) }

type zonePoint struct {
	id    int
	coord domain.Coordinates
}

// AssignZones partitions geolocated packages into color-coded zones using a
// fixed number of centroid refinement rounds (no convergence check).
//
// Distance is planar on raw latitude/longitude. A centroid that attracts no
// package keeps its previous position.
func AssignZones(packages []*domain.Package, bounds domain.CoordinateBounds, cfg ZoneConfig) ZoneAssignment {
	points := make([]zonePoint, 0, len(packages))
	for _, pkg := range packages {
		if pkg == nil {
			continue
		}
		c, ok := pkg.Coordinates()
		if !ok || !bounds.Usable(c) {
			continue
		}
		points = append(points, zonePoint{id: pkg.ID, coord: c})
	}

	out := ZoneAssignment{Tags: make(map[int]domain.ZoneTag, len(points))}
	n := len(points)
	if n == 0 {
		return out
	}

	k := zoneCount(n, cfg)

	seedOrder := points
	if cfg.StableSeeding {
		seedOrder = slices.Clone(points)
		slices.SortStableFunc(seedOrder, func(a, b zonePoint) int { return a.id - b.id })
	}

	step := n / k
	if step < 1 {
		step = 1
	}
	centroids := make([]domain.Coordinates, k)
	for i := range centroids {
		idx := i * step
		if idx >= n {
			idx = n - 1
		}
		centroids[i] = seedOrder[idx].coord
	}

	assigned := make([]int, n)
	for iter := 0; iter < cfg.Iterations; iter++ {
		for i, p := range points {
			assigned[i] = nearestCentroid(p.coord, centroids)
		}

		sums := make([]domain.Coordinates, k)
		sizes := make([]int, k)
		for i, p := range points {
			z := assigned[i]
			sums[z].Lat += p.coord.Lat
			sums[z].Lon += p.coord.Lon
			sizes[z]++
		}
		for z := range centroids {
			if sizes[z] == 0 {
				continue
			}
			centroids[z] = domain.Coordinates{
				Lat: sums[z].Lat / float64(sizes[z]),
				Lon: sums[z].Lon / float64(sizes[z]),
			}
		}
	}

	palette := cfg.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	for _, p := range points {
		z := nearestCentroid(p.coord, centroids)
		out.Tags[p.id] = domain.ZoneTag{Index: z, Color: palette[z%len(palette)]}
	}
	out.Centroids = centroids

	return out
}

// zoneCount is ceil(n/groupSize) clamped to [MinZones, MaxZones].
func zoneCount(n int, cfg ZoneConfig) int {
	groupSize := cfg.GroupSize
	if groupSize < 1 {
		groupSize = 1
	}
	lo, hi := cfg.MinZones, cfg.MaxZones
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}

	k := (n + groupSize - 1) / groupSize
	return min(max(k, lo), hi)
}

// Ties resolve to the lowest zone index.
func nearestCentroid(c domain.Coordinates, centroids []domain.Coordinates) int {
	best := 0
	bestDist := math.Inf(1)
	for i, cen := range centroids {
		d := math.Sqrt((c.Lat-cen.Lat)*(c.Lat-cen.Lat) + (c.Lon-cen.Lon)*(c.Lon-cen.Lon))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
