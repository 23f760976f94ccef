package services

import "courier-map-service/internal/domain"

type EngineConfig struct {
	Zones  ZoneConfig
	Bounds domain.CoordinateBounds
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Zones: DefaultZoneConfig()}
}

// Engine recomputes the courier map view model from a package list.
//
// The engine owns the status snapshot, the only state kept between passes.
// Refresh is synchronous and performs no I/O. It must not be called
// concurrently; the Poller serializes calls.
type Engine struct {
	cfg     EngineConfig
	tracker *StatusDiffTracker
	cycle   int
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: cfg, tracker: NewStatusDiffTracker()}
}

func (e *Engine) Config() EngineConfig { return e.cfg }

// Refresh runs one full pass: zones, stops, aggregation, then the status diff.
// The snapshot is committed only once the diff for the whole list is computed.
func (e *Engine) Refresh(packages []*domain.Package) domain.View {
	zones := AssignZones(packages, e.cfg.Bounds, e.cfg.Zones)

	stops := ClusterStops(packages, e.cfg.Bounds)
	AggregateStops(stops, zones)

	transitions := e.tracker.Diff(packages)

	var counts domain.Counts
	for _, pkg := range packages {
		if pkg == nil {
			continue
		}
		counts.Add(pkg.Status)
	}

	e.cycle++
	return domain.View{
		Cycle:         e.cycle,
		Stops:         stops,
		Transitions:   transitions,
		Counts:        counts,
		ZoneCount:     zones.Count(),
		RouteComplete: counts.Total() > 0 && counts.Delivered == counts.Total(),
	}
}

// Snapshot exposes a copy of the committed status snapshot.
func (e *Engine) Snapshot() StatusSnapshot { return e.tracker.Snapshot() }
