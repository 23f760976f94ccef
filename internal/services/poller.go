package services

import (
	"context"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/platform/obs"
	"courier-map-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrStaleResult is returned by PollOnce when a newer fetch was applied first.
var ErrStaleResult = errors.New("stale fetch result discarded")

// Poller drives the Engine on a fixed interval with fresh package lists.
//
// Fetches may overlap (a slow fetch never delays the next tick), but results
// are applied one at a time and only when newer than the last applied fetch,
// so the engine's snapshot is never written out of order.
type Poller struct {
	repo         ports.PackageRepository
	engine       *Engine
	routeID      int
	interval     time.Duration
	fetchTimeout time.Duration
	notifier     ports.Notifier
	metrics      *obs.Metrics
	now          func() time.Time

	issued atomic.Uint64

	mu      sync.Mutex
	applied uint64
	latest  atomic.Pointer[domain.View]

	inflight sync.WaitGroup
}

type PollerConfig struct {
	RouteID      int
	Interval     time.Duration
	FetchTimeout time.Duration
}

func NewPoller(
	repo ports.PackageRepository,
	engine *Engine,
	cfg PollerConfig,
	notifier ports.Notifier,
	metrics *obs.Metrics,
) *Poller {
	return &Poller{
		repo:         repo,
		engine:       engine,
		routeID:      cfg.RouteID,
		interval:     cfg.Interval,
		fetchTimeout: cfg.FetchTimeout,
		notifier:     notifier,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Run polls immediately and then on every tick until ctx is done.
// It waits for in-flight fetches before returning.
func (p *Poller) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("run poller: interval must be positive, got %s", p.interval)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	log.Info().Int("route_id", p.routeID).Dur("interval", p.interval).Msg("poller started")

	p.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			p.inflight.Wait()
			log.Info().Int("route_id", p.routeID).Msg("poller stopped")
			return nil
		case <-ticker.C:
			p.launch(ctx)
		}
	}
}

func (p *Poller) launch(ctx context.Context) {
	seq := p.issued.Add(1)
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		if _, err := p.fetchAndApply(ctx, seq); err != nil && !errors.Is(err, ErrStaleResult) {
			log.Error().Err(err).Int("route_id", p.routeID).Uint64("seq", seq).Msg("refresh cycle failed")
		}
	}()
}

// PollOnce runs a single synchronous fetch and apply.
func (p *Poller) PollOnce(ctx context.Context) (domain.View, error) {
	return p.fetchAndApply(ctx, p.issued.Add(1))
}

// Latest returns the most recently applied view, or nil before the first cycle.
func (p *Poller) Latest() *domain.View {
	return p.latest.Load()
}

func (p *Poller) fetchAndApply(ctx context.Context, seq uint64) (_ domain.View, err error) {
	defer obs.Time(ctx, "poller.fetchAndApply")(&err)

	start := p.now()

	fetchCtx := ctx
	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}

	pkgs, err := p.repo.ListPackages(fetchCtx, p.routeID)
	if err != nil {
		p.metrics.ObserveFetchError()
		return domain.View{}, fmt.Errorf("refresh cycle: list packages for route %d: %w", p.routeID, err)
	}

	view, ok := p.apply(seq, pkgs, start)
	if !ok {
		p.metrics.ObserveStale()
		log.Debug().Int("route_id", p.routeID).Uint64("seq", seq).Msg("discarded stale fetch result")
		return domain.View{}, ErrStaleResult
	}

	log.Info().
		Int("route_id", p.routeID).
		Int("cycle", view.Cycle).
		Int("stops", len(view.Stops)).
		Int("zones", view.ZoneCount).
		Int("pending", view.Counts.Pending).
		Int("delivered", view.Counts.Delivered).
		Int("failed", view.Counts.Failed).
		Int("transitions", len(view.Transitions)).
		Msg("refresh cycle applied")

	if len(view.Transitions) > 0 && p.notifier != nil {
		if err := p.notifier.Notify(ctx, p.routeID, view.Transitions); err != nil {
			log.Warn().Err(err).Int("route_id", p.routeID).Msg("notify transitions failed")
		}
	}

	return view, nil
}

// apply is the single writer of the engine state.
func (p *Poller) apply(seq uint64, pkgs []*domain.Package, start time.Time) (domain.View, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.applied {
		return domain.View{}, false
	}

	view := p.engine.Refresh(pkgs)
	view.ComputedAt = p.now()
	p.applied = seq

	published := view
	p.latest.Store(&published)
	p.metrics.ObserveView(p.routeID, view, p.now().Sub(start))

	return view, true
}
