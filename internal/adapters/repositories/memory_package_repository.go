package repositories

import (
	"context"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/ports"
	"fmt"
	"sync"
)

// In-memory PackageRepository used by tests and offline previews.
// ListPackages returns copies, so later updates never alter a list already
// handed to a refresh pass.
type MemoryPackageRepository struct {
	mu    sync.RWMutex
	pkgs  []*domain.Package
	index map[int]int
}

func NewMemoryPackageRepository(pkgs []*domain.Package) *MemoryPackageRepository {
	r := &MemoryPackageRepository{index: make(map[int]int, len(pkgs))}
	_ = r.UpsertPackages(context.Background(), pkgs)
	return r
}

func (r *MemoryPackageRepository) ListPackages(ctx context.Context, routeID int) ([]*domain.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Package, 0, len(r.pkgs))
	for _, p := range r.pkgs {
		if p.RouteID != routeID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryPackageRepository) UpdateStatus(
	ctx context.Context,
	packageID int,
	status domain.Status,
) (domain.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[packageID]
	if !ok {
		return "", fmt.Errorf("update status: package_id=%d: %w", packageID, ports.ErrPackageNotFound)
	}

	// Replace rather than mutate so copies handed out earlier stay intact.
	cp := *r.pkgs[i]
	old := cp.Status
	cp.Status = status
	r.pkgs[i] = &cp

	return old, nil
}

func (r *MemoryPackageRepository) UpsertPackages(ctx context.Context, pkgs []*domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pkgs {
		if p == nil {
			continue
		}
		cp := *p
		if i, ok := r.index[p.ID]; ok {
			r.pkgs[i] = &cp
			continue
		}
		r.index[p.ID] = len(r.pkgs)
		r.pkgs = append(r.pkgs, &cp)
	}
	return nil
}
