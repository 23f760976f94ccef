package services

import (
	"courier-map-service/internal/domain"
	"fmt"
	"strings"
)

// StatusSnapshot maps package id to the status seen in the previous pass.
type StatusSnapshot map[int]domain.Status

// StatusDiffTracker remembers the last seen status per package and reports
// what changed. It is not safe for concurrent use; a single owner must drive it.
type StatusDiffTracker struct {
	snapshot StatusSnapshot
}

func NewStatusDiffTracker() *StatusDiffTracker {
	return &StatusDiffTracker{snapshot: StatusSnapshot{}}
}

// Diff compares packages against the snapshot and returns one Transition per
// package whose status changed. Packages seen for the first time produce none.
// The snapshot is replaced only after the whole list has been compared; ids
// missing from packages are forgotten.
func (t *StatusDiffTracker) Diff(packages []*domain.Package) []domain.Transition {
	staged := make(StatusSnapshot, len(packages))
	transitions := make([]domain.Transition, 0)

	for _, pkg := range packages {
		if pkg == nil {
			continue
		}
		if prev, ok := t.snapshot[pkg.ID]; ok && prev != pkg.Status {
			transitions = append(transitions, domain.Transition{
				PackageID:    pkg.ID,
				TrackingCode: pkg.TrackingCode,
				From:         prev,
				To:           pkg.Status,
			})
		}
		staged[pkg.ID] = pkg.Status
	}

	t.snapshot = staged
	return transitions
}

// Snapshot returns a copy of the current snapshot.
func (t *StatusDiffTracker) Snapshot() StatusSnapshot {
	out := make(StatusSnapshot, len(t.snapshot))
	for id, s := range t.snapshot {
		out[id] = s
	}
	return out
}

// Summary of one pass's transitions, keyed by target status.
type TransitionSummary struct {
	Delivered int
	Failed    int
	Pending   int
}

func SummarizeTransitions(transitions []domain.Transition) TransitionSummary {
	var s TransitionSummary
	for _, tr := range transitions {
		switch tr.To {
		case domain.StatusDelivered:
			s.Delivered++
		case domain.StatusFailed:
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}

// String renders e.g. "2 delivered, 1 failed"; zero counts are omitted.
func (s TransitionSummary) String() string {
	parts := make([]string, 0, 3)
	if s.Delivered > 0 {
		parts = append(parts, fmt.Sprintf("%d delivered", s.Delivered))
	}
	if s.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", s.Failed))
	}
	if s.Pending > 0 {
		parts = append(parts, fmt.Sprintf("%d back to pending", s.Pending))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
