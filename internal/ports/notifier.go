package ports

import (
	"context"
	"courier-map-service/internal/domain"
)

// Receives the status transitions detected by one refresh pass.
// Only called when at least one transition exists.
type Notifier interface {
	Notify(ctx context.Context, routeID int, transitions []domain.Transition) error
}
