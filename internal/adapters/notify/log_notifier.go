package notify

import (
	"context"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogNotifier reports status transitions as structured log events.
// It stands in for the courier-facing push channel.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(ctx context.Context, routeID int, transitions []domain.Transition) error {
	summary := services.SummarizeTransitions(transitions)

	for _, t := range transitions {
		n.logger.Debug().
			Int("route_id", routeID).
			Int("package_id", t.PackageID).
			Str("tracking_code", t.TrackingCode).
			Str("from", string(t.From)).
			Str("to", string(t.To)).
			Msg("package status changed")
	}

	n.logger.Info().
		Int("route_id", routeID).
		Int("delivered", summary.Delivered).
		Int("failed", summary.Failed).
		Int("pending", summary.Pending).
		Msg(summary.String())

	return nil
}
