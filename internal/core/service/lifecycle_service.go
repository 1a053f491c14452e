package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tastecraft/menu-studio/internal/api/metrics"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

type lifecycleService struct {
	repo ports.LifecycleRepository
	log  zerolog.Logger
}

// NewLifecycleService returns the audit-trail writer invoked by the
// dispatcher workers.
func NewLifecycleService(repo ports.LifecycleRepository, log zerolog.Logger) ports.LifecycleService {
	return &lifecycleService{repo: repo, log: log}
}

// Process persists one lifecycle event to the audit trail.
func (s *lifecycleService) Process(ctx context.Context, event domain.LifecycleEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.LifecycleEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("record lifecycle event: %w", err)
	}

	metrics.LifecycleEventsTotal.WithLabelValues(string(event.Action)).Inc()
	s.log.Debug().
		Int64("menu_id", event.MenuID).
		Str("action", string(event.Action)).
		Str("status", string(event.Status)).
		Msg("lifecycle event recorded")
	return nil
}
