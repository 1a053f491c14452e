package ports

import (
	"context"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// LifecycleRecorder accepts audit events without blocking the request path.
type LifecycleRecorder interface {
	Record(event domain.LifecycleEvent)
}

// LifecycleService persists a single audit event.
type LifecycleService interface {
	Process(ctx context.Context, event domain.LifecycleEvent) error
}

// LifecycleRepository is the audit-trail store.
type LifecycleRepository interface {
	Insert(ctx context.Context, event *domain.LifecycleEvent) error
}
