package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
)

const eventsCollection = "menu_events"

// LifecycleRepository implements the audit-trail store.
type LifecycleRepository struct {
	db *mongo.Database
}

func NewLifecycleRepository(db *mongo.Database) ports.LifecycleRepository {
	return &LifecycleRepository{db: db}
}

// Insert appends one lifecycle event to the audit trail.
func (r *LifecycleRepository) Insert(ctx context.Context, event *domain.LifecycleEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"menu_id":      event.MenuID,
		"action":       string(event.Action),
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.OwnerID != nil {
		doc["owner_id"] = *event.OwnerID
	}

	if _, err := r.db.Collection(eventsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lifecycle event: %w", err)
	}
	return nil
}
