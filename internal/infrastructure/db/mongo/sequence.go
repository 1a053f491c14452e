package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// nextID returns the next value of a named monotonic sequence, backed by an
// $inc upsert on the counters collection. This keeps the public API on small
// integer identifiers instead of ObjectIDs.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	res := db.Collection(countersCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return doc.Seq, nil
}
