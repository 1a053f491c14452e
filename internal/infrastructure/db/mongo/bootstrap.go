package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// Default sensory attribute vocabulary seeded on first start.
var (
	seedEmotions = []string{
		"joy", "anger", "fear", "sadness", "surprise", "satisfaction",
		"gratitude", "hope", "love", "serenity", "euphoria", "conviviality",
		"playfulness",
	}
	seedTextures = []string{
		"rough", "soft", "hard", "creamy", "crunchy", "liquid", "viscous",
		"solid", "hollow", "dense", "porous", "airy",
	}
	seedShapes = []string{
		"sharp", "round", "smooth", "symmetric", "asymmetric", "compact",
		"loose",
	}
)

// AdminSeed is the environment-provided bootstrap identity.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

// Bootstrap ensures indexes, seeds the attribute lookup collections, and
// creates the admin user when missing. Safe to run on every start and from
// multiple workers at once: everything is idempotent and unique indexes
// resolve creation races.
func Bootstrap(ctx context.Context, db *mongo.Database, admin AdminSeed, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := ensureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	for coll, values := range map[string][]string{
		"emotions": seedEmotions,
		"textures": seedTextures,
		"shapes":   seedShapes,
	} {
		if err := seedAttributes(ctx, db, coll, values); err != nil {
			return fmt.Errorf("seed %s: %w", coll, err)
		}
	}

	if err := ensureAdminUser(ctx, db, admin, log); err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse: email is optional, only set addresses must be unique.
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(menusCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(dishesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "menu_id", Value: 1}},
	}); err != nil {
		return err
	}

	_, err := db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "menu_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}

func seedAttributes(ctx context.Context, db *mongo.Database, coll string, values []string) error {
	c := db.Collection(coll)
	for _, description := range values {
		n, err := c.CountDocuments(ctx, bson.M{"description": description})
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		id, err := nextID(ctx, db, coll)
		if err != nil {
			return err
		}
		if _, err := c.InsertOne(ctx, bson.M{"_id": id, "description": description}); err != nil {
			return err
		}
	}
	return nil
}

func ensureAdminUser(ctx context.Context, db *mongo.Database, admin AdminSeed, log zerolog.Logger) error {
	if admin.Username == "" || admin.Password == "" {
		log.Warn().Msg("admin seed identity not configured, skipping")
		return nil
	}

	users := db.Collection(usersCollection)
	n, err := users.CountDocuments(ctx, bson.M{"username": admin.Username})
	if err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Str("username", admin.Username).Msg("admin user already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	id, err := nextID(ctx, db, usersCollection)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := userDoc{
		ID:           id,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsManager:    true,
		CreatedAt:    now.Unix(),
		UpdatedAt:    now.Unix(),
	}
	if _, err := users.InsertOne(ctx, doc); err != nil {
		// Another worker won the race; the account exists either way.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return err
	}

	log.Info().Str("username", admin.Username).Int64("user_id", id).Str("role", string(domain.RoleAdmin)).Msg("admin user created")
	return nil
}
