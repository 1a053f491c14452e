package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB. It holds the
// database rather than a single collection because account deletion spans
// users, menus and dishes in one transaction.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

type userDoc struct {
	ID           int64  `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email,omitempty"`
	PasswordHash string `bson:"password_hash"`
	IsAdmin      bool   `bson:"is_admin"`
	IsManager    bool   `bson:"is_manager"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *UserRepository) col() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := userDoc{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		IsManager:    user.IsManager,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	if _, err := r.col().InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col().FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"email": email, "updated_at": time.Now().Unix()}},
	)
	if err != nil {
		// The unique index on email catches the concurrent-claim race the
		// service-level pre-check cannot.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailInUse
		}
		return fmt.Errorf("update email: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteCascade removes the user, every menu it owns, and every dish on those
// menus inside one multi-document transaction. Readers never observe a user
// without its menus or a menu without its dishes mid-deletion.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %v", domain.ErrPersistence, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		menus := r.db.Collection(menusCollection)
		cursor, err := menus.Find(sc, bson.M{"owner_id": id})
		if err != nil {
			return nil, err
		}

		var owned []struct {
			ID int64 `bson:"_id"`
		}
		if err := cursor.All(sc, &owned); err != nil {
			return nil, err
		}

		if len(owned) > 0 {
			menuIDs := make([]int64, 0, len(owned))
			for _, m := range owned {
				menuIDs = append(menuIDs, m.ID)
			}
			if _, err := r.db.Collection(dishesCollection).DeleteMany(sc, bson.M{"menu_id": bson.M{"$in": menuIDs}}); err != nil {
				return nil, err
			}
			if _, err := menus.DeleteMany(sc, bson.M{"_id": bson.M{"$in": menuIDs}}); err != nil {
				return nil, err
			}
		}

		res, err := r.col().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrUserNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: delete user cascade: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
		IsManager:    d.IsManager,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
