package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

const (
	menusCollection  = "menus"
	dishesCollection = "dishes"
)

// MenuRepository implements ports.MenuRepository on MongoDB. Menus and dishes
// live in separate collections; every multi-document mutation runs inside a
// transaction.
type MenuRepository struct {
	db *mongo.Database
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{db: db}
}

type menuDoc struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Status      string `bson:"status"`
	OwnerID     *int64 `bson:"owner_id,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

type dishDoc struct {
	ID          int64   `bson:"_id"`
	MenuID      int64   `bson:"menu_id"`
	Name        string  `bson:"name"`
	Description string  `bson:"description"`
	Section     string  `bson:"section"`
	Bitter      *int    `bson:"bitter,omitempty"`
	Salty       *int    `bson:"salty,omitempty"`
	Sour        *int    `bson:"sour,omitempty"`
	Sweet       *int    `bson:"sweet,omitempty"`
	Umami       *int    `bson:"umami,omitempty"`
	Fat         *int    `bson:"fat,omitempty"`
	Piquant     *int    `bson:"piquant,omitempty"`
	Temperature *int    `bson:"temperature,omitempty"`
	Color1      string  `bson:"color1,omitempty"`
	Color2      string  `bson:"color2,omitempty"`
	Color3      string  `bson:"color3,omitempty"`
	EmotionIDs  []int64 `bson:"emotion_ids,omitempty"`
	TextureIDs  []int64 `bson:"texture_ids,omitempty"`
	ShapeIDs    []int64 `bson:"shape_ids,omitempty"`
}

func (r *MenuRepository) menus() *mongo.Collection {
	return r.db.Collection(menusCollection)
}

func (r *MenuRepository) dishes() *mongo.Collection {
	return r.db.Collection(dishesCollection)
}

// Create inserts the menu and its initial dishes in a single transaction, so
// a reader never sees the menu without its composed dishes.
func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu, dishes []domain.Dish) (*domain.Menu, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("%w: start session: %v", domain.ErrPersistence, err)
	}
	defer session.EndSession(ctx)

	created := *menu
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		menuID, err := nextID(sc, r.db, menusCollection)
		if err != nil {
			return nil, err
		}
		created.ID = menuID

		if _, err := r.menus().InsertOne(sc, toMenuDoc(&created)); err != nil {
			return nil, err
		}

		for i := range dishes {
			dishID, err := nextID(sc, r.db, dishesCollection)
			if err != nil {
				return nil, err
			}
			dishes[i].ID = dishID
			dishes[i].MenuID = menuID
			if _, err := r.dishes().InsertOne(sc, toDishDoc(&dishes[i])); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create menu: %v", domain.ErrPersistence, err)
	}
	return &created, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id int64) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc menuDoc
	if err := r.menus().FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MenuRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Menu, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MenuRepository) ListAll(ctx context.Context) ([]domain.Menu, error) {
	return r.list(ctx, bson.M{})
}

func (r *MenuRepository) list(ctx context.Context, filter bson.M) ([]domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.menus().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	var docs []menuDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	menus := make([]domain.Menu, 0, len(docs))
	for _, d := range docs {
		menus = append(menus, *d.toDomain())
	}
	return menus, nil
}

func (r *MenuRepository) ListDishes(ctx context.Context, menuID int64) ([]domain.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.dishes().Find(ctx, bson.M{"menu_id": menuID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	var docs []dishDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}

	dishes := make([]domain.Dish, 0, len(docs))
	for _, d := range docs {
		dishes = append(dishes, *d.toDomain())
	}
	return dishes, nil
}

func (r *MenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.menus().UpdateOne(ctx,
		bson.M{"_id": menu.ID},
		bson.M{"$set": bson.M{
			"title":       menu.Title,
			"description": menu.Description,
			"status":      string(menu.Status),
			"updated_at":  menu.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMenuNotFound
	}
	return nil
}

// SubmitIfDraft performs the draft → submitted transition as a conditional
// update. The status filter makes the transition race-safe: a concurrent
// submit that lost the race matches nothing and reports false.
func (r *MenuRepository) SubmitIfDraft(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.menus().UpdateOne(ctx,
		bson.M{"_id": id, "status": string(domain.StatusDraft)},
		bson.M{"$set": bson.M{
			"status":     string(domain.StatusSubmitted),
			"updated_at": time.Now().Unix(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("submit menu: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteCascade removes the menu and all of its dishes in one transaction.
func (r *MenuRepository) DeleteCascade(ctx context.Context, id int64) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %v", domain.ErrPersistence, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.dishes().DeleteMany(sc, bson.M{"menu_id": id}); err != nil {
			return nil, err
		}
		res, err := r.menus().DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrMenuNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			return err
		}
		return fmt.Errorf("%w: delete menu cascade: %v", domain.ErrPersistence, err)
	}
	return nil
}

func toMenuDoc(m *domain.Menu) menuDoc {
	return menuDoc{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt.Unix(),
		UpdatedAt:   m.UpdatedAt.Unix(),
	}
}

func (d menuDoc) toDomain() *domain.Menu {
	return &domain.Menu{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.MenuStatus(d.Status),
		OwnerID:     d.OwnerID,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func toDishDoc(d *domain.Dish) dishDoc {
	return dishDoc{
		ID:          d.ID,
		MenuID:      d.MenuID,
		Name:        d.Name,
		Description: d.Description,
		Section:     d.Section,
		Bitter:      d.Bitter,
		Salty:       d.Salty,
		Sour:        d.Sour,
		Sweet:       d.Sweet,
		Umami:       d.Umami,
		Fat:         d.Fat,
		Piquant:     d.Piquant,
		Temperature: d.Temperature,
		Color1:      d.Color1,
		Color2:      d.Color2,
		Color3:      d.Color3,
		EmotionIDs:  d.EmotionIDs,
		TextureIDs:  d.TextureIDs,
		ShapeIDs:    d.ShapeIDs,
	}
}

func (d dishDoc) toDomain() *domain.Dish {
	return &domain.Dish{
		ID:          d.ID,
		MenuID:      d.MenuID,
		Name:        d.Name,
		Description: d.Description,
		Section:     d.Section,
		Bitter:      d.Bitter,
		Salty:       d.Salty,
		Sour:        d.Sour,
		Sweet:       d.Sweet,
		Umami:       d.Umami,
		Fat:         d.Fat,
		Piquant:     d.Piquant,
		Temperature: d.Temperature,
		Color1:      d.Color1,
		Color2:      d.Color2,
		Color3:      d.Color3,
		EmotionIDs:  d.EmotionIDs,
		TextureIDs:  d.TextureIDs,
		ShapeIDs:    d.ShapeIDs,
	}
}
