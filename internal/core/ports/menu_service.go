package ports

import (
	"context"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// DishInput carries the sensory payload for a dish composed at menu creation.
type DishInput struct {
	Name        string
	Description string
	Section     string
	Bitter      *int
	Salty       *int
	Sour        *int
	Sweet       *int
	Umami       *int
	Fat         *int
	Piquant     *int
	Temperature *int
	Colors      []string
	EmotionIDs  []int64
	TextureIDs  []int64
	ShapeIDs    []int64
}

// CreateMenuInput is the payload for creating a menu with optional dishes.
type CreateMenuInput struct {
	Title       string
	Description string
	Dishes      []DishInput
}

// UpdateMenuInput is a partial update; nil fields are left untouched.
type UpdateMenuInput struct {
	Title       *string
	Description *string
	Status      *string
}

// MenuDetail is a menu together with its dishes.
type MenuDetail struct {
	Menu   domain.Menu
	Dishes []domain.Dish
}

// MenuService implements the menu lifecycle behind ownership checks.
type MenuService interface {
	Create(ctx context.Context, ownerID int64, in CreateMenuInput) (*domain.Menu, error)
	Get(ctx context.Context, callerID, menuID int64) (*MenuDetail, error)
	List(ctx context.Context, callerID int64) ([]domain.Menu, error)
	ListAll(ctx context.Context, callerID int64) ([]domain.Menu, error)
	Update(ctx context.Context, callerID, menuID int64, in UpdateMenuInput) error
	Submit(ctx context.Context, callerID, menuID int64) error
	Delete(ctx context.Context, callerID, menuID int64) error
}
