package ports

import (
	"context"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// MenuRepository persists menus and their dishes.
type MenuRepository interface {
	// Create inserts the menu and its initial dishes in a single transaction.
	Create(ctx context.Context, menu *domain.Menu, dishes []domain.Dish) (*domain.Menu, error)
	FindByID(ctx context.Context, id int64) (*domain.Menu, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Menu, error)
	ListAll(ctx context.Context) ([]domain.Menu, error)
	ListDishes(ctx context.Context, menuID int64) ([]domain.Dish, error)
	Update(ctx context.Context, menu *domain.Menu) error

	// SubmitIfDraft moves the menu to submitted only when it is still in
	// draft, reporting whether the transition happened. Of two concurrent
	// submits exactly one observes true.
	SubmitIfDraft(ctx context.Context, id int64) (bool, error)

	// DeleteCascade removes the menu and its dishes atomically.
	DeleteCascade(ctx context.Context, id int64) error
}
