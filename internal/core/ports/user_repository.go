package ports

import (
	"context"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// UserRepository persists user identities. Uniqueness of username and email
// is guaranteed here, at the persistence layer, as the source of truth.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// DeleteCascade removes the user together with every menu it owns and
	// every dish on those menus, atomically. No partial deletion may be
	// observable.
	DeleteCascade(ctx context.Context, id int64) error
}
