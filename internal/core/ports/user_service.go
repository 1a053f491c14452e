package ports

import (
	"context"
	"time"

	"github.com/tastecraft/menu-studio/internal/core/domain"
)

// UserService implements the credential store and account lifecycle.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetSelf(ctx context.Context, userID int64) (*domain.User, error)
	UpdateEmail(ctx context.Context, userID int64, email string) error
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error

	// DeleteAccount verifies the password, revokes the authenticating token,
	// and only then cascades the deletion, so a retried request with the same
	// token cannot observe or re-trigger it.
	DeleteAccount(ctx context.Context, userID int64, password, jti string, expiresAt time.Time) error
}
