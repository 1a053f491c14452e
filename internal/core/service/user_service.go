package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastecraft/menu-studio/internal/api/metrics"
	"github.com/tastecraft/menu-studio/internal/core/domain"
	"github.com/tastecraft/menu-studio/internal/core/ports"
	"github.com/tastecraft/menu-studio/internal/core/token"
)

// UserService implements registration, login and account lifecycle.
type UserService struct {
	users  ports.UserRepository
	tokens *token.Authority
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens *token.Authority, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, logger: logger}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index remains the source of truth; the pre-check above only
	// gives a friendlier fast path.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password; existence is not disclosed here.
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tok, user, nil
}

// Logout revokes the presented token. Idempotent: logging out twice with the
// same token is a no-op.
func (s *UserService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := s.tokens.Revoke(ctx, jti, expiresAt); err != nil {
		return err
	}
	metrics.TokensRevokedTotal.WithLabelValues("logout").Inc()
	return nil
}

func (s *UserService) GetSelf(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	if email == "" {
		return domain.ErrEmailRequired
	}
	if !domain.ValidateEmail(email) {
		return domain.ErrInvalidEmail
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != user.ID:
		return domain.ErrEmailInUse
	case err == nil:
		// Caller already owns this address; success without a write.
		return nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return err
	}

	return s.users.UpdateEmail(ctx, user.ID, email)
}

func (s *UserService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrPasswordsRequired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongCurrentPassword
	}

	if ok, reason := domain.ValidatePasswordStrength(newPassword); !ok {
		return &domain.WeakPasswordError{Reason: reason}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

// DeleteAccount removes the user and cascades to owned menus and dishes.
// The authenticating token is revoked before the delete commits, so a retry
// with the same token fails authentication instead of re-running the delete.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, password, jti string, expiresAt time.Time) error {
	if password == "" {
		return domain.ErrPasswordConfirmation
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrWrongPassword
	}

	if err := s.tokens.Revoke(ctx, jti, expiresAt); err != nil {
		return err
	}
	metrics.TokensRevokedTotal.WithLabelValues("account_deleted").Inc()

	start := time.Now()
	if err := s.users.DeleteCascade(ctx, user.ID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("account cascade delete failed")
		return err
	}
	metrics.CascadeDeleteDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("account deleted")
	return nil
}
