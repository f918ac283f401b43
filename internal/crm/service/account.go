package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/cryptox"
	"github.com/tallyhq/crm/pkg/idx"
	"github.com/tallyhq/crm/pkg/slogx"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 150
)

// AccountService handles self-service registration and account removal.
type AccountService struct {
	Store store.Store
}

// Register creates a new account. Usernames are unique case-insensitively;
// a collision returns ErrUsernameTaken.
func (s *AccountService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, invalidf("username", "must not be empty")
	}
	if len(username) > maxUsernameLength {
		return domain.User{}, invalidf("username", "must be at most %d characters", maxUsernameLength)
	}
	if strings.ContainsAny(username, " \t\n") {
		return domain.User{}, invalidf("username", "must not contain whitespace")
	}
	if len(password) < minPasswordLength {
		return domain.User{}, invalidf("password", "must be at least %d characters", minPasswordLength)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	// Re-read so the caller sees the stored created_at/updated_at.
	created, err := s.Store.Users().GetUserByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("account registered",
		slog.String("user_id", created.ID),
		slog.String("username", created.Username),
	)
	return created, nil
}

// GetUser fetches an account by id.
func (s *AccountService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// DeleteUser removes the account and, via cascade, every client, project,
// invoice and session the account owns.
func (s *AccountService) DeleteUser(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}
