package service

import (
	"context"
	"testing"

	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	accounts := &AccountService{Store: st}

	t.Run("creates an account with a hashed password", func(t *testing.T) {
		u, err := accounts.Register(ctx, "alice", "pw12345")
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.Equal(t, "alice", u.Username)
		require.NotEqual(t, "pw12345", u.PasswordHash)
		require.Contains(t, u.PasswordHash, "$argon2id$")
		require.False(t, u.CreatedAt.IsZero(), "created_at must be stamped on the returned account")
		require.False(t, u.UpdatedAt.IsZero())
	})

	t.Run("rejects duplicate usernames regardless of case", func(t *testing.T) {
		_, err := accounts.Register(ctx, "ALICE", "different-pw")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects empty and whitespace usernames", func(t *testing.T) {
		var vErr *ValidationError

		_, err := accounts.Register(ctx, "", "pw12345")
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "username", vErr.Field)

		_, err = accounts.Register(ctx, "has space", "pw12345")
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		var vErr *ValidationError
		_, err := accounts.Register(ctx, "bob", "short")
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "password", vErr.Field)
	})

	t.Run("deleting a user removes the tenant", func(t *testing.T) {
		u, err := accounts.Register(ctx, "doomed", "pw12345")
		require.NoError(t, err)
		c := createClient(t, st, u.ID, "orphan")

		require.NoError(t, accounts.DeleteUser(ctx, u.ID))

		_, err = st.Clients().GetClient(ctx, c.ID, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
