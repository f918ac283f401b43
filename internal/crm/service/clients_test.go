package service

import (
	"context"
	"testing"

	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clients := &ClientService{Store: st}

	alice := registerUser(t, st, "alice", "pw12345")
	bob := registerUser(t, st, "bob", "pw12345")

	t.Run("create requires a name", func(t *testing.T) {
		var vErr *ValidationError
		_, err := clients.Create(ctx, alice.ID, CreateClientInput{Name: "   "})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "name", vErr.Field)
	})

	acme, err := clients.Create(ctx, alice.ID, CreateClientInput{
		Name:    "Acme",
		Email:   "billing@acme.test",
		Phone:   "+61 400 000 000",
		Company: "Acme Pty Ltd",
	})
	require.NoError(t, err)

	t.Run("other tenants cannot see the client", func(t *testing.T) {
		_, err := clients.Get(ctx, acme.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		list, err := clients.List(ctx, bob.ID)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		updated, err := clients.Update(ctx, acme.ID, alice.ID, UpdateClientInput{
			Email: strPtr("accounts@acme.test"),
		})
		require.NoError(t, err)
		require.Equal(t, "Acme", updated.Name)
		require.Equal(t, "accounts@acme.test", updated.Email)
		require.Equal(t, "+61 400 000 000", updated.Phone)
	})

	t.Run("update rejects blanking the name", func(t *testing.T) {
		var vErr *ValidationError
		_, err := clients.Update(ctx, acme.ID, alice.ID, UpdateClientInput{Name: strPtr("")})
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("cross-tenant update and delete read as missing", func(t *testing.T) {
		_, err := clients.Update(ctx, acme.ID, bob.ID, UpdateClientInput{Name: strPtr("Hijacked")})
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, clients.Delete(ctx, acme.ID, bob.ID), store.ErrNotFound)

		got, err := clients.Get(ctx, acme.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Acme", got.Name)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, clients.Delete(ctx, acme.ID, alice.ID))
		_, err := clients.Get(ctx, acme.ID, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
