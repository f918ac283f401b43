package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/tallyhq/crm/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedClient(t *testing.T, s *Store, ownerID, name string) domain.Client {
	t.Helper()

	c := domain.Client{
		ID:      idx.New().String(),
		OwnerID: ownerID,
		Name:    name,
		Email:   name + "@example.com",
	}
	require.NoError(t, s.Clients().CreateClient(context.Background(), c))
	return c
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("username is unique case-insensitively", func(t *testing.T) {
		seedUser(t, s, "Alice")

		err := s.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Username:     "alice",
			PasswordHash: "x",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup by username ignores case", func(t *testing.T) {
		u, err := s.Users().GetUserByUsername(ctx, "ALICE")
		require.NoError(t, err)
		require.Equal(t, "Alice", u.Username)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("totp lifecycle", func(t *testing.T) {
		u := seedUser(t, s, "totp-user")

		require.NoError(t, s.Users().UpdateTOTPSecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"))
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TOTPSecret)
		require.False(t, got.MFAActive())

		require.NoError(t, s.Users().EnableTOTP(ctx, u.ID))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.MFAActive())

		require.NoError(t, s.Users().DisableTOTP(ctx, u.ID))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Nil(t, got.TOTPSecret)
		require.False(t, got.MFAActive())
	})
}

func TestClientsRepoOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	acme := seedClient(t, s, alice.ID, "acme")

	t.Run("owner can read", func(t *testing.T) {
		got, err := s.Clients().GetClient(ctx, acme.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "acme", got.Name)
	})

	t.Run("foreign owner reads as missing", func(t *testing.T) {
		_, err := s.Clients().GetClient(ctx, acme.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("foreign owner cannot update or delete", func(t *testing.T) {
		acme.OwnerID = bob.ID
		require.ErrorIs(t, s.Clients().UpdateClient(ctx, acme), store.ErrNotFound)
		require.ErrorIs(t, s.Clients().DeleteClient(ctx, acme.ID, bob.ID), store.ErrNotFound)
		acme.OwnerID = alice.ID
	})

	t.Run("list is scoped and newest first", func(t *testing.T) {
		seedClient(t, s, bob.ID, "bobco")

		clients, err := s.Clients().ListClients(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, acme.ID, clients[0].ID)
	})

	t.Run("empty tenant lists empty not nil", func(t *testing.T) {
		carol := seedUser(t, s, "carol")
		clients, err := s.Clients().ListClients(ctx, carol.ID)
		require.NoError(t, err)
		require.NotNil(t, clients)
		require.Empty(t, clients)
	})
}

func TestProjectsRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	acme := seedClient(t, s, alice.ID, "acme")
	bobco := seedClient(t, s, bob.ID, "bobco")

	p := domain.Project{
		ID:              idx.New().String(),
		ClientID:        acme.ID,
		Title:           "Website redesign",
		Status:          domain.DefaultProjectStatus,
		StartDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PaymentCurrency: "USD",
		PaymentStatus:   domain.PaymentUnpaid,
		PaymentAmount:   1500,
	}
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	t.Run("ownership resolves through the client", func(t *testing.T) {
		got, err := s.Projects().GetProject(ctx, p.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Website redesign", got.Title)

		_, err = s.Projects().GetProject(ctx, p.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list filtered by client", func(t *testing.T) {
		projects, err := s.Projects().ListProjects(ctx, alice.ID, acme.ID)
		require.NoError(t, err)
		require.Len(t, projects, 1)
	})

	t.Run("foreign client filter yields empty list", func(t *testing.T) {
		projects, err := s.Projects().ListProjects(ctx, alice.ID, bobco.ID)
		require.NoError(t, err)
		require.Empty(t, projects)
	})

	t.Run("update is owner scoped", func(t *testing.T) {
		p.Title = "Website rebuild"
		p.PaymentStatus = domain.PaymentPartial
		require.NoError(t, s.Projects().UpdateProject(ctx, p, alice.ID))
		require.ErrorIs(t, s.Projects().UpdateProject(ctx, p, bob.ID), store.ErrNotFound)

		got, err := s.Projects().GetProject(ctx, p.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Website rebuild", got.Title)
		require.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	})

	t.Run("nullable due date round-trips", func(t *testing.T) {
		due := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		p.DueDate = &due
		require.NoError(t, s.Projects().UpdateProject(ctx, p, alice.ID))

		got, err := s.Projects().GetProject(ctx, p.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		require.True(t, got.DueDate.Equal(due))
	})

	t.Run("delete is owner scoped", func(t *testing.T) {
		require.ErrorIs(t, s.Projects().DeleteProject(ctx, p.ID, bob.ID), store.ErrNotFound)
		require.NoError(t, s.Projects().DeleteProject(ctx, p.ID, alice.ID))
		_, err := s.Projects().GetProject(ctx, p.ID, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvoicesRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	acme := seedClient(t, s, alice.ID, "acme")
	bobco := seedClient(t, s, bob.ID, "bobco")

	inv := domain.Invoice{
		ID:        idx.New().String(),
		ClientID:  acme.ID,
		Number:    "INV-001",
		IssueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.InvoiceDraft,
		Total:     250.50,
	}
	require.NoError(t, s.Invoices().CreateInvoice(ctx, inv))

	t.Run("invoice number is unique across tenants", func(t *testing.T) {
		err := s.Invoices().CreateInvoice(ctx, domain.Invoice{
			ID:        idx.New().String(),
			ClientID:  bobco.ID,
			Number:    "INV-001",
			IssueDate: time.Now().UTC(),
			Status:    domain.InvoiceDraft,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("ownership resolves through the client", func(t *testing.T) {
		got, err := s.Invoices().GetInvoice(ctx, inv.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "INV-001", got.Number)
		require.InDelta(t, 250.50, got.Total, 0.001)

		_, err = s.Invoices().GetInvoice(ctx, inv.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("renumber collision maps to ErrAlreadyExists", func(t *testing.T) {
		second := domain.Invoice{
			ID:        idx.New().String(),
			ClientID:  acme.ID,
			Number:    "INV-002",
			IssueDate: time.Now().UTC(),
			Status:    domain.InvoiceSent,
		}
		require.NoError(t, s.Invoices().CreateInvoice(ctx, second))

		second.Number = "INV-001"
		require.ErrorIs(t, s.Invoices().UpdateInvoice(ctx, second, alice.ID), store.ErrAlreadyExists)
	})

	t.Run("update and delete are owner scoped", func(t *testing.T) {
		inv.Status = domain.InvoicePaid
		require.ErrorIs(t, s.Invoices().UpdateInvoice(ctx, inv, bob.ID), store.ErrNotFound)
		require.NoError(t, s.Invoices().UpdateInvoice(ctx, inv, alice.ID))

		require.ErrorIs(t, s.Invoices().DeleteInvoice(ctx, inv.ID, bob.ID), store.ErrNotFound)
		require.NoError(t, s.Invoices().DeleteInvoice(ctx, inv.ID, alice.ID))
	})
}

func TestCascadingDeletes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")
	acme := seedClient(t, s, alice.ID, "acme")

	p := domain.Project{
		ID:              idx.New().String(),
		ClientID:        acme.ID,
		Title:           "Audit",
		Status:          domain.DefaultProjectStatus,
		StartDate:       time.Now().UTC(),
		PaymentCurrency: "EUR",
		PaymentStatus:   domain.PaymentUnpaid,
	}
	require.NoError(t, s.Projects().CreateProject(ctx, p))

	inv := domain.Invoice{
		ID:        idx.New().String(),
		ClientID:  acme.ID,
		Number:    "INV-100",
		IssueDate: time.Now().UTC(),
		Status:    domain.InvoiceDraft,
	}
	require.NoError(t, s.Invoices().CreateInvoice(ctx, inv))

	t.Run("deleting a client removes its projects and invoices", func(t *testing.T) {
		require.NoError(t, s.Clients().DeleteClient(ctx, acme.ID, alice.ID))

		_, err := s.Projects().GetProject(ctx, p.ID, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Invoices().GetInvoice(ctx, inv.ID, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting a user removes the whole tenant", func(t *testing.T) {
		bob := seedUser(t, s, "bob")
		bobco := seedClient(t, s, bob.ID, "bobco")

		require.NoError(t, s.Users().DeleteUser(ctx, bob.ID))

		_, err := s.Clients().GetClient(ctx, bobco.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")

	tok := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    alice.ID,
		TokenHash: "fingerprint-1",
		SessionID: idx.New().String(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))

	t.Run("lookup by fingerprint", func(t *testing.T) {
		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fingerprint-1")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.UserID)
		require.False(t, got.Revoked)
	})

	t.Run("revoke flips the flag", func(t *testing.T) {
		require.NoError(t, s.RefreshTokens().RevokeRefreshToken(ctx, "fingerprint-1"))
		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fingerprint-1")
		require.NoError(t, err)
		require.True(t, got.Revoked)
	})

	t.Run("expired tokens are swept", func(t *testing.T) {
		expired := domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    alice.ID,
			TokenHash: "fingerprint-expired",
			SessionID: idx.New().String(),
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, expired))

		require.NoError(t, s.RefreshTokens().DeleteExpiredRefreshTokens(ctx))
		_, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "fingerprint-expired")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")

	t.Run("rollback on error", func(t *testing.T) {
		id := idx.New().String()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Clients().CreateClient(ctx, domain.Client{
				ID: id, OwnerID: alice.ID, Name: "doomed",
			}); err != nil {
				return err
			}
			return context.Canceled
		})
		require.ErrorIs(t, err, context.Canceled)

		_, err = s.Clients().GetClient(ctx, id, alice.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		id := idx.New().String()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Clients().CreateClient(ctx, domain.Client{
				ID: id, OwnerID: alice.ID, Name: "kept",
			})
		})
		require.NoError(t, err)

		got, err := s.Clients().GetClient(ctx, id, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "kept", got.Name)
	})
}
