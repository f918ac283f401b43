package service

import (
	"context"
	"testing"

	"github.com/tallyhq/crm/internal/crm/domain"
	"github.com/tallyhq/crm/internal/crm/store"
	"github.com/stretchr/testify/require"
)

func TestInvoiceService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	invoices := &InvoiceService{Store: st}

	alice := registerUser(t, st, "alice", "pw12345")
	bob := registerUser(t, st, "bob", "pw12345")
	acme := createClient(t, st, alice.ID, "Acme")
	bobco := createClient(t, st, bob.ID, "Bobco")

	t.Run("defaults applied on create", func(t *testing.T) {
		inv, err := invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "INV-001",
			Total:    250.50,
		})
		require.NoError(t, err)
		require.Equal(t, domain.InvoiceDraft, inv.Status)
		require.False(t, inv.IssueDate.IsZero())
		require.InDelta(t, 250.50, inv.Total, 0.001)
	})

	t.Run("numbers are unique across tenants", func(t *testing.T) {
		_, err := invoices.Create(ctx, bob.ID, CreateInvoiceInput{
			ClientID: bobco.ID,
			Number:   "INV-001",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("validation", func(t *testing.T) {
		var vErr *ValidationError

		_, err := invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "  ",
		})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "number", vErr.Field)

		_, err = invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "INV-BAD",
			Status:   "cancelled",
		})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "status", vErr.Field)

		_, err = invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "INV-NEG",
			Total:    -5,
		})
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "total", vErr.Field)
	})

	t.Run("cannot bill another tenant's client", func(t *testing.T) {
		_, err := invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: bobco.ID,
			Number:   "INV-XT",
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list scoped to owner", func(t *testing.T) {
		mine, err := invoices.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "INV-001", mine[0].Number)
	})

	t.Run("partial update and renumber collision", func(t *testing.T) {
		second, err := invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "INV-002",
		})
		require.NoError(t, err)

		updated, err := invoices.Update(ctx, second.ID, alice.ID, UpdateInvoiceInput{
			Status: strPtr(domain.InvoiceSent),
			Total:  f64Ptr(99.95),
		})
		require.NoError(t, err)
		require.Equal(t, "INV-002", updated.Number)
		require.Equal(t, domain.InvoiceSent, updated.Status)
		require.InDelta(t, 99.95, updated.Total, 0.001)

		_, err = invoices.Update(ctx, second.ID, alice.ID, UpdateInvoiceInput{
			Number: strPtr("INV-001"),
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("cross-tenant access reads as missing", func(t *testing.T) {
		inv, err := invoices.Create(ctx, alice.ID, CreateInvoiceInput{
			ClientID: acme.ID,
			Number:   "INV-003",
		})
		require.NoError(t, err)

		_, err = invoices.Get(ctx, inv.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = invoices.Update(ctx, inv.ID, bob.ID, UpdateInvoiceInput{Status: strPtr(domain.InvoicePaid)})
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, invoices.Delete(ctx, inv.ID, bob.ID), store.ErrNotFound)
	})
}
