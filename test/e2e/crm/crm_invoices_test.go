package crm_test

import (
	"testing"

	"github.com/tallyhq/crm/pkg/crmsdk"

	"github.com/stretchr/testify/require"
)

// TestInvoiceCRUD exercises the full invoice lifecycle over HTTP.
func TestInvoiceCRUD(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "mallory")
	customer := createTestClient(t, session, "Wayne Enterprises")

	// Create with defaults
	created, err := session.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
		ClientID: strPtr(customer.ID),
		Number:   strPtr("INV-0001"),
		Total:    f64Ptr(1200.00),
	})
	require.NoError(t, err)
	require.Equal(t, "draft", created.Status)
	require.NotEmpty(t, created.IssueDate, "Issue date should default to today")
	require.InDelta(t, 1200.00, created.Total, 0.001)

	// Update status and due date
	updated, err := session.UpdateInvoice(t.Context(), created.ID, crmsdk.InvoiceRequest{
		Status:  strPtr("sent"),
		DueDate: strPtr("2026-09-30"),
	})
	require.NoError(t, err)
	require.Equal(t, "sent", updated.Status)
	require.Equal(t, "2026-09-30", updated.DueDate)
	require.Equal(t, "INV-0001", updated.Number, "Untouched fields should survive a partial update")

	// List
	list, err := session.ListInvoices(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Delete
	require.NoError(t, session.DeleteInvoice(t.Context(), created.ID))
	_, err = session.GetInvoice(t.Context(), created.ID)
	assertNotFound(t, err)
}

// TestInvoiceNumberUnique verifies invoice numbers cannot collide, even
// across accounts.
func TestInvoiceNumberUnique(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	session1 := registerAndLogin(t, client, "nancy")
	customer1 := createTestClient(t, session1, "Stark Industries")

	_, err := session1.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
		ClientID: strPtr(customer1.ID),
		Number:   strPtr("INV-1000"),
		Total:    f64Ptr(50),
	})
	require.NoError(t, err)

	t.Run("same account", func(t *testing.T) {
		_, err := session1.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
			ClientID: strPtr(customer1.ID),
			Number:   strPtr("INV-1000"),
			Total:    f64Ptr(75),
		})
		assertAPIError(t, err, 409, crmsdk.ErrorCodeConflict)
	})

	t.Run("different account", func(t *testing.T) {
		session2 := registerAndLogin(t, client, "oscar")
		customer2 := createTestClient(t, session2, "Oscorp")

		_, err := session2.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
			ClientID: strPtr(customer2.ID),
			Number:   strPtr("INV-1000"),
			Total:    f64Ptr(75),
		})
		assertAPIError(t, err, 409, crmsdk.ErrorCodeConflict)
	})
}

// TestInvoiceValidation covers invoice field validation.
func TestInvoiceValidation(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "peggy")
	customer := createTestClient(t, session, "Hooli")

	t.Run("missing number", func(t *testing.T) {
		_, err := session.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
			ClientID: strPtr(customer.ID),
			Total:    f64Ptr(10),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := session.CreateInvoice(t.Context(), crmsdk.InvoiceRequest{
			ClientID: strPtr(customer.ID),
			Number:   strPtr("INV-2000"),
			Status:   strPtr("cancelled"),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})
}
