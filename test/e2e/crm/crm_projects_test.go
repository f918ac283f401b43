package crm_test

import (
	"testing"

	"github.com/tallyhq/crm/pkg/crmsdk"

	"github.com/stretchr/testify/require"
)

// TestProjectCRUD exercises the full project lifecycle over HTTP.
func TestProjectCRUD(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "judy")
	customer := createTestClient(t, session, "Globex")

	// Create with defaults
	created, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
		ClientID: strPtr(customer.ID),
		Title:    strPtr("Website rebuild"),
	})
	require.NoError(t, err)
	require.Equal(t, "active", created.Status)
	require.Equal(t, "USD", created.PaymentCurrency)
	require.Equal(t, "unpaid", created.PaymentStatus)
	require.NotEmpty(t, created.StartDate, "Start date should default to today")
	require.Empty(t, created.DueDate)

	// Update status, due date and amount
	updated, err := session.UpdateProject(t.Context(), created.ID, crmsdk.ProjectRequest{
		Status:        strPtr("completed"),
		DueDate:       strPtr("2026-10-31"),
		PaymentStatus: strPtr("paid"),
		PaymentAmount: f64Ptr(2500.50),
	})
	require.NoError(t, err)
	require.Equal(t, "completed", updated.Status)
	require.Equal(t, "2026-10-31", updated.DueDate)
	require.Equal(t, "Website rebuild", updated.Title, "Untouched fields should survive a partial update")
	require.InDelta(t, 2500.50, updated.PaymentAmount, 0.001)

	// List with and without the client filter
	list, err := session.ListProjects(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = session.ListProjects(t.Context(), customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = session.ListProjects(t.Context(), "nonexistent-client")
	require.NoError(t, err)
	require.Empty(t, list, "Filtering by an unknown client should return an empty list")

	// Delete
	require.NoError(t, session.DeleteProject(t.Context(), created.ID))
	_, err = session.GetProject(t.Context(), created.ID)
	assertNotFound(t, err)
}

// TestProjectValidation covers enum and amount validation.
func TestProjectValidation(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "kevin")
	customer := createTestClient(t, session, "Umbrella")

	t.Run("unknown payment status", func(t *testing.T) {
		_, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
			ClientID:      strPtr(customer.ID),
			Title:         strPtr("Audit"),
			PaymentStatus: strPtr("gratis"),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
			ClientID:      strPtr(customer.ID),
			Title:         strPtr("Audit"),
			PaymentAmount: f64Ptr(-10),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})

	t.Run("too many decimal places", func(t *testing.T) {
		_, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
			ClientID:      strPtr(customer.ID),
			Title:         strPtr("Audit"),
			PaymentAmount: f64Ptr(10.999),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})

	t.Run("malformed due date", func(t *testing.T) {
		_, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
			ClientID: strPtr(customer.ID),
			Title:    strPtr("Audit"),
			DueDate:  strPtr("31/10/2026"),
		})
		assertAPIError(t, err, 400, crmsdk.ErrorCodeInvalidRequest)
	})
}

// TestProjectRequiresOwnedClient verifies a project cannot be attached to a
// client record that does not exist in the caller's account.
func TestProjectRequiresOwnedClient(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "laura")

	_, err := session.CreateProject(t.Context(), crmsdk.ProjectRequest{
		ClientID: strPtr("no-such-client"),
		Title:    strPtr("Ghost project"),
	})
	assertNotFound(t, err)
}
