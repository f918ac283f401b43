package crm_test

import (
	"testing"

	"github.com/tallyhq/crm/pkg/crmsdk"

	"github.com/stretchr/testify/require"
)

// TestRegisterAndLogin tests the complete flow:
// 1. Register a fresh account
// 2. Login with password grant
// 3. Refresh the access token
// 4. Revoke the refresh token and verify it no longer works
func TestRegisterAndLogin(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	resp, err := client.Register(t.Context(), "alice", defaultPassword)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "alice", resp.Username)
	require.NotEmpty(t, resp.CreatedAt)
	require.NotEqual(t, "0001-01-01T00:00:00Z", resp.CreatedAt)

	tokens, err := client.Token(t.Context(), "alice", defaultPassword, "")
	require.NoError(t, err)
	assertTokenResponse(t, tokens)

	// Refresh returns a new access token but keeps the refresh token
	refreshed, err := client.Refresh(t.Context(), tokens.Refresh)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.Access)
	require.Empty(t, refreshed.Refresh, "Refresh endpoint should not rotate the refresh token")

	// Revoke, then the refresh token is dead
	err = client.Revoke(t.Context(), tokens.Refresh)
	require.NoError(t, err)

	_, err = client.Refresh(t.Context(), tokens.Refresh)
	assertAPIError(t, err, 401, crmsdk.ErrorCodeInvalidGrant)

	t.Logf("Register, login, refresh and revoke all behaved as expected")
}

// TestRegisterDuplicateUsername verifies usernames are unique case-insensitively.
func TestRegisterDuplicateUsername(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "bob", defaultPassword)
	require.NoError(t, err)

	_, err = client.Register(t.Context(), "BOB", defaultPassword)
	assertAPIError(t, err, 409, crmsdk.ErrorCodeConflict)
}

// TestLoginInvalidCredentials verifies bad usernames and bad passwords are
// rejected with the same indistinguishable error.
func TestLoginInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "carol", defaultPassword)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.Token(t.Context(), "carol", "WrongPassword1!", "")
		assertAPIError(t, err, 401, crmsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := client.Token(t.Context(), "nobody", defaultPassword, "")
		assertAPIError(t, err, 401, crmsdk.ErrorCodeInvalidCredentials)
	})
}

// TestRevokeIsIdempotent verifies revoking a token twice succeeds both times.
func TestRevokeIsIdempotent(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	_, err := client.Register(t.Context(), "dave", defaultPassword)
	require.NoError(t, err)

	tokens, err := client.Token(t.Context(), "dave", defaultPassword, "")
	require.NoError(t, err)

	require.NoError(t, client.Revoke(t.Context(), tokens.Refresh))
	require.NoError(t, client.Revoke(t.Context(), tokens.Refresh))
}

// TestAccessTokenRequired verifies protected resources reject missing tokens.
func TestAccessTokenRequired(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	// A session with garbage tokens should get 401s, not data
	session := client.NewSessionFromTokens("not-a-token", "also-not-a-token", 3600)

	_, err := session.ListClients(t.Context())
	require.Error(t, err)

	var apiErr *crmsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 401, apiErr.StatusCode)
}
