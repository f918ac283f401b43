package crm_test

import (
	"encoding/json"
	"testing"

	"github.com/tallyhq/crm/pkg/crmsdk"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoint verifies the liveness check endpoint works without auth.
func TestHealthEndpoint(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	health, err := client.Health(t.Context())
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)

	t.Logf("Health endpoint is healthy")
}

// TestJWKSEndpoint verifies verification keys are published without auth.
func TestJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)

	jwks, err := client.JWKS(t.Context())

	require.NoError(t, err)
	require.NotNil(t, jwks)
	require.NotEmpty(t, jwks.Keys, "JWKS should contain at least one key")

	t.Logf("JWKS endpoint returned %d key(s)", len(jwks.Keys))

	for _, key := range jwks.Keys {
		keyJSON, _ := json.Marshal(key)
		t.Logf("Key JSON: %s", keyJSON)
	}
}
