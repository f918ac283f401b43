package crm_test

import (
	"testing"
	"time"

	"github.com/tallyhq/crm/pkg/crmsdk"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// TestMFAFullLifecycle enrolls TOTP, activates it, verifies login then
// requires a code, and finally disables it again.
func TestMFAFullLifecycle(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "erin")

	// Enroll
	enrollment, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.URL, "otpauth://totp/")

	// Login does not require a code until activation completes
	_, err = client.Token(t.Context(), "erin", defaultPassword, "")
	require.NoError(t, err, "Pending enrollment should not lock the account")

	// Activate with a real code
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ActivateTOTP(t.Context(), code))

	// Now a login without a code is refused
	_, err = client.Token(t.Context(), "erin", defaultPassword, "")
	assertAPIError(t, err, 401, crmsdk.ErrorCodeMFARequired)

	// A wrong code is refused without revealing which factor failed
	_, err = client.Token(t.Context(), "erin", defaultPassword, "000000")
	assertAPIError(t, err, 401, crmsdk.ErrorCodeInvalidCredentials)

	// A valid code succeeds
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	tokens, err := client.Token(t.Context(), "erin", defaultPassword, code)
	require.NoError(t, err)
	assertTokenResponse(t, tokens)

	// Disable and verify plain login works again
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.DisableTOTP(t.Context(), code))

	_, err = client.Token(t.Context(), "erin", defaultPassword, "")
	require.NoError(t, err)
}

// TestMFADoubleEnroll verifies an active enrollment cannot be restarted.
func TestMFADoubleEnroll(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "frank")

	enrollment, err := session.EnrollTOTP(t.Context())
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, session.ActivateTOTP(t.Context(), code))

	_, err = session.EnrollTOTP(t.Context())
	assertAPIError(t, err, 409, crmsdk.ErrorCodeConflict)
}

// TestMFAActivateWithoutEnroll verifies activation without a pending secret fails.
func TestMFAActivateWithoutEnroll(t *testing.T) {
	baseURL, cleanup := setupCRMContainer(t)
	defer cleanup()

	client := crmsdk.NewSDKClient(baseURL)
	session := registerAndLogin(t, client, "grace")

	err := session.ActivateTOTP(t.Context(), "123456")
	require.Error(t, err)

	var apiErr *crmsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.StatusCode)
}
