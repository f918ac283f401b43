package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTokenLengthsAndUniqueness(t *testing.T) {
	t.Parallel()

	t128, err := GenerateToken(TokenSize128)
	require.NoError(t, err)
	require.Len(t, t128, 22)

	t256, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.Len(t, t256, 43)

	other, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, t256, other)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	fp := FingerprintToken("some-opaque-token")
	require.Equal(t, fp, FingerprintToken("some-opaque-token"))
	require.NotEqual(t, fp, FingerprintToken("another-token"))
	require.Len(t, fp, 43) // base64url SHA-256
}
