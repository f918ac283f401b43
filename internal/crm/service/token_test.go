package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st)

	alice := registerUser(t, st, "alice", "pw12345")

	t.Run("valid credentials issue a pair", func(t *testing.T) {
		pair, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)

		claims, err := tokens.KeyManager.Verifier.Verify(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, alice.ID, claims.Subject)
		require.Equal(t, "alice", claims.Username)
	})

	t.Run("username lookup ignores case", func(t *testing.T) {
		_, err := tokens.PasswordGrant(ctx, "ALICE", "pw12345", "")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, err := tokens.PasswordGrant(ctx, "alice", "wrong", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = tokens.PasswordGrant(ctx, "nobody", "pw12345", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestPasswordGrantWithMFA(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st)
	mfa := &MFAService{Store: st, Issuer: "crm-test"}

	alice := registerUser(t, st, "alice", "pw12345")

	enrollment, err := mfa.EnrollTOTP(ctx, alice.ID)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.ActivateTOTP(ctx, alice.ID, code))

	t.Run("otp required once active", func(t *testing.T) {
		_, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "")
		require.ErrorIs(t, err, ErrMFARequired)
	})

	t.Run("bad otp rejected", func(t *testing.T) {
		_, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "000000")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("valid otp issues a pair", func(t *testing.T) {
		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)

		pair, err := tokens.PasswordGrant(ctx, "alice", "pw12345", code)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("disable drops the requirement", func(t *testing.T) {
		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)
		require.NoError(t, mfa.DisableTOTP(ctx, alice.ID, code))

		_, err = tokens.PasswordGrant(ctx, "alice", "pw12345", "")
		require.NoError(t, err)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTokenService(t, st)

	registerUser(t, st, "alice", "pw12345")
	pair, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "")
	require.NoError(t, err)

	t.Run("valid refresh issues a new access token", func(t *testing.T) {
		refreshed, err := tokens.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, refreshed.AccessToken)
		require.Empty(t, refreshed.RefreshToken)

		claims, err := tokens.KeyManager.Verifier.Verify(refreshed.AccessToken)
		require.NoError(t, err)
		require.NotEmpty(t, claims.SID)
	})

	t.Run("refresh preserves the session id", func(t *testing.T) {
		orig, err := tokens.KeyManager.Verifier.Verify(pair.AccessToken)
		require.NoError(t, err)

		refreshed, err := tokens.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		claims, err := tokens.KeyManager.Verifier.Verify(refreshed.AccessToken)
		require.NoError(t, err)
		require.Equal(t, orig.SID, claims.SID)
	})

	t.Run("garbage refresh token rejected", func(t *testing.T) {
		_, err := tokens.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("revoked refresh token rejected, revoke is idempotent", func(t *testing.T) {
		require.NoError(t, tokens.Revoke(ctx, pair.RefreshToken))
		require.NoError(t, tokens.Revoke(ctx, pair.RefreshToken))

		_, err := tokens.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("revoke all kills every session", func(t *testing.T) {
		first, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "")
		require.NoError(t, err)
		second, err := tokens.PasswordGrant(ctx, "alice", "pw12345", "")
		require.NoError(t, err)

		claims, err := tokens.KeyManager.Verifier.Verify(first.AccessToken)
		require.NoError(t, err)
		require.NoError(t, tokens.RevokeAll(ctx, claims.Subject))

		_, err = tokens.Refresh(ctx, first.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
		_, err = tokens.Refresh(ctx, second.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}
